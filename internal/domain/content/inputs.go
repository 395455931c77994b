package content

import "strings"

// Input is the write payload for a collection kind. Pointer fields record
// whether the client sent the field at all: on update only present fields
// are applied, and required-field checks are skipped for absent ones.
type Input[T any] interface {
	// validate returns one message per failed rule. In partial mode a
	// required field is only checked when present.
	validate(partial bool) []string

	// apply copies present fields onto the item, trimming strings. In full
	// (create) mode blank values for defaulted fields fall back to their
	// defaults.
	apply(item *T, partial bool)
}

// requiredMissing reports a failed required-string check.
func requiredMissing(v *string, partial bool) bool {
	if v == nil {
		return !partial
	}
	return strings.TrimSpace(*v) == ""
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setFlex(dst *string, v *FlexString) {
	if v != nil {
		*dst = v.trimmed()
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

type NewsInput struct {
	Title   *string `json:"title"`
	Body    *string `json:"body"`
	Date    *string `json:"date"`
	Link    *string `json:"link"`
	Visible *bool   `json:"visible"`
}

func (in NewsInput) validate(partial bool) []string {
	var errs []string
	if requiredMissing(in.Title, partial) {
		errs = append(errs, "title is required")
	}
	if requiredMissing(in.Body, partial) {
		errs = append(errs, "body is required")
	}
	if requiredMissing(in.Date, partial) {
		errs = append(errs, "date is required")
	}
	return errs
}

func (in NewsInput) apply(item *News, _ bool) {
	setString(&item.Title, in.Title)
	setString(&item.Body, in.Body)
	setString(&item.Date, in.Date)
	setString(&item.Link, in.Link)
	setBool(&item.Visible, in.Visible)
}

type EventInput struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	TimeStart   *string `json:"time_start"`
	TimeEnd     *string `json:"time_end"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	Visible     *bool   `json:"visible"`
}

func (in EventInput) validate(partial bool) []string {
	var errs []string
	if requiredMissing(in.Title, partial) {
		errs = append(errs, "title is required")
	}
	if requiredMissing(in.Date, partial) {
		errs = append(errs, "date is required")
	}
	return errs
}

func (in EventInput) apply(item *Event, _ bool) {
	setString(&item.Title, in.Title)
	setString(&item.Date, in.Date)
	setString(&item.TimeStart, in.TimeStart)
	setString(&item.TimeEnd, in.TimeEnd)
	setString(&item.Location, in.Location)
	setString(&item.Description, in.Description)
	setString(&item.Link, in.Link)
	setBool(&item.Visible, in.Visible)
}

type MemberInput struct {
	Name             *string     `json:"name"`
	NameEn           *string     `json:"name_en"`
	Role             *string     `json:"role"`
	Title            *string     `json:"title"`
	ResearchInterest *string     `json:"research_interest"`
	PhotoURL         *string     `json:"photo_url"`
	Email            *string     `json:"email"`
	YearJoined       *FlexString `json:"year_joined"`
	Order            *int        `json:"order"`
	Visible          *bool       `json:"visible"`
}

func (in MemberInput) validate(partial bool) []string {
	var errs []string
	if requiredMissing(in.Name, partial) {
		errs = append(errs, "name is required")
	}
	return errs
}

func (in MemberInput) apply(item *Member, partial bool) {
	setString(&item.Name, in.Name)
	setString(&item.NameEn, in.NameEn)
	if in.Role != nil {
		role := strings.TrimSpace(*in.Role)
		if role == "" && !partial {
			role = defaultMemberRole
		}
		item.Role = role
	}
	setString(&item.Title, in.Title)
	setString(&item.ResearchInterest, in.ResearchInterest)
	setString(&item.PhotoURL, in.PhotoURL)
	setString(&item.Email, in.Email)
	setFlex(&item.YearJoined, in.YearJoined)
	setInt(&item.Order, in.Order)
	setBool(&item.Visible, in.Visible)
}

type PublicationInput struct {
	Title    *string     `json:"title"`
	Authors  *string     `json:"authors"`
	Journal  *string     `json:"journal"`
	Year     *FlexString `json:"year"`
	Volume   *FlexString `json:"volume"`
	Pages    *string     `json:"pages"`
	DOI      *string     `json:"doi"`
	Category *string     `json:"category"`
	Order    *int        `json:"order"`
	Visible  *bool       `json:"visible"`
}

func (in PublicationInput) validate(partial bool) []string {
	var errs []string
	if requiredMissing(in.Title, partial) {
		errs = append(errs, "title is required")
	}
	return errs
}

func (in PublicationInput) apply(item *Publication, partial bool) {
	setString(&item.Title, in.Title)
	setString(&item.Authors, in.Authors)
	setString(&item.Journal, in.Journal)
	setFlex(&item.Year, in.Year)
	setFlex(&item.Volume, in.Volume)
	setString(&item.Pages, in.Pages)
	setString(&item.DOI, in.DOI)
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" && !partial {
			category = defaultPubCategory
		}
		item.Category = category
	}
	setInt(&item.Order, in.Order)
	setBool(&item.Visible, in.Visible)
}

type ResearchInput struct {
	Title       *string `json:"title"`
	TitleEn     *string `json:"title_en"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Order       *int    `json:"order"`
	Visible     *bool   `json:"visible"`
}

func (in ResearchInput) validate(partial bool) []string {
	var errs []string
	if requiredMissing(in.Title, partial) {
		errs = append(errs, "title is required")
	}
	return errs
}

func (in ResearchInput) apply(item *Research, _ bool) {
	setString(&item.Title, in.Title)
	setString(&item.TitleEn, in.TitleEn)
	setString(&item.Description, in.Description)
	setString(&item.ImageURL, in.ImageURL)
	setInt(&item.Order, in.Order)
	setBool(&item.Visible, in.Visible)
}
