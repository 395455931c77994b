// Package content implements the collection CRUD engine: one JSON document
// per collection kind, stored whole in the object store and mutated through
// a read-modify-write cycle. Concurrent writers are not coordinated; the
// last write wins. That is a known, accepted limitation of the design.
package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the single JSON object persisted per collection kind.
type Document[T any] struct {
	UpdatedAt string `json:"updated_at"`
	Items     []T    `json:"items"`
}

// Meta carries the fields common to every collection item. Item ids are
// integers unique within their document, assigned max+1 and never reused.
type Meta struct {
	ID        int    `json:"id"`
	Visible   bool   `json:"visible"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Meta) itemID() int            { return m.ID }
func (m *Meta) setItemID(id int)       { m.ID = id }
func (m *Meta) setCreatedAt(ts string) { m.CreatedAt = ts }
func (m *Meta) setUpdatedAt(ts string) { m.UpdatedAt = ts }
func (m *Meta) isVisible() bool        { return m.Visible }
func (m *Meta) applyDefaults()         { m.Visible = true }

// FlexString accepts either a JSON string or a JSON number and stores it as
// a string. Numeric years and volumes submitted by older clients come
// through this way.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("cannot unmarshal %s into a string value", b)
	}
	*f = FlexString(b)
	return nil
}

func (f FlexString) trimmed() string { return strings.TrimSpace(string(f)) }

// News is a dated announcement.
type News struct {
	Meta
	Title string `json:"title"`
	Body  string `json:"body"`
	Date  string `json:"date"`
	Link  string `json:"link"`
}

// Event is a dated entry with optional time and location details.
type Event struct {
	Meta
	Title       string `json:"title"`
	Date        string `json:"date"`
	TimeStart   string `json:"time_start"`
	TimeEnd     string `json:"time_end"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Member is a lab member profile, manually ordered on the public page.
type Member struct {
	Meta
	Name             string `json:"name"`
	NameEn           string `json:"name_en"`
	Role             string `json:"role"`
	Title            string `json:"title"`
	ResearchInterest string `json:"research_interest"`
	PhotoURL         string `json:"photo_url"`
	Email            string `json:"email"`
	YearJoined       string `json:"year_joined"`
	Order            int    `json:"order"`
}

// Publication is a bibliography entry. Year and volume are stored as
// strings; the public listing sorts by the year string.
type Publication struct {
	Meta
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Journal  string `json:"journal"`
	Year     string `json:"year"`
	Volume   string `json:"volume"`
	Pages    string `json:"pages"`
	DOI      string `json:"doi"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

// Research is a research-topic entry, manually ordered on the public page.
type Research struct {
	Meta
	Title       string `json:"title"`
	TitleEn     string `json:"title_en"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Order       int    `json:"order"`
}

const (
	defaultOrder       = 99
	defaultMemberRole  = "bachelor"
	defaultPubCategory = "paper"
)

func (m *Member) applyDefaults() {
	m.Meta.applyDefaults()
	m.Role = defaultMemberRole
	m.Order = defaultOrder
}

func (p *Publication) applyDefaults() {
	p.Meta.applyDefaults()
	p.Category = defaultPubCategory
	p.Order = defaultOrder
}

func (r *Research) applyDefaults() {
	r.Meta.applyDefaults()
	r.Order = defaultOrder
}

// The custom unmarshalers below keep documents written by hand (or by the
// previous deployment) readable: an item missing "visible" counts as
// visible, and a missing "order" sorts last.

func (n *News) UnmarshalJSON(b []byte) error {
	type alias News
	a := alias{Meta: Meta{Visible: true}}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*n = News(a)
	return nil
}

func (e *Event) UnmarshalJSON(b []byte) error {
	type alias Event
	a := alias{Meta: Meta{Visible: true}}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*e = Event(a)
	return nil
}

func (m *Member) UnmarshalJSON(b []byte) error {
	type alias Member
	a := alias{Meta: Meta{Visible: true}, Order: defaultOrder}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*m = Member(a)
	return nil
}

func (p *Publication) UnmarshalJSON(b []byte) error {
	type alias Publication
	a := alias{Meta: Meta{Visible: true}, Order: defaultOrder}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*p = Publication(a)
	return nil
}

func (r *Research) UnmarshalJSON(b []byte) error {
	type alias Research
	a := alias{Meta: Meta{Visible: true}, Order: defaultOrder}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*r = Research(a)
	return nil
}
