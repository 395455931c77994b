package content

import (
	"context"
	"sort"
)

// Entry is satisfied by a pointer to any collection item type.
type Entry[T any] interface {
	*T
	itemID() int
	setItemID(int)
	setCreatedAt(string)
	setUpdatedAt(string)
	isVisible() bool
	applyDefaults()
}

// Service is the CRUD engine for one collection kind. Kinds differ only in
// their item schema, document name and public sort order, so a single
// generic engine covers all five.
type Service[T any, PT Entry[T], I Input[T]] struct {
	docs       *DocumentStore
	name       string
	sortPublic func([]T)
}

func newService[T any, PT Entry[T], I Input[T]](docs *DocumentStore, name string, sortPublic func([]T)) *Service[T, PT, I] {
	return &Service[T, PT, I]{docs: docs, name: name, sortPublic: sortPublic}
}

// List returns the full document, hidden items included.
func (s *Service[T, PT, I]) List(ctx context.Context) (Document[T], error) {
	return readDocument[T](ctx, s.docs, s.name)
}

// PublicList returns the visible items in the kind's public order.
func (s *Service[T, PT, I]) PublicList(ctx context.Context) ([]T, error) {
	doc, err := readDocument[T](ctx, s.docs, s.name)
	if err != nil {
		return nil, err
	}
	visible := make([]T, 0, len(doc.Items))
	for i := range doc.Items {
		if PT(&doc.Items[i]).isVisible() {
			visible = append(visible, doc.Items[i])
		}
	}
	if s.sortPublic != nil {
		s.sortPublic(visible)
	}
	return visible, nil
}

// Create validates the payload, assigns the next id and appends the item.
func (s *Service[T, PT, I]) Create(ctx context.Context, in I) (T, error) {
	var zero T
	if details := in.validate(false); len(details) > 0 {
		return zero, &ValidationError{Details: details}
	}

	doc, err := readDocument[T](ctx, s.docs, s.name)
	if err != nil {
		return zero, err
	}

	var item T
	p := PT(&item)
	p.applyDefaults()
	in.apply(&item, false)
	p.setItemID(nextID[T, PT](doc.Items))
	now := s.docs.now()
	p.setCreatedAt(now)
	p.setUpdatedAt(now)

	doc.Items = append(doc.Items, item)
	doc.UpdatedAt = now
	if err := writeDocument(ctx, s.docs, s.name, doc); err != nil {
		return zero, err
	}
	return item, nil
}

// Update applies the present payload fields to the item with the given id.
// Absent fields are left untouched; created_at never changes.
func (s *Service[T, PT, I]) Update(ctx context.Context, id int, in I) (T, error) {
	var zero T
	if details := in.validate(true); len(details) > 0 {
		return zero, &ValidationError{Details: details}
	}

	doc, err := readDocument[T](ctx, s.docs, s.name)
	if err != nil {
		return zero, err
	}

	for i := range doc.Items {
		p := PT(&doc.Items[i])
		if p.itemID() != id {
			continue
		}
		in.apply(&doc.Items[i], true)
		now := s.docs.now()
		p.setUpdatedAt(now)
		doc.UpdatedAt = now
		if err := writeDocument(ctx, s.docs, s.name, doc); err != nil {
			return zero, err
		}
		return doc.Items[i], nil
	}
	return zero, ErrNotFound
}

// Delete removes the item with the given id and rewrites the document.
func (s *Service[T, PT, I]) Delete(ctx context.Context, id int) error {
	doc, err := readDocument[T](ctx, s.docs, s.name)
	if err != nil {
		return err
	}

	remaining := make([]T, 0, len(doc.Items))
	for i := range doc.Items {
		if PT(&doc.Items[i]).itemID() != id {
			remaining = append(remaining, doc.Items[i])
		}
	}
	if len(remaining) == len(doc.Items) {
		return ErrNotFound
	}

	doc.Items = remaining
	doc.UpdatedAt = s.docs.now()
	return writeDocument(ctx, s.docs, s.name, doc)
}

// nextID assigns ids as max(existing)+1, starting at 1. Deleted ids are
// never handed out again as long as a larger id remains.
func nextID[T any, PT Entry[T]](items []T) int {
	maxID := 0
	for i := range items {
		if id := PT(&items[i]).itemID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

type (
	NewsService        = Service[News, *News, NewsInput]
	EventsService      = Service[Event, *Event, EventInput]
	MembersService     = Service[Member, *Member, MemberInput]
	PublicationService = Service[Publication, *Publication, PublicationInput]
	ResearchService    = Service[Research, *Research, ResearchInput]
)

// Public order: news and events newest-first by date, members and research
// by manual order, publications newest-first by year. Date and year are
// compared as strings; the source data is ISO-formatted, so this is kept
// as-is even though multi-digit-year edge cases would misorder.
func NewNewsService(docs *DocumentStore) *NewsService {
	return newService[News, *News, NewsInput](docs, "news.json", func(items []News) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	})
}

func NewEventsService(docs *DocumentStore) *EventsService {
	return newService[Event, *Event, EventInput](docs, "events.json", func(items []Event) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	})
}

func NewMembersService(docs *DocumentStore) *MembersService {
	return newService[Member, *Member, MemberInput](docs, "members.json", func(items []Member) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	})
}

func NewPublicationService(docs *DocumentStore) *PublicationService {
	return newService[Publication, *Publication, PublicationInput](docs, "publications.json", func(items []Publication) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Year > items[j].Year })
	})
}

func NewResearchService(docs *DocumentStore) *ResearchService {
	return newService[Research, *Research, ResearchInput](docs, "research.json", func(items []Research) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	})
}
