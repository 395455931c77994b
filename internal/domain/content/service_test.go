package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirotalab/cms-server/internal/storage/memory"
)

func testDocs() (*DocumentStore, *memory.Store) {
	objects := memory.New()
	return NewDocumentStore(objects, "cms"), objects
}

// fixedClock makes every call return the next timestamp in the sequence,
// repeating the last one once exhausted.
func fixedClock(stamps ...string) func() string {
	i := 0
	return func() string {
		if i < len(stamps)-1 {
			i++
			return stamps[i-1]
		}
		return stamps[len(stamps)-1]
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func TestCreateAssignsSequentialIDs(t *testing.T) {
	docs, _ := testDocs()
	svc := NewEventsService(docs)
	ctx := context.Background()

	first, err := svc.Create(ctx, EventInput{Title: strPtr("Seminar"), Date: strPtr("2024-05-01")})
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)

	second, err := svc.Create(ctx, EventInput{Title: strPtr("Workshop"), Date: strPtr("2024-06-01")})
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)

	// Ids are never reused: deleting 1 and creating again yields 3.
	require.NoError(t, svc.Delete(ctx, 1))
	third, err := svc.Create(ctx, EventInput{Title: strPtr("Retreat"), Date: strPtr("2024-07-01")})
	require.NoError(t, err)
	require.Equal(t, 3, third.ID)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	docs, _ := testDocs()
	svc := NewNewsService(docs)

	_, err := svc.Create(context.Background(), NewsInput{Link: strPtr("https://example.org")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"title is required", "body is required", "date is required"}, verr.Details)

	// Blank-after-trim counts as missing.
	_, err = svc.Create(context.Background(), NewsInput{
		Title: strPtr("  "), Body: strPtr("b"), Date: strPtr("2024-01-01"),
	})
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"title is required"}, verr.Details)
}

func TestCreateAppliesDefaultsAndTrimming(t *testing.T) {
	docs, _ := testDocs()
	ctx := context.Background()

	member, err := NewMembersService(docs).Create(ctx, MemberInput{Name: strPtr("  Tanaka  ")})
	require.NoError(t, err)
	require.Equal(t, "Tanaka", member.Name)
	require.Equal(t, "bachelor", member.Role)
	require.Equal(t, 99, member.Order)
	require.True(t, member.Visible)
	require.NotEmpty(t, member.CreatedAt)
	require.Equal(t, member.CreatedAt, member.UpdatedAt)

	pub, err := NewPublicationService(docs).Create(ctx, PublicationInput{Title: strPtr("Paper A")})
	require.NoError(t, err)
	require.Equal(t, "paper", pub.Category)
	require.Equal(t, "", pub.Year)

	hidden, err := NewNewsService(docs).Create(ctx, NewsInput{
		Title: strPtr("t"), Body: strPtr("b"), Date: strPtr("2024-01-01"), Visible: boolPtr(false),
	})
	require.NoError(t, err)
	require.False(t, hidden.Visible)
}

func TestUpdateTouchesOnlyPresentFields(t *testing.T) {
	docs, _ := testDocs()
	// Each document read consumes one tick building its empty fallback, so
	// the create lands on the second stamp and the update on the third.
	docs.now = fixedClock("2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z", "2024-02-01T00:00:00Z")
	svc := NewNewsService(docs)
	ctx := context.Background()

	created, err := svc.Create(ctx, NewsInput{
		Title: strPtr("Old title"), Body: strPtr("Body"), Date: strPtr("2024-01-01"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, NewsInput{Title: strPtr("  New title ")})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.Equal(t, "Body", updated.Body)
	require.Equal(t, "2024-01-01", updated.Date)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.NotEqual(t, created.UpdatedAt, updated.UpdatedAt)

	doc, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, updated.UpdatedAt, doc.UpdatedAt)
}

func TestUpdatePartialValidation(t *testing.T) {
	docs, _ := testDocs()
	svc := NewNewsService(docs)
	ctx := context.Background()

	created, err := svc.Create(ctx, NewsInput{
		Title: strPtr("t"), Body: strPtr("b"), Date: strPtr("2024-01-01"),
	})
	require.NoError(t, err)

	// Absent required fields pass; a present-but-blank one fails.
	_, err = svc.Update(ctx, created.ID, NewsInput{Link: strPtr("https://example.org")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, NewsInput{Body: strPtr("")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"body is required"}, verr.Details)
}

func TestUpdateUnknownID(t *testing.T) {
	docs, _ := testDocs()
	svc := NewNewsService(docs)

	_, err := svc.Update(context.Background(), 42, NewsInput{Title: strPtr("x")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCoercesNumericYear(t *testing.T) {
	docs, _ := testDocs()
	svc := NewPublicationService(docs)
	ctx := context.Background()

	created, err := svc.Create(ctx, PublicationInput{Title: strPtr("p")})
	require.NoError(t, err)

	var in PublicationInput
	require.NoError(t, json.Unmarshal([]byte(`{"year": 2020, "volume": 12}`), &in))

	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	require.Equal(t, "2020", updated.Year)
	require.Equal(t, "12", updated.Volume)
}

func TestDeleteUnknownIDLeavesDocumentUntouched(t *testing.T) {
	docs, objects := testDocs()
	svc := NewNewsService(docs)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewsInput{Title: strPtr("t"), Body: strPtr("b"), Date: strPtr("2024-01-01")})
	require.NoError(t, err)
	before, err := objects.Get(ctx, "cms/news.json")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, 42), ErrNotFound)

	after, err := objects.Get(ctx, "cms/news.json")
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestPublicListHidesInvisibleItems(t *testing.T) {
	docs, _ := testDocs()
	svc := NewNewsService(docs)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewsInput{Title: strPtr("shown"), Body: strPtr("b"), Date: strPtr("2024-01-01")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewsInput{
		Title: strPtr("hidden"), Body: strPtr("b"), Date: strPtr("2024-01-02"), Visible: boolPtr(false),
	})
	require.NoError(t, err)

	items, err := svc.PublicList(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "shown", items[0].Title)

	// The admin listing still carries both.
	doc, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
}

// Dates and years sort as strings, not calendar values. This pins the
// current behavior so any future change to a real date sort is deliberate.
func TestPublicListStringOrdering(t *testing.T) {
	docs, _ := testDocs()
	ctx := context.Background()

	news := NewNewsService(docs)
	for _, date := range []string{"2023-12-31", "2024-02-01", "2024-01-15"} {
		_, err := news.Create(ctx, NewsInput{Title: strPtr(date), Body: strPtr("b"), Date: strPtr(date)})
		require.NoError(t, err)
	}
	items, err := news.PublicList(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-02-01", "2024-01-15", "2023-12-31"},
		[]string{items[0].Date, items[1].Date, items[2].Date})

	pubs := NewPublicationService(docs)
	for _, year := range []string{"2019", "999", "2020"} {
		year := year
		var in PublicationInput
		in.Title = strPtr("p-" + year)
		in.Year = (*FlexString)(&year)
		_, err := pubs.Create(ctx, in)
		require.NoError(t, err)
	}
	pubItems, err := pubs.PublicList(ctx)
	require.NoError(t, err)
	// "999" > "2020" lexicographically.
	require.Equal(t, []string{"999", "2020", "2019"},
		[]string{pubItems[0].Year, pubItems[1].Year, pubItems[2].Year})
}

func TestPublicListManualOrder(t *testing.T) {
	docs, _ := testDocs()
	svc := NewMembersService(docs)
	ctx := context.Background()

	_, err := svc.Create(ctx, MemberInput{Name: strPtr("third")})
	require.NoError(t, err) // default order 99
	_, err = svc.Create(ctx, MemberInput{Name: strPtr("first"), Order: intPtr(1)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MemberInput{Name: strPtr("second"), Order: intPtr(5)})
	require.NoError(t, err)

	items, err := svc.PublicList(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"},
		[]string{items[0].Name, items[1].Name, items[2].Name})
}
