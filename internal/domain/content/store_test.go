package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadDocumentMissingObject(t *testing.T) {
	docs, _ := testDocs()
	docs.now = fixedClock("2024-03-01T00:00:00Z")

	doc, err := readDocument[News](context.Background(), docs, "news.json")
	require.NoError(t, err)
	require.Equal(t, "2024-03-01T00:00:00Z", doc.UpdatedAt)
	require.NotNil(t, doc.Items)
	require.Empty(t, doc.Items)
}

func TestReadDocumentEmptyAndCorruptBlobs(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string][]byte{
		"empty":     {},
		"truncated": []byte(`{"updated_at": "2024`),
		"not-json":  []byte("<html>rate limited</html>"),
	} {
		t.Run(name, func(t *testing.T) {
			docs, objects := testDocs()
			require.NoError(t, objects.Put(ctx, "cms/news.json", raw, "application/json"))

			doc, err := readDocument[News](ctx, docs, "news.json")
			require.NoError(t, err)
			require.Empty(t, doc.Items)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	docs, _ := testDocs()
	ctx := context.Background()

	want := Document[News]{
		UpdatedAt: "2024-03-01T00:00:00Z",
		Items: []News{{
			Meta:  Meta{ID: 7, Visible: true, CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-03-01T00:00:00Z"},
			Title: "title", Body: "body", Date: "2024-01-01",
		}},
	}
	require.NoError(t, writeDocument(ctx, docs, "news.json", want))

	got, err := readDocument[News](ctx, docs, "news.json")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Items persisted without visible or order fields, as older hand-edited
// documents were, read back as visible with order 99.
func TestReadDocumentLegacyDefaults(t *testing.T) {
	docs, objects := testDocs()
	ctx := context.Background()

	raw := []byte(`{"updated_at":"2024-01-01T00:00:00Z","items":[{"id":1,"name":"Tanaka"},{"id":2,"name":"Sato","visible":false,"order":3}]}`)
	require.NoError(t, objects.Put(ctx, "cms/members.json", raw, "application/json"))

	doc, err := readDocument[Member](ctx, docs, "members.json")
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	require.True(t, doc.Items[0].Visible)
	require.Equal(t, 99, doc.Items[0].Order)
	require.False(t, doc.Items[1].Visible)
	require.Equal(t, 3, doc.Items[1].Order)
}

func TestFlexStringAcceptsStringsAndNumbers(t *testing.T) {
	cases := map[string]string{
		`"2020"`: "2020",
		`2020`:   "2020",
		`12.5`:   "12.5",
		`null`:   "",
	}
	for raw, want := range cases {
		var f FlexString
		require.NoError(t, f.UnmarshalJSON([]byte(raw)), raw)
		require.Equal(t, want, string(f), raw)
	}

	var f FlexString
	require.Error(t, f.UnmarshalJSON([]byte(`[1,2]`)))
	require.Error(t, f.UnmarshalJSON([]byte(`true`)))
}
