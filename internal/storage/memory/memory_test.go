package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirotalab/cms-server/internal/storage"
)

func TestPutGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Get(ctx, "a.txt")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Put(ctx, "a.txt", []byte("hello"), "text/plain"))
	data, err := s.Get(ctx, "a.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	// Get hands out a copy; mutating it must not affect the store.
	data[0] = 'X'
	again, err := s.Get(ctx, "a.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), again)

	info, err := s.Stat(ctx, "a.txt")
	require.NoError(t, err)
	require.Equal(t, int64(5), info.Size)
	require.Equal(t, "text/plain", info.ContentType)

	ok, err := s.Exists(ctx, "a.txt")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Delete(ctx, "a.txt"))
	require.ErrorIs(t, s.Delete(ctx, "a.txt"), storage.ErrNotFound)

	ok, err = s.Exists(ctx, "a.txt")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestListPrefixIsAFolder(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, key := range []string{"root.txt", "cms/news.json", "cms/events.json", "other/x.bin"} {
		require.NoError(t, s.Put(ctx, key, []byte("x"), "application/octet-stream"))
	}

	root, err := s.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, root, 1)
	require.Equal(t, "root.txt", root[0].Key)

	cms, err := s.List(ctx, "cms")
	require.NoError(t, err)
	require.Equal(t, []string{"cms/events.json", "cms/news.json"}, []string{cms[0].Key, cms[1].Key})
}
