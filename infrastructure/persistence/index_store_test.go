package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sourcefield/sfind/domain/search"
	"github.com/sourcefield/sfind/internal/database"
)

func newTestStore(t *testing.T) *IndexStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sfind.db")
	db, err := database.New(context.Background(), "sqlite:///"+dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewIndexStore(db)
	require.NoError(t, err)
	return store
}

func testRecords() []search.Record {
	return []search.Record{
		{"embedding": []any{0.1, 0.2}, "metadata": "first"},
		{"embedding": []any{0.3, 0.4}, "metadata": "second"},
	}
}

func TestIndexStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "main", testRecords()))

	loaded, err := store.Load(ctx, "main")
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Order preserved and records usable by the search engine.
	require.Equal(t, "first", loaded[0]["metadata"])
	vec, err := loaded[0].Embedding()
	require.NoError(t, err)
	require.Equal(t, []float64{0.1, 0.2}, vec)
}

func TestIndexStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "main", testRecords()))
	require.NoError(t, store.Save(ctx, "main", testRecords()[:1]))

	loaded, err := store.Load(ctx, "main")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
}

func TestIndexStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "nope")
	require.ErrorIs(t, err, ErrIndexNotFound)
}

func TestIndexStore_NamesAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "beta", testRecords()))
	require.NoError(t, store.Save(ctx, "alpha", testRecords()))

	names, err := store.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, store.Delete(ctx, "alpha"))
	require.NoError(t, store.Delete(ctx, "alpha"), "deleting a missing index is not an error")

	names, err = store.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"beta"}, names)
}
