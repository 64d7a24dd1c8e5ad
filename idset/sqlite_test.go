package idset_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrxzhy/TEES/idset"
)

func newTestStore(t *testing.T) *idset.SQLiteStore {
	t.Helper()
	s, err := idset.NewSQLiteStore(filepath.Join(t.TempDir(), "ids.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	classes := idset.New(1)
	for _, n := range []string{"neg", "Binding", "Binding-Phosphorylation"} {
		_, err := classes.GetID(n)
		require.NoError(t, err)
	}
	classes.Freeze()
	require.NoError(t, store.Save(ctx, idset.ClassSetName, classes))

	got, err := store.Load(ctx, idset.ClassSetName)
	require.NoError(t, err)
	assert.Equal(t, classes.Names(), got.Names())
	assert.Equal(t, 1, got.FirstID())
	assert.True(t, got.Frozen())
	id, ok := got.Lookup("Binding-Phosphorylation")
	assert.True(t, ok)
	assert.Equal(t, 3, id)
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	s := idset.New(0)
	_, _ = s.GetID("a")
	require.NoError(t, store.Save(ctx, idset.FeatureSetName, s))
	_, _ = s.GetID("b")
	require.NoError(t, store.Save(ctx, idset.FeatureSetName, s))

	got, err := store.Load(ctx, idset.FeatureSetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Names())
	assert.False(t, got.Frozen())
}

func TestSQLiteStore_LoadMissing(t *testing.T) {
	_, err := newTestStore(t).Load(context.Background(), "nope")
	assert.ErrorIs(t, err, idset.ErrSetNotFound)
}
