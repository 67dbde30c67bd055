package store

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchvaultapp/watchvault-server/internal/domain"
	apperrors "github.com/watchvaultapp/watchvault-server/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck // Test cleanup
	return s
}

func sampleEntries() []domain.Entry {
	added := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Entry{
		{
			ID:            603,
			MediaKind:     domain.KindMovie,
			Title:         "The Matrix",
			PosterPath:    "/matrix.jpg",
			CatalogRating: 8.2,
			ReleaseDate:   "1999-03-31",
			AddedAt:       added,
			Watched:       true,
			UserRating:    5,
			Notes:         "rewatch yearly",
		},
		{
			ID:          1396,
			MediaKind:   domain.KindSeries,
			Title:       "Breaking Bad",
			ReleaseDate: "2008-01-20",
			AddedAt:     added.Add(time.Hour),
		},
	}
}

func TestLoad_FreshDatabaseIsEmpty(t *testing.T) {
	s := newTestStore(t)

	entries := s.Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleEntries()

	require.NoError(t, s.Save(want))

	got := s.Load()
	assert.Equal(t, want, got)
}

func TestSave_OverwritesPreviousState(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleEntries()))

	require.NoError(t, s.Save([]domain.Entry{}))

	assert.Empty(t, s.Load())
}

func TestSaveLoad_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	want := sampleEntries()

	s, err := New(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(want))
	require.NoError(t, s.Close())

	s2, err := New(dir, nil)
	require.NoError(t, err)
	defer s2.Close() //nolint:errcheck // Test cleanup

	assert.Equal(t, want, s2.Load())
}

func TestLoad_CorruptValueDegradesToEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleEntries()))

	// Clobber the stored value with non-JSON bytes.
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(watchlistKey, []byte("{not json"))
	})
	require.NoError(t, err)

	entries := s.Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestSave_ClosedDatabaseReturnsWriteError(t *testing.T) {
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	err = s.Save(sampleEntries())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrPersistenceWrite))
}
