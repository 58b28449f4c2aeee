package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	_, ok := s.Get("film_work_proceed_date_time")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("film_work_proceed_date_time", "2026-01-01T00:00:00Z"))

	v, ok := s.Get("film_work_proceed_date_time")
	require.True(t, ok)
	assert.Equal(t, "2026-01-01T00:00:00Z", v)
}

func TestSet_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("genre_proceed_date_time", "2026-02-01T00:00:00Z"))

	reopened, err := Open(path)
	require.NoError(t, err)
	v, ok := reopened.Get("genre_proceed_date_time")
	require.True(t, ok)
	assert.Equal(t, "2026-02-01T00:00:00Z", v)
}

func TestSet_NoPartialFileOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("film_work_proceed_date_time", "2026-01-01T00:00:00Z"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the final state file should remain, no leftover temp files")
}

func TestWatermark_DefaultsToEpoch(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	w, err := s.Watermark(StreamFilmWork)
	require.NoError(t, err)
	assert.True(t, w.Equal(epoch))
}

func TestCommitWatermark_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	want := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)
	require.NoError(t, s.CommitWatermark(StreamPerson, want))

	got, err := s.Watermark(StreamPerson)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
}

func TestCommitWatermark_Monotonicity(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CommitWatermark(StreamGenre, t1))
	w1, err := s.Watermark(StreamGenre)
	require.NoError(t, err)

	require.NoError(t, s.CommitWatermark(StreamGenre, t2))
	w2, err := s.Watermark(StreamGenre)
	require.NoError(t, err)

	assert.True(t, !w2.Before(w1))
}
