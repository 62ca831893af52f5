package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/netpulse-dev/netpulse/internal/history"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	id := uuid.New().String()
	started := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.BeginSession(id, started))

	want := []history.Sample{
		{Timestamp: started.Add(10 * time.Second), DownloadMbps: 88.25, UploadMbps: 11.5},
		{Timestamp: started.Add(20 * time.Second), DownloadMbps: 91.75, UploadMbps: 12.25},
	}
	for _, smp := range want {
		require.NoError(t, s.AppendSample(id, smp))
	}

	got, err := s.SessionSamples(id)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].DownloadMbps, got[i].DownloadMbps)
		require.Equal(t, want[i].UploadMbps, got[i].UploadMbps)
		require.Equal(t, want[i].Timestamp.UnixMilli(), got[i].Timestamp.UnixMilli())
	}
}

func TestStoreSessionSummaries(t *testing.T) {
	s := openTestStore(t)

	older := uuid.New().String()
	newer := uuid.New().String()
	base := time.Now().Add(-time.Hour)
	require.NoError(t, s.BeginSession(older, base))
	require.NoError(t, s.BeginSession(newer, base.Add(30*time.Minute)))

	require.NoError(t, s.AppendSample(newer, history.Sample{Timestamp: base, DownloadMbps: 100, UploadMbps: 10}))
	require.NoError(t, s.AppendSample(newer, history.Sample{Timestamp: base, DownloadMbps: 50, UploadMbps: 30}))

	sums, err := s.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	require.Equal(t, newer, sums[0].ID, "newest session first")
	require.Equal(t, 2, sums[0].Samples)
	require.InDelta(t, 75, sums[0].AvgDownload, 1e-9)
	require.InDelta(t, 20, sums[0].AvgUpload, 1e-9)
	require.Equal(t, 0, sums[1].Samples)

	latest, err := s.LatestSessionID()
	require.NoError(t, err)
	require.Equal(t, newer, latest)
}

func TestStoreEmptyLatestSession(t *testing.T) {
	s := openTestStore(t)
	latest, err := s.LatestSessionID()
	require.NoError(t, err)
	require.Empty(t, latest)
}

func TestStoreWriteLockIsExclusive(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir)
	require.NoError(t, err)
	defer first.Close()

	_, err = Open(dir)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second writer got %v, want ErrLocked", err)
	}

	// Read-only access stays possible while the writer holds the lock.
	ro, err := OpenReadOnly(dir)
	require.NoError(t, err)
	defer ro.Close()
}
