package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trevor93/Aigency/internal/dataservice"
	apperrors "github.com/trevor93/Aigency/internal/errors"
)

func newRosterBackend(t *testing.T, total int) *dataservice.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := total
		if v := r.URL.Query().Get("limit"); v != "" {
			lim, err := strconv.Atoi(v)
			require.NoError(t, err)
			if lim < n {
				n = lim
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[`))
		for i := 0; i < n; i++ {
			if i > 0 {
				_, _ = w.Write([]byte(`,`))
			}
			// Rows are pre-ordered newest-first by the backend.
			_, _ = w.Write([]byte(`{"id":"c` + strconv.Itoa(i) + `","name":"Client ` + strconv.Itoa(i) + `",
				"email":"c` + strconv.Itoa(i) + `@x.test","status":"active","payment_status":"current",
				"created_at":"2026-08-` + strconv.Itoa(28-i) + `T00:00:00Z"}`))
		}
		_, _ = w.Write([]byte(`]`))
	}))
	t.Cleanup(srv.Close)

	ds, err := dataservice.NewClient(dataservice.ClientConfig{URL: srv.URL, AnonKey: "k"})
	require.NoError(t, err)
	return ds
}

func TestLoadLimitIsPrefixOfUnlimited(t *testing.T) {
	f := NewClientFetcher(newRosterBackend(t, 8))

	full, err := f.Load(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, full.Rows, 8)
	assert.False(t, full.Limited)

	capped, err := f.Load(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, capped.Rows, 3)
	assert.True(t, capped.Limited)

	for i := range capped.Rows {
		assert.Equal(t, full.Rows[i].ID, capped.Rows[i].ID, "capped load must be a prefix of the full ordering")
	}
	for i := 1; i < len(full.Rows); i++ {
		assert.False(t, full.Rows[i].CreatedAt.After(full.Rows[i-1].CreatedAt), "rows must be newest first")
	}
}

func TestLoadFailureIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	ds, err := dataservice.NewClient(dataservice.ClientConfig{URL: srv.URL, AnonKey: "k"})
	require.NoError(t, err)

	f := NewTransactionFetcher(ds)
	_, err = f.Load(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrFetchFailed))

	_, ok := f.Latest()
	assert.False(t, ok, "a failed load must not populate the snapshot")
}

func TestLastWriteWinsOnOutOfOrderCompletion(t *testing.T) {
	firstIssued := make(chan struct{})
	releaseFirst := make(chan struct{})

	var mu sync.Mutex
	calls := 0

	f := &Fetcher[int]{
		name: "test",
		load: func(ctx context.Context, limit int) ([]int, error) {
			mu.Lock()
			calls++
			call := calls
			mu.Unlock()
			if call == 1 {
				close(firstIssued)
				<-releaseFirst // first call completes last
				return []int{1}, nil
			}
			return []int{2}, nil
		},
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = f.Load(context.Background(), 0)
	}()
	<-firstIssued

	// Second call issued while the first is in flight; it completes first.
	res, err := f.Load(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Rows)

	close(releaseFirst)
	<-done

	// The late first result must not clobber the newer snapshot.
	latest, ok := f.Latest()
	require.True(t, ok)
	assert.Equal(t, []int{2}, latest.Rows)
}

func TestLoadingFlag(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := &Fetcher[int]{
		name: "test",
		load: func(ctx context.Context, limit int) ([]int, error) {
			close(started)
			<-release
			return nil, nil
		},
	}

	assert.False(t, f.Loading())
	go func() { _, _ = f.Load(context.Background(), 0) }()
	<-started
	assert.True(t, f.Loading())
	close(release)
}
