package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/trevor93/Aigency/internal/dataservice"
)

// LoadResult is one fetch outcome. Limited records whether a row cap was
// applied, so derived stats can be labelled as window-only.
type LoadResult[T any] struct {
	Rows      []T
	Limited   bool
	FetchedAt time.Time
}

// Fetcher wraps one collection loader. It tracks an in-flight count and a
// generation counter: concurrent re-invocation is allowed, and only the
// most recently issued call's result is retained as the latest snapshot.
// A completion from a superseded call is returned to its caller but
// discarded from the snapshot, so late arrivals never clobber fresh state.
type Fetcher[T any] struct {
	name string
	load func(ctx context.Context, limit int) ([]T, error)

	mu       sync.Mutex
	inFlight int
	gen      uint64
	lastGen  uint64
	last     LoadResult[T]
	hasLast  bool
}

// NewClientFetcher fetches the client roster, newest first.
func NewClientFetcher(ds *dataservice.Client) *Fetcher[dataservice.ClientRecord] {
	return &Fetcher[dataservice.ClientRecord]{name: "clients", load: ds.ListClients}
}

// NewTransactionFetcher fetches the payment ledger with owners joined,
// newest first.
func NewTransactionFetcher(ds *dataservice.Client) *Fetcher[dataservice.Transaction] {
	return &Fetcher[dataservice.Transaction]{name: "transactions", load: ds.ListTransactions}
}

// NewAutomationLogFetcher fetches the automation log with owners joined,
// newest first.
func NewAutomationLogFetcher(ds *dataservice.Client) *Fetcher[dataservice.AutomationEvent] {
	return &Fetcher[dataservice.AutomationEvent]{name: "automation_logs", load: ds.ListAutomationEvents}
}

// Load fetches up to limit rows (0 = unlimited). Failures are typed
// *errors.PortalError values from the data service layer; nothing is thrown
// past this boundary.
func (f *Fetcher[T]) Load(ctx context.Context, limit int) (LoadResult[T], error) {
	f.mu.Lock()
	f.gen++
	myGen := f.gen
	f.inFlight++
	f.mu.Unlock()

	rows, err := f.load(ctx, limit)

	f.mu.Lock()
	f.inFlight--
	stale := myGen < f.lastGen
	if err == nil && myGen > f.lastGen {
		f.lastGen = myGen
		f.last = LoadResult[T]{Rows: rows, Limited: limit > 0, FetchedAt: time.Now()}
		f.hasLast = true
	}
	f.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Str("fetcher", f.name).Int("limit", limit).Msg("Collection load failed")
		return LoadResult[T]{}, err
	}
	if stale {
		log.Debug().Str("fetcher", f.name).Uint64("generation", myGen).Msg("Discarding superseded load result")
	}
	return LoadResult[T]{Rows: rows, Limited: limit > 0, FetchedAt: time.Now()}, nil
}

// Loading reports whether any call is currently in flight.
func (f *Fetcher[T]) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight > 0
}

// Latest returns the retained snapshot from the most recently issued
// successful load, if any.
func (f *Fetcher[T]) Latest() (LoadResult[T], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.hasLast
}
