package services

import (
	"context"
	"sync"
	"time"

	"backend/models"
)

const (
	// quiet period after the last keystroke before a lookup fires
	searchDebounce = 500 * time.Millisecond
	minQueryLength = 2
)

// CatalogSearcher is the slice of the food catalog the search controller
// depends on.
type CatalogSearcher interface {
	SearchFoods(ctx context.Context, query string) ([]models.CatalogItem, error)
}

// SearchController coalesces rapid query input into a single delayed catalog
// lookup. Every instance owns its own timer and sequence counter, so
// concurrent sessions never share debounce state.
//
// Responses are tagged with the sequence number issued at schedule time; a
// response that resolves after a newer lookup has been issued is discarded,
// so slow earlier lookups can never overwrite fresher results.
type SearchController struct {
	catalog   CatalogSearcher
	delay     time.Duration
	onResults func([]models.CatalogItem)
	onError   func(error)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	results []models.CatalogItem
}

// NewSearchController wires the controller to a catalog and the two user-facing
// callbacks. Either callback may be nil.
func NewSearchController(catalog CatalogSearcher, onResults func([]models.CatalogItem), onError func(error)) *SearchController {
	return &SearchController{
		catalog:   catalog,
		delay:     searchDebounce,
		onResults: onResults,
		onError:   onError,
	}
}

// SetDelay overrides the quiet period. Tests shrink it; production keeps the
// default.
func (sc *SearchController) SetDelay(d time.Duration) {
	sc.mu.Lock()
	sc.delay = d
	sc.mu.Unlock()
}

// QueryChanged is invoked on every keystroke. Queries shorter than two
// characters clear the results synchronously and never reach the network;
// anything longer re-arms the debounce timer with the new text.
func (sc *SearchController) QueryChanged(text string) {
	sc.mu.Lock()
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
	// bumping the sequence orphans any lookup that already started
	sc.seq++

	if len(text) < minQueryLength {
		sc.results = nil
		cb := sc.onResults
		sc.mu.Unlock()
		if cb != nil {
			cb(nil)
		}
		return
	}

	seq := sc.seq
	query := text // captured at schedule time
	sc.timer = time.AfterFunc(sc.delay, func() {
		sc.lookup(seq, query)
	})
	sc.mu.Unlock()
}

func (sc *SearchController) lookup(seq uint64, query string) {
	items, err := sc.catalog.SearchFoods(context.Background(), query)

	sc.mu.Lock()
	if seq != sc.seq {
		// superseded while in flight
		sc.mu.Unlock()
		return
	}
	if err != nil {
		// prior results stay visible on failure
		cb := sc.onError
		sc.mu.Unlock()
		if cb != nil {
			cb(err)
		}
		return
	}
	sc.results = items
	cb := sc.onResults
	sc.mu.Unlock()
	if cb != nil {
		cb(items)
	}
}

// Results returns the current result set in response order.
func (sc *SearchController) Results() []models.CatalogItem {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.results
}

// Cancel stops any pending lookup, e.g. on session teardown.
func (sc *SearchController) Cancel() {
	sc.mu.Lock()
	if sc.timer != nil {
		sc.timer.Stop()
		sc.timer = nil
	}
	sc.seq++
	sc.mu.Unlock()
}
