// Package search drives the paginated lost-car listing: it debounces
// free-text and status-filter edits, queries immediately on page
// navigation, and tags every request with a sequence number so a slow,
// superseded response can never overwrite fresher results.
package search

import (
	"sync"
	"time"

	"github.com/teerapatch/rodhai/models"
)

// DefaultDebounce is the quiet period after a term or filter edit before the
// query fires.
const DefaultDebounce = 500 * time.Millisecond

// Query is one listing request: free-text term, status filter ("all"
// disables it) and a 1-based page.
type Query struct {
	Term   string
	Status string
	Page   int
}

// Result is the outcome of one dispatched query. Err is set on backend
// failure; the consumer surfaces a retry panel, no automatic retry happens
// here. ScrollToTop is set for explicit page navigation.
type Result struct {
	Query       Query
	Cars        []models.LostCar
	Total       int64
	Err         error
	ScrollToTop bool
}

// Fetcher executes a query against the backing store.
type Fetcher func(Query) ([]models.LostCar, int64, error)

type Coordinator struct {
	fetch    Fetcher
	debounce time.Duration
	results  chan Result

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	term    string
	status  string
	page    int
	stopped bool
}

func NewCoordinator(fetch Fetcher, debounce time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{
		fetch:    fetch,
		debounce: debounce,
		results:  make(chan Result, 16),
		status:   "all",
		page:     1,
	}
}

// Results delivers query outcomes. Stale results (superseded by a newer
// dispatch) are dropped before they reach this channel.
func (c *Coordinator) Results() <-chan Result {
	return c.results
}

// SetTerm records a search-term edit: resets to page 1 and re-queries after
// the quiet period.
func (c *Coordinator) SetTerm(term string) {
	c.mu.Lock()
	c.term = term
	c.page = 1
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetStatus records a status-filter edit; behaves like a term edit.
func (c *Coordinator) SetStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.page = 1
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetPage navigates to a page: queries immediately, keeps the page, and
// marks the result so the view scrolls back to the top.
func (c *Coordinator) SetPage(page int) {
	if page < 1 {
		return
	}
	c.mu.Lock()
	c.page = page
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.dispatchLocked(true)
	c.mu.Unlock()
}

// Refresh re-runs the current query immediately, for user-initiated retry.
func (c *Coordinator) Refresh() {
	c.mu.Lock()
	c.dispatchLocked(false)
	c.mu.Unlock()
}

// Stop cancels any pending debounce timer and closes the results channel so
// consumers ranging over it terminate. In-flight fetches are discarded.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	close(c.results)
}

func (c *Coordinator) scheduleLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.timer = nil
		c.dispatchLocked(false)
		c.mu.Unlock()
	})
}

func (c *Coordinator) dispatchLocked(scrollToTop bool) {
	if c.stopped {
		return
	}
	c.seq++
	seq := c.seq
	q := Query{Term: c.term, Status: c.status, Page: c.page}

	go func() {
		cars, total, err := c.fetch(q)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.stopped || seq != c.seq {
			// Stopped, or a newer request was dispatched while this one
			// was in flight; its answer wins.
			return
		}

		select {
		case c.results <- Result{Query: q, Cars: cars, Total: total, Err: err, ScrollToTop: scrollToTop}:
		default:
		}
	}()
}
