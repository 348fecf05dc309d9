package search

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teerapatch/rodhai/models"
)

type recordingFetcher struct {
	mu      sync.Mutex
	queries []Query
	delay   func(Query) time.Duration
}

func (f *recordingFetcher) fetch(q Query) ([]models.LostCar, int64, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.delay != nil {
		time.Sleep(f.delay(q))
	}
	return nil, int64(q.Page), nil
}

func (f *recordingFetcher) calls() []Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Query(nil), f.queries...)
}

func waitResult(t *testing.T, c *Coordinator) Result {
	t.Helper()
	select {
	case r := <-c.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a search result")
		return Result{}
	}
}

func TestTermEditsCollapseIntoOneQuery(t *testing.T) {
	f := &recordingFetcher{}
	c := NewCoordinator(f.fetch, 50*time.Millisecond)
	defer c.Stop()

	c.SetTerm("v")
	c.SetTerm("vi")
	c.SetTerm("vios")

	result := waitResult(t, c)
	assert.Equal(t, "vios", result.Query.Term)
	assert.Equal(t, 1, result.Query.Page)
	assert.False(t, result.ScrollToTop)

	// Only the final edit fires.
	require.Len(t, f.calls(), 1)
}

func TestFilterEditResetsToPageOne(t *testing.T) {
	f := &recordingFetcher{}
	c := NewCoordinator(f.fetch, 20*time.Millisecond)
	defer c.Stop()

	c.SetPage(4)
	r := waitResult(t, c)
	assert.Equal(t, 4, r.Query.Page)

	c.SetStatus("found")
	r = waitResult(t, c)
	assert.Equal(t, "found", r.Query.Status)
	assert.Equal(t, 1, r.Query.Page)
}

func TestPageNavigationIsImmediate(t *testing.T) {
	f := &recordingFetcher{}
	c := NewCoordinator(f.fetch, time.Hour)
	defer c.Stop()

	c.SetPage(3)

	result := waitResult(t, c)
	assert.Equal(t, 3, result.Query.Page)
	assert.True(t, result.ScrollToTop)
}

func TestStopClosesResults(t *testing.T) {
	f := &recordingFetcher{}
	c := NewCoordinator(f.fetch, 20*time.Millisecond)

	c.Stop()

	select {
	case _, ok := <-c.Results():
		assert.False(t, ok, "results channel still open after Stop")
	case <-time.After(time.Second):
		t.Fatal("results channel not closed after Stop")
	}

	// A consumer ranging over Results terminates instead of hanging.
	done := make(chan struct{})
	go func() {
		for range c.Results() {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("range over Results did not terminate after Stop")
	}

	// Stop is idempotent and later edits are ignored.
	c.Stop()
	c.SetTerm("vios")
	c.SetPage(2)
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, f.calls())
}

func TestStopDiscardsInFlightFetch(t *testing.T) {
	f := &recordingFetcher{
		delay: func(Query) time.Duration { return 100 * time.Millisecond },
	}
	c := NewCoordinator(f.fetch, time.Hour)

	c.Refresh()
	c.Stop()

	// The slow fetch completes after Stop; its result is dropped, not sent
	// on the closed channel.
	time.Sleep(200 * time.Millisecond)
	_, ok := <-c.Results()
	assert.False(t, ok)
}

func TestStaleResponseIsDropped(t *testing.T) {
	f := &recordingFetcher{
		delay: func(q Query) time.Duration {
			if q.Page == 1 {
				return 200 * time.Millisecond
			}
			return 0
		},
	}
	c := NewCoordinator(f.fetch, time.Hour)
	defer c.Stop()

	// Dispatch a slow page-1 query, then immediately supersede it.
	c.Refresh()
	c.SetPage(2)

	first := waitResult(t, c)
	assert.Equal(t, 2, first.Query.Page)

	// The slow page-1 answer must never surface.
	select {
	case r := <-c.Results():
		t.Fatalf("stale result delivered: %+v", r.Query)
	case <-time.After(400 * time.Millisecond):
	}
}
