package geosuggest

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/overcastlabs/weather-dash/internal/domain"
	"github.com/overcastlabs/weather-dash/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 300 * time.Millisecond

type stubGeocoder struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]domain.Place
	err     error
	block   chan struct{} // non-nil blocks Geocode until closed
}

func (g *stubGeocoder) Geocode(_ context.Context, query string) ([]domain.Place, error) {
	g.mu.Lock()
	g.calls = append(g.calls, query)
	block := g.block
	g.mu.Unlock()

	if block != nil {
		<-block
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.results[query], nil
}

func (g *stubGeocoder) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type stubProber struct{ err error }

func (p *stubProber) ProbeKey(context.Context) error { return p.err }

type resultRecorder struct {
	mu      sync.Mutex
	results []Result
	notify  chan struct{}
}

func newResultRecorder() *resultRecorder {
	return &resultRecorder{notify: make(chan struct{}, 16)}
}

func (r *resultRecorder) record(res Result) {
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
	r.notify <- struct{}{}
}

func (r *resultRecorder) wait(t *testing.T) Result {
	t.Helper()
	select {
	case <-r.notify:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a suggestion result")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results[len(r.results)-1]
}

func (r *resultRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

func testSuggester(g domain.Geocoder, p KeyProber, clock clockwork.Clock, rec *resultRecorder) *Suggester {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(g, p, clock, testDebounce, logger, observability.NewMetricsForTesting(), rec.record)
}

func TestObserve_DebouncedLookup(t *testing.T) {
	clock := clockwork.NewFakeClock()
	geo := &stubGeocoder{results: map[string][]domain.Place{
		"Berlin": {{Name: "Berlin", Country: "DE"}},
	}}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{}, clock, rec)

	s.Observe(context.Background(), "Berlin")
	assert.Zero(t, geo.callCount(), "no request before the quiescence window elapses")

	clock.Advance(testDebounce)
	res := rec.wait(t)
	require.NoError(t, res.Err)
	assert.Equal(t, "Berlin", res.Query)
	require.Len(t, res.Places, 1)
	assert.Equal(t, 1, geo.callCount())
}

func TestObserve_RapidEditsCollapseToOneRequest(t *testing.T) {
	clock := clockwork.NewFakeClock()
	geo := &stubGeocoder{results: map[string][]domain.Place{
		"Berlin": {{Name: "Berlin", Country: "DE"}},
	}}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{}, clock, rec)

	for _, q := range []string{"Be", "Ber", "Berl", "Berlin"} {
		s.Observe(context.Background(), q)
		clock.Advance(testDebounce / 2)
	}
	clock.Advance(testDebounce)

	res := rec.wait(t)
	require.NoError(t, res.Err)
	assert.Equal(t, "Berlin", res.Query)
	assert.Equal(t, 1, geo.callCount(), "only the last edit survives the debounce")
}

func TestObserve_ShortQueryClearsWithoutRequest(t *testing.T) {
	clock := clockwork.NewFakeClock()
	geo := &stubGeocoder{}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{}, clock, rec)

	s.Observe(context.Background(), "B")
	res := rec.wait(t)
	require.NoError(t, res.Err)
	assert.Empty(t, res.Places)
	assert.NotNil(t, res.Places)
	assert.Zero(t, geo.callCount())
}

func TestObserve_ShortQueryCancelsPendingLookup(t *testing.T) {
	clock := clockwork.NewFakeClock()
	geo := &stubGeocoder{}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{}, clock, rec)

	s.Observe(context.Background(), "Berlin")
	s.Observe(context.Background(), "") // input cleared before the window elapsed
	rec.wait(t)

	clock.Advance(2 * testDebounce)
	assert.Zero(t, geo.callCount())
	assert.Equal(t, 1, rec.count())
}

func TestObserve_StaleCompletionDropped(t *testing.T) {
	clock := clockwork.NewFakeClock()
	block := make(chan struct{})
	geo := &stubGeocoder{
		block: block,
		results: map[string][]domain.Place{
			"Paris": {{Name: "Paris", Country: "FR"}},
		},
	}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{}, clock, rec)

	s.Observe(context.Background(), "Berlin")
	clock.Advance(testDebounce)

	// Wait for the first lookup to be in flight, then supersede it.
	require.Eventually(t, func() bool { return geo.callCount() == 1 }, 2*time.Second, time.Millisecond)
	s.Observe(context.Background(), "Paris")

	geo.mu.Lock()
	geo.block = nil
	geo.mu.Unlock()
	close(block) // first lookup settles after being superseded

	clock.Advance(testDebounce)
	res := rec.wait(t)
	require.NoError(t, res.Err)
	assert.Equal(t, "Paris", res.Query, "the superseded Berlin result must be dropped")
	assert.Equal(t, 1, rec.count())
}

func TestLookup_EmptyResponseIsNoResults(t *testing.T) {
	rec := newResultRecorder()
	s := testSuggester(&stubGeocoder{}, &stubProber{}, clockwork.NewFakeClock(), rec)

	_, err := s.Lookup(context.Background(), "Nowheresville")
	var noResults *domain.NoResultsError
	require.ErrorAs(t, err, &noResults)
	assert.Equal(t, "Nowheresville", noResults.Query)
}

func TestLookup_ProbeFailureShortCircuits(t *testing.T) {
	geo := &stubGeocoder{}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{err: &domain.AuthError{Reason: "placeholder API key"}}, clockwork.NewFakeClock(), rec)

	_, err := s.Lookup(context.Background(), "Berlin")
	var authErr *domain.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, geo.callCount(), "no geocode call with an invalid credential")
}

func TestLookup_GeocodeErrorPassesThrough(t *testing.T) {
	geo := &stubGeocoder{err: &domain.RateLimitError{}}
	rec := newResultRecorder()
	s := testSuggester(geo, &stubProber{}, clockwork.NewFakeClock(), rec)

	_, err := s.Lookup(context.Background(), "Berlin")
	var rl *domain.RateLimitError
	require.ErrorAs(t, err, &rl)
}
