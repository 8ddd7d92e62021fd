package forecast

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/overcastlabs/weather-dash/internal/domain"
)

// Token identifies one in-flight query. Results carrying a token older
// than the latest issued one are discarded, so rapid re-queries resolve
// last-requested-wins regardless of network ordering.
type Token uint64

// State holds the latest weather report and query status. Results are
// applied atomically: a failed query keeps the previous report visible
// alongside the error.
type State struct {
	mu    sync.Mutex
	clock clockwork.Clock

	seq       Token
	loading   bool
	report    *domain.WeatherReport
	err       error
	updatedAt time.Time
}

// Snapshot is an immutable view of the container at one instant.
type Snapshot struct {
	Loading   bool
	Report    *domain.WeatherReport
	Err       error
	UpdatedAt time.Time
}

// NewState creates an empty state container.
func NewState(clock clockwork.Clock) *State {
	return &State{clock: clock}
}

// Begin registers a new query and returns its token. Any result from a
// previously issued token becomes stale.
func (s *State) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.loading = true
	return s.seq
}

// ApplyResult installs a successful report. Stale tokens are dropped
// without touching the container; it reports whether the result was
// applied.
func (s *State) ApplyResult(token Token, report domain.WeatherReport) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		return false
	}
	s.loading = false
	s.report = &report
	s.err = nil
	s.updatedAt = s.clock.Now()
	return true
}

// ApplyError records a failed query. The previous report, if any, stays
// in place. Stale tokens are dropped.
func (s *State) ApplyError(token Token, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		return false
	}
	s.loading = false
	s.err = err
	s.updatedAt = s.clock.Now()
	return true
}

// Snapshot returns the current view.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Loading:   s.loading,
		Report:    s.report,
		Err:       s.err,
		UpdatedAt: s.updatedAt,
	}
}
