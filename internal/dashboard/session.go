package dashboard

import (
	"sync"

	"github.com/i474232898/weather-dashboard/internal/view"
)

// Session is one open dashboard page. Network work happens outside the lock;
// results are applied under it together with the ticket of the attempt that
// produced them, so a stale completion can never overwrite a newer view.
type Session struct {
	ID string

	mu      sync.Mutex
	machine *view.Machine
}

// NewSession creates a session in the Form state.
func NewSession(id string) *Session {
	return &Session{ID: id, machine: view.NewMachine()}
}

// State returns the current view state.
func (s *Session) State() view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.State()
}

func (s *Session) with(fn func(m *view.Machine)) view.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.machine)
	return s.machine.State()
}
