package server

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/voidfighter/internal/clock"
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/world"
)

// Registry tracks the running sessions so the process can shut them down together.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	closeOnce sync.Once
	closing   chan struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		closing:  make(chan struct{}),
	}
}

// Closing is closed when Shutdown begins. Clients watch it to show the
// shutdown notice and leave on their own.
func (r *Registry) Closing() <-chan struct{} {
	return r.closing
}

// Add registers a session.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

// Remove forgets a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get returns the session with the given ID, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Len reports how many sessions are running.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Shutdown gracefully shuts down the server by notifying all clients
// and waiting for their sessions to end (up to the given timeout).
func (r *Registry) Shutdown(timeout time.Duration) {
	r.closeOnce.Do(func() { close(r.closing) })

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if r.Len() == 0 {
			return
		}
		select {
		case <-deadline:
			return
		case <-ticker.C:
		}
	}
}

// Factory builds and starts sessions that share one configuration.
type Factory struct {
	Config    *config.Game
	Registry  *Registry
	Publisher Publisher
	Observer  Observer
	Logger    *log.Logger

	// Seed fixes enemy placement for every session when non-zero.
	Seed int64
}

// Start creates a fresh world and runs it until ctx is cancelled.
// The session leaves the registry once its loop exits.
func (f *Factory) Start(ctx context.Context) *Session {
	seed := f.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := world.New(f.Config, clock.NewMonotonic(), rand.New(rand.NewSource(seed)))
	s := NewSession(w, f.Logger, f.Publisher, f.Observer)

	if f.Registry != nil {
		f.Registry.Add(s)
	}
	s.observer.SessionStarted()
	s.logger.Info("Session started", "enemies", len(w.Enemies))

	go func() {
		defer func() {
			if f.Registry != nil {
				f.Registry.Remove(s.id)
			}
			s.observer.SessionEnded()
			s.logger.Info("Session ended")
		}()
		s.Run(ctx)
	}()
	return s
}
