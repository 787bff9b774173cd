package server

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/voidfighter/internal/input"
	"github.com/tomz197/voidfighter/internal/loop/config"
	"github.com/tomz197/voidfighter/internal/world"
)

// GameServer is the interface clients use to communicate with their game session.
// Decouples the Client from the concrete Session implementation, enabling
// testing and potential network-based implementations.
type GameServer interface {
	ID() string
	SendInput(in input.Input)
	GetSnapshot() *world.Snapshot
	Events() <-chan world.Event
}

// Compile-time check that Session implements GameServer.
var _ GameServer = (*Session)(nil)

// Publisher receives every snapshot a session produces.
type Publisher interface {
	Publish(sessionID string, snap *world.Snapshot)
}

// Observer is told about session lifecycle and tick timing.
type Observer interface {
	ObserveTick(d time.Duration, events []world.Event)
	SessionStarted()
	SessionEnded()
}

type nopObserver struct{}

func (nopObserver) ObserveTick(time.Duration, []world.Event) {}
func (nopObserver) SessionStarted()                          {}
func (nopObserver) SessionEnded()                            {}

const (
	inputBuffer  = 64
	eventsBuffer = 64
)

// Session runs one player's world on its own goroutine. The client talks to it
// only through channels and the published snapshot.
type Session struct {
	id       string
	world    *world.World
	snapshot atomic.Pointer[world.Snapshot]
	inputCh  chan input.Input
	eventsCh chan world.Event

	// input is the merged state the next tick will see. Owned by the tick goroutine.
	input input.Input

	publisher Publisher
	observer  Observer
	logger    *log.Logger

	done chan struct{}
}

// NewSession wraps w. publisher may be nil; a nil observer records nothing.
func NewSession(w *world.World, logger *log.Logger, publisher Publisher, observer Observer) *Session {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		id:        uuid.NewString(),
		world:     w,
		inputCh:   make(chan input.Input, inputBuffer),
		eventsCh:  make(chan world.Event, eventsBuffer),
		publisher: publisher,
		observer:  observer,
		done:      make(chan struct{}),
	}
	s.logger = logger.With("session", s.id)
	s.snapshot.Store(w.Snapshot())
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// SendInput queues an input snapshot for the next tick. Never blocks;
// input is dropped when the queue is full.
func (s *Session) SendInput(in input.Input) {
	select {
	case s.inputCh <- in:
	default:
	}
}

// GetSnapshot returns the latest world snapshot.
func (s *Session) GetSnapshot() *world.Snapshot {
	return s.snapshot.Load()
}

// Events delivers gameplay events. Events are dropped if the reader falls behind.
func (s *Session) Events() <-chan world.Event {
	return s.eventsCh
}

// Done is closed after Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run ticks the world at the server rate. Blocks until the context is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	s.logger.Debug("Session loop started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Session loop stopped", "frame", s.world.Frame)
			return
		default:
		}

		frameStart := time.Now()
		s.Step()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Step runs exactly one tick: drain input, advance the world, publish the result.
func (s *Session) Step() {
	s.collectInputs()

	start := time.Now()
	events := s.world.Tick(s.input)
	snap := s.world.Snapshot()
	s.observer.ObserveTick(time.Since(start), events)

	// Discrete triggers are consumed by the tick that saw them.
	s.input.Fire = false
	s.input.SwitchWeapon = false

	s.snapshot.Store(snap)
	for _, ev := range events {
		if ev.Type == world.EventGameOver {
			s.logger.Info("Player destroyed", "frame", ev.Frame)
		}
		select {
		case s.eventsCh <- ev:
		default:
		}
	}

	if s.publisher != nil {
		s.publisher.Publish(s.id, snap)
	}
}

// collectInputs folds all pending inputs into the tick's input state.
func (s *Session) collectInputs() {
	for {
		select {
		case in := <-s.inputCh:
			s.input = s.input.Merge(in)
		default:
			return
		}
	}
}
