package server

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/voidfighter/internal/clock"
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/input"
	"github.com/tomz197/voidfighter/internal/logging"
	"github.com/tomz197/voidfighter/internal/world"
)

type recordingPublisher struct {
	mu     sync.Mutex
	ids    []string
	frames []uint64
}

func (p *recordingPublisher) Publish(id string, snap *world.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, id)
	p.frames = append(p.frames, snap.Frame)
}

type countingObserver struct {
	mu      sync.Mutex
	ticks   int
	started int
	ended   int
}

func (o *countingObserver) ObserveTick(time.Duration, []world.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ticks++
}

func (o *countingObserver) SessionStarted() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *countingObserver) SessionEnded() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended++
}

func (o *countingObserver) counts() (int, int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ticks, o.started, o.ended
}

func newTestSession(t *testing.T, pub Publisher) (*Session, *clock.Manual) {
	t.Helper()
	cfg := config.Default()
	cfg.Enemy.Count = 0
	clk := clock.NewManual(1000)
	w := world.New(cfg, clk, rand.New(rand.NewSource(3)))
	return NewSession(w, logging.Discard(), pub, nil), clk
}

func drainEvents(s *Session) []world.EventType {
	var types []world.EventType
	for {
		select {
		case ev := <-s.Events():
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestStepPublishesSnapshot(t *testing.T) {
	pub := &recordingPublisher{}
	s, _ := newTestSession(t, pub)

	require.NotNil(t, s.GetSnapshot())
	assert.Zero(t, s.GetSnapshot().Frame)

	s.Step()
	s.Step()

	assert.Equal(t, uint64(2), s.GetSnapshot().Frame)
	assert.Equal(t, []string{s.ID(), s.ID()}, pub.ids)
	assert.Equal(t, []uint64{1, 2}, pub.frames)
}

func TestFireTriggerIsConsumedByOneTick(t *testing.T) {
	s, clk := newTestSession(t, nil)

	s.SendInput(input.Input{Fire: true})
	s.Step()
	assert.Equal(t, []world.EventType{world.EventFired}, drainEvents(s))
	assert.Len(t, s.GetSnapshot().Projectiles, 1)

	clk.Advance(500)
	s.Step()
	assert.Empty(t, drainEvents(s))
}

func TestSendInputNeverBlocks(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.SendInput(input.Input{SwitchWeapon: true})
	for i := 0; i < 4*inputBuffer; i++ {
		s.SendInput(input.Input{})
	}
	s.Step()

	assert.Equal(t, []world.EventType{world.EventWeaponSwitched}, drainEvents(s))
	assert.Equal(t, 1, s.GetSnapshot().Player.Weapon)
}

func TestHeldKeysCarryOver(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.SendInput(input.Input{Up: true})
	s.Step()
	first := s.GetSnapshot().Player.VY
	s.Step()
	second := s.GetSnapshot().Player.VY

	assert.Negative(t, first)
	assert.Less(t, second, first)
}

func TestRegistryShutdownWaitsForSessions(t *testing.T) {
	reg := NewRegistry()
	s, _ := newTestSession(t, nil)
	reg.Add(s)
	require.Same(t, s, reg.Get(s.ID()))

	go func() {
		<-reg.Closing()
		reg.Remove(s.ID())
	}()

	reg.Shutdown(2 * time.Second)
	assert.Zero(t, reg.Len())
	assert.Nil(t, reg.Get(s.ID()))
}

func TestRegistryShutdownTimesOut(t *testing.T) {
	reg := NewRegistry()
	s, _ := newTestSession(t, nil)
	reg.Add(s)

	start := time.Now()
	reg.Shutdown(50 * time.Millisecond)

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, reg.Len())
	select {
	case <-reg.Closing():
	default:
		t.Fatal("shutdown notice not delivered")
	}

	// A second Shutdown must not panic on the closed channel.
	reg.Shutdown(0)
}

func TestFactoryRunsUntilCancelled(t *testing.T) {
	reg := NewRegistry()
	obs := &countingObserver{}
	f := &Factory{
		Config:   config.Default(),
		Registry: reg,
		Observer: obs,
		Logger:   logging.Discard(),
		Seed:     7,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := f.Start(ctx)
	assert.Equal(t, 1, reg.Len())
	assert.Len(t, s.GetSnapshot().Enemies, 3)

	require.Eventually(t, func() bool {
		ticks, _, _ := obs.counts()
		return ticks > 0
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop")
	}

	require.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		_, _, ended := obs.counts()
		return ended == 1
	}, time.Second, 5*time.Millisecond)
	_, started, _ := obs.counts()
	assert.Equal(t, 1, started)
}
