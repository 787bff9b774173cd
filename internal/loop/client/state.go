package client

import (
	"time"

	"github.com/tomz197/voidfighter/internal/input"
	"github.com/tomz197/voidfighter/internal/loop/config"
	"github.com/tomz197/voidfighter/internal/starfield"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active gameplay
	GameStateGameOver                  // Player ship destroyed, show restart prompt
	GameStateShutdown                  // Server is shutting down
)

// Camera is the world position shown at the center of the view.
type Camera struct {
	X, Y float64
}

// hitFlash is an impact marker drawn for a few frames after a hit.
type hitFlash struct {
	X, Y   float64
	Scale  float64
	frames int
}

// fpsCounter reports frames per second, refreshed once a second.
type fpsCounter struct {
	frames  int
	elapsed time.Duration
	value   int
}

func (f *fpsCounter) tick(d time.Duration) {
	f.frames++
	f.elapsed += d
	if f.elapsed >= time.Second {
		f.value = int(float64(f.frames)/f.elapsed.Seconds() + 0.5)
		f.frames = 0
		f.elapsed = 0
	}
}

// ClientState holds per-player state (input, camera, HUD timers, etc.).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	Camera        Camera
	GameState     GameState
	prevGameState GameState
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time (client-side)
	stateTime     float64       // Seconds spent in the current game state
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool

	warningTimer float64 // Seconds left on the out-of-ammo warning
	flashes      []hitFlash
	kills        int
	survived     float64 // Seconds the last game lasted
	fps          fpsCounter

	stars []starfield.Star // Reused between frames
	radar [config.RadarRows * 2][config.RadarCols]byte
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}

// setGameState switches phase and restarts the phase timer.
func (s *ClientState) setGameState(gs GameState) {
	s.GameState = gs
	s.stateTime = 0
}

// ageEffects advances HUD timers by one client frame.
func (s *ClientState) ageEffects() {
	if s.warningTimer > 0 {
		s.warningTimer -= s.delta.Seconds()
		if s.warningTimer < 0 {
			s.warningTimer = 0
		}
	}

	kept := s.flashes[:0]
	for _, f := range s.flashes {
		f.frames--
		if f.frames > 0 {
			kept = append(kept, f)
		}
	}
	s.flashes = kept
}
