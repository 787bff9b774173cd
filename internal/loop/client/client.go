package client

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/voidfighter/internal/draw"
	"github.com/tomz197/voidfighter/internal/input"
	"github.com/tomz197/voidfighter/internal/loop/config"
	"github.com/tomz197/voidfighter/internal/loop/server"
	"github.com/tomz197/voidfighter/internal/starfield"
	"github.com/tomz197/voidfighter/internal/world"
)

// StartFunc starts a fresh game session that runs until ctx is cancelled.
type StartFunc func(ctx context.Context) server.GameServer

// Client handles rendering and input for a single connection.
type Client struct {
	start         StartFunc
	session       server.GameServer
	cancelSession context.CancelFunc
	shutdown      <-chan struct{}

	state        *ClientState
	canvas       *draw.Canvas
	frame        *draw.Frame // Queues canvas and HUD output for one frame
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	stars        *starfield.Field
	rng          *rand.Rand // star flicker
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Shutdown     <-chan struct{}  // Closed when the server is shutting down
	Stars        *starfield.Field // Optional backdrop
	Logger       *log.Logger
}

// NewClient creates a client that starts sessions with start.
func NewClient(start StartFunc, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Client{
		start:        start,
		shutdown:     opts.Shutdown,
		state:        NewClientState(),
		canvas:       canvas,
		frame:        draw.NewFrame(w, canvas),
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		stars:        opts.Stars,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects, ctx is
// cancelled or the shutdown countdown ends.
func (c *Client) Run(ctx context.Context) error {
	draw.SetCursorVisible(c.writer, false)
	defer draw.SetCursorVisible(c.writer, true)
	draw.ClearScreen(c.writer)
	defer c.stopSession()

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		c.state.stateTime += c.state.delta.Seconds()
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		switch c.state.GameState {
		case GameStateStart:
			c.updateStartState()
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateGameOver:
			c.updateGameOverState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and sends it to the session.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}

	// Send input to the session if playing
	if c.state.GameState == GameStatePlaying && c.session != nil {
		c.session.SendInput(c.state.Input)
	}
}

// processServerEvents handles the shutdown notice and events from the session.
func (c *Client) processServerEvents() {
	select {
	case <-c.shutdown:
		if c.state.GameState != GameStateShutdown {
			c.state.setGameState(GameStateShutdown)
			c.state.shutdownTimer = config.ShutdownDisplaySeconds
		}
	default:
	}

	if c.session == nil {
		return
	}
	for {
		select {
		case ev := <-c.session.Events():
			c.handleEvent(ev)
		default:
			return
		}
	}
}

func (c *Client) handleEvent(ev world.Event) {
	switch ev.Type {
	case world.EventNoAmmo:
		c.state.warningTimer = config.WarningDisplaySeconds
	case world.EventHit:
		c.state.flashes = append(c.state.flashes, hitFlash{
			X:      ev.X,
			Y:      ev.Y,
			Scale:  ev.Scale,
			frames: config.HitFlashFrames,
		})
	case world.EventEnemyDestroyed:
		c.state.kills++
	case world.EventGameOver:
		c.enterGameOver()
	}
}

func (c *Client) enterGameOver() {
	if c.state.GameState != GameStatePlaying {
		return
	}
	c.state.survived = c.state.stateTime
	c.state.setGameState(GameStateGameOver)
	c.logger.Info("Game over", "kills", c.state.kills, "survived", c.state.survived)
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.frame.Reset()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

// updatePlayingState keeps the camera on the player and ages HUD effects.
// The snapshot's GameOver flag also ends the run, since events can be dropped.
func (c *Client) updatePlayingState() {
	c.followPlayer()
	c.state.ageEffects()
	if c.session == nil {
		return
	}
	if snap := c.session.GetSnapshot(); snap != nil && snap.GameOver {
		c.enterGameOver()
	}
}

// updateGameOverState waits for a restart request once the delay has passed.
func (c *Client) updateGameOverState() {
	c.followPlayer()
	c.state.ageEffects()
	if c.state.stateTime < config.RestartDelaySeconds {
		return
	}
	if c.state.Input.Space || c.state.Input.Enter {
		c.startGame()
	}
}

func (c *Client) followPlayer() {
	if c.session == nil {
		return
	}
	if snap := c.session.GetSnapshot(); snap != nil {
		c.state.Camera = Camera{X: snap.Player.X, Y: snap.Player.Y}
	}
}

// startGame throws away any previous session and starts a new one.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.stopSession()

	ctx, cancel := context.WithCancel(context.Background())
	c.session = c.start(ctx)
	c.cancelSession = cancel

	c.state.kills = 0
	c.state.warningTimer = 0
	c.state.flashes = c.state.flashes[:0]
	c.state.Camera = Camera{}
	c.followPlayer()
	c.state.setGameState(GameStatePlaying)
	c.logger.Debug("Game started", "session", c.session.ID())
}

func (c *Client) stopSession() {
	if c.cancelSession != nil {
		c.cancelSession()
		c.cancelSession = nil
	}
	c.session = nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
