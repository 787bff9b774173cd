package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/tomz197/voidfighter/internal/broadcast"
	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/draw"
	"github.com/tomz197/voidfighter/internal/logging"
	"github.com/tomz197/voidfighter/internal/loop/client"
	"github.com/tomz197/voidfighter/internal/loop/server"
	"github.com/tomz197/voidfighter/internal/metrics"
	"github.com/tomz197/voidfighter/internal/starfield"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultHTTPAddr    = ":9090"
)

// app holds the state shared by every SSH session.
type app struct {
	logger   *log.Logger
	factory  *server.Factory
	registry *server.Registry
	stars    *starfield.Field
}

func main() {
	logger := logging.New(os.Stderr, "ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	httpAddr := config.GetEnv("HTTP_ADDR", defaultHTTPAddr)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("Failed to get working directory", "error", workErr)
	}
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "workingDir", workingDir)

	gameCfg, err := config.Load("")
	if err != nil {
		logger.Fatal("Failed to load game config", "error", err)
	}

	recorder := metrics.New()
	hub := broadcast.NewHub(logger.WithPrefix("spectate"), recorder.SnapshotDropped)
	registry := server.NewRegistry()

	a := &app{
		logger: logger,
		factory: &server.Factory{
			Config:    gameCfg,
			Registry:  registry,
			Publisher: hub,
			Observer:  recorder,
			Logger:    logger.WithPrefix("game"),
		},
		registry: registry,
		stars:    starfield.New(gameCfg.Stars),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	mux.Handle("/ws", hub)
	httpServer := &http.Server{Addr: httpAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			wishlogging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("SSH server error", "error", err)
		}
	}()

	logger.Info("Starting metrics and spectator feed", "addr", httpAddr)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Gracefully shut down: notify players and wait for their sessions to end
	logger.Info("Notifying connected players about shutdown...", "sessions", registry.Len())
	registry.Shutdown(15 * time.Second)
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// gameMiddleware handles SSH sessions and runs the game client.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User())
		logger.Info("New game connection", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		clientOpts := client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Shutdown:     a.registry.Closing(),
			Stars:        a.stars,
			Logger:       logger,
		}

		start := func(ctx context.Context) server.GameServer {
			return a.factory.Start(ctx)
		}

		c := client.NewClient(start, reader, sess, clientOpts)
		if err := c.Run(sess.Context()); err != nil {
			logger.Error("Game error", "error", err)
		}

		logger.Info("Connection ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
