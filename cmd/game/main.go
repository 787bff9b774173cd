package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/voidfighter/internal/config"
	"github.com/tomz197/voidfighter/internal/logging"
	"github.com/tomz197/voidfighter/internal/loop/client"
	"github.com/tomz197/voidfighter/internal/loop/server"
	"github.com/tomz197/voidfighter/internal/starfield"
)

func main() {
	logger := logging.New(os.Stderr, "game")

	gameCfg, err := config.Load("")
	if err != nil {
		logger.Fatal("Failed to load game config", "error", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the renderer while the game runs.
	factory := &server.Factory{
		Config: gameCfg,
		Logger: logging.Discard(),
	}
	start := func(ctx context.Context) server.GameServer {
		return factory.Start(ctx)
	}

	c := client.NewClient(start, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Stars: starfield.New(gameCfg.Stars),
	})
	runErr := c.Run(context.Background())

	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Error("Game error", "error", runErr)
		os.Exit(1)
	}
}
