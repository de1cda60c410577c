package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Addr      string        `help:"Listen address" default:":8080" env:"PIXELART_ADDR"`
	BodyLimit string        `help:"Maximum request body size" default:"16M" env:"PIXELART_BODY_LIMIT"`
	Shutdown  time.Duration `help:"Grace period for in-flight requests on shutdown" default:"10s"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Addr == "" {
		return fmt.Errorf("no listen address given")
	}
	if c.Shutdown < 0 {
		return fmt.Errorf("invalid shutdown grace period: %s", c.Shutdown)
	}
	return nil
}

func (c *CLICmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := NewServer(c.BodyLimit)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", c.Addr)
		errCh <- e.Start(c.Addr)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down", "grace", c.Shutdown)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Shutdown)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("could not shut down server: %w", err)
	}
	return nil
}
