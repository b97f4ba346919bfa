package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jcorbin/tally/internal/report"
	"github.com/jcorbin/tally/internal/server"
)

const shutdownGrace = 10 * time.Second

// ServeCmd runs the HTTP tally service until interrupted.
type ServeCmd struct {
	Addr    string `name:"addr" default:":8000" env:"TALLY_ADDR" help:"Listen address"`
	Config  string `name:"config" short:"c" type:"existingfile" help:"YAML config file supplying request defaults (default: nearest tally.yaml)"`
	MaxBody int64  `name:"max-body" default:"33554432" help:"Largest accepted request body, in bytes"`
}

func (c *ServeCmd) Run() error {
	cfg, err := (&CountCmd{Config: c.Config}).loadConfig()
	if err != nil {
		return err
	}

	logger := slog.Default()
	srv := &server.Server{
		Config:  cfg,
		MaxBody: c.MaxBody,
		Last:    &report.Memory{},
		Logger:  logger,
	}
	hs := &http.Server{
		Addr:              c.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", c.Addr)
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
