// Package main is the entry point for the sceneforged server.
//
// sceneforged persists 3D editor projects and user accounts in MongoDB,
// exposes them over a RESTful HTTP API, and pushes live project updates
// to connected editor clients over a websocket sync endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/jacentio/sceneforge/internal/httpd"
	"github.com/jacentio/sceneforge/store"
	"github.com/jacentio/sceneforge/stream"
	"github.com/jacentio/sceneforge/svc"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "sceneforged: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	httpAddr := flag.String("http", "localhost:4000", "Address to listen on (e.g., localhost:4000, :4000)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	certFile := flag.String("cert", "", "TLS certificate file (optional; serves plain HTTP when empty)")
	keyFile := flag.String("key", "", "TLS private key file")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}
	if (*certFile == "") != (*keyFile == "") {
		return errors.New("cert and key must both be set or both be empty")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	ll := &slog.LevelVar{}
	switch *logLevel {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
		ll.Set(slog.LevelInfo)
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %q", *logLevel)
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	tokens, err := svc.NewTokenIssuer([]byte(secret))
	if err != nil {
		return err
	}

	st, err := store.New(store.Config{
		URI:      os.Getenv("MONGO_URI"),
		Database: os.Getenv("MONGO_DBNAME"),
	})
	if err != nil {
		return err
	}
	if err := st.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logger.Warn("closing store", "error", err)
		}
	}()

	projects := svc.NewProjectService(store.NewRepo(st, store.Projects), logger)
	users := svc.NewUserService(store.NewRepo(st, store.Users), tokens, logger)

	broadcaster := stream.NewBroadcaster(logger)
	watcher := stream.NewProjectWatcher(st, logger)
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("start project watcher: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := watcher.Stop(stopCtx); err != nil && !errors.Is(err, stream.ErrNotWatching) {
			logger.Warn("stopping watcher", "error", err)
		}
	}()
	go func() {
		if err := stream.Relay(ctx, watcher.Updates(), broadcaster); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("update relay stopped", "error", err)
		}
	}()

	server := httpd.New(projects, users, tokens, broadcaster, logger)
	httpServer := &http.Server{
		Addr:              *httpAddr,
		Handler:           server.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", *httpAddr, "tls", *certFile != "")
		if *certFile != "" {
			serverErr <- httpServer.ListenAndServeTLS(*certFile, *keyFile)
		} else {
			serverErr <- httpServer.ListenAndServe()
		}
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		logger.Info("server stopped")
	}
	return nil
}
