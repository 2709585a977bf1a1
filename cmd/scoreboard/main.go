package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Shoot-Or-Die/internal/game"
	"github.com/Garsondee/Shoot-Or-Die/internal/scores"
)

func main() {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	var dbURL string
	var dbFile string
	var debug bool

	flag.StringVar(&addr, "addr", addr, "listen address (env SERVER_ADDR)")
	flag.StringVar(&dbURL, "db", os.Getenv("DATABASE_URL"), "PostgreSQL connection string; empty uses the JSON file")
	flag.StringVar(&dbFile, "file", "scores.json", "JSON score file")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "scoreboard",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	var store scores.Store
	var err error
	if dbURL != "" {
		store, err = scores.NewPostgresStore(dbURL)
		logger.Info("using PostgreSQL persistence")
	} else {
		store, err = scores.NewJSONStore(dbFile)
		logger.Info("using JSON persistence", "file", dbFile)
	}
	if err != nil {
		logger.Fatal("failed to initialize persistence", "error", err)
	}
	defer store.Close()

	hub := scores.NewHub(logger)
	srv := scores.NewServer(store, hub,
		scores.WithLevels(game.LevelNames()...),
		scores.WithServerLogger(logger),
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", addr, "levels", game.LevelNames())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
