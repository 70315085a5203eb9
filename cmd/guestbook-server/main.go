package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"guestbook/internal/guestbook"
	"guestbook/internal/logging"
	"guestbook/internal/server"
	"guestbook/internal/shared"
	"guestbook/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "optional JSON config file")
	envFile := flag.String("env-file", ".env", "dotenv file loaded into the environment if present")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load env (%s): %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := shared.LoadServerConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("guestbook-server stopped", zap.Error(err))
	}
}

func run(cfg *shared.ServerConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	st, err := store.Open(openCtx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer st.Close()

	api := &server.API{
		Service: guestbook.NewService(st, log.Named("guestbook")),
		Metrics: server.NewMetrics(),
		Log:     log,
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: server.NewRouter(api, server.RouterOptions{
			StaticDir:   cfg.StaticDir,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("guestbook-server listening",
			zap.String("addr", cfg.Addr),
			zap.String("backend", cfg.Backend),
			zap.String("data_file", cfg.DataFile),
			zap.String("db_path", cfg.DBPath),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownSeconds)*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
