package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
	"github.com/AakashShah07/Web-Development-Assesment/internal/repository"
	"github.com/AakashShah07/Web-Development-Assesment/internal/server"
	"github.com/AakashShah07/Web-Development-Assesment/pkg/logger"
)

func main() {
	var configFile string

	cmd := &cobra.Command{
		Use:           "schools-server",
		Short:         "Serve the school directory API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "optional config file (yaml, json or toml)")

	if err := cmd.Execute(); err != nil {
		os.Stderr.WriteString("CRITICAL: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.OpenDB(ctx, cfg.DB)
	if err != nil {
		log.Error("Failed to open database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
		return err
	}
	defer db.Close()

	srv, err := server.New(ctx, cfg, db, log)
	if err != nil {
		log.Error("Failed to create server", zap.Error(err))
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server failed", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
