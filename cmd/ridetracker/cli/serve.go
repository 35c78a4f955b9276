package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridetracker/ridetracker/internal/dashboard"
	"github.com/ridetracker/ridetracker/internal/logger"
	"github.com/ridetracker/ridetracker/internal/web"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the dashboard as a web page. Every page load fetches fresh
statistics and history from the API; the forms on the page add, edit and
delete rides.

Examples:
  ridetracker serve
  ridetracker serve --listen 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.ListenAddr = serveListen
	}

	log, err := logger.New(cfg.Development, logger.Level(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	page := dashboard.NewPage()
	ctrl, err := newController(cfg, page, web.FormConfirmer{}, log)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	server, err := web.NewServer(ctrl, page, log)
	if err != nil {
		return err
	}
	defer server.Close()

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() {
		log.Info("dashboard server starting",
			zap.String("addr", cfg.ListenAddr),
			zap.String("api", cfg.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-done:
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("server stopped")
	return nil
}
