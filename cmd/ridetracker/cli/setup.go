package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridetracker/ridetracker/internal/config"
	"github.com/ridetracker/ridetracker/internal/dashboard"
	"github.com/ridetracker/ridetracker/internal/logger"
	"github.com/ridetracker/ridetracker/internal/money"
	"github.com/ridetracker/ridetracker/internal/rides"
)

// loadConfig resolves the config file, environment and global flags.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if flagAPIURL != "" {
		cfg.BaseURL = strings.TrimRight(flagAPIURL, "/")
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return config.Config{}, fmt.Errorf("api URL must start with http:// or https://")
	}
	return cfg, nil
}

// newController wires a dashboard controller to the configured API.
func newController(cfg config.Config, view dashboard.View, confirm dashboard.Confirmer, log *zap.Logger) (*dashboard.Controller, error) {
	f, err := money.New(cfg.Locale)
	if err != nil {
		return nil, err
	}
	client := rides.NewClient(cfg.BaseURL, cfg.Timeout)
	return dashboard.New(client, view, confirm, f, dashboard.Options{
		MessageDelay: cfg.MessageDelay,
		Logger:       log,
	}), nil
}

// terminal is a dashboard rendered to the command's output.
type terminal struct {
	log  *zap.Logger
	view *termView
	ctrl *dashboard.Controller
}

func openTerminal(cmd *cobra.Command, confirm dashboard.Confirmer) (*terminal, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Development, logger.Level(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	view := newTermView(cmd.ErrOrStderr())
	ctrl, err := newController(cfg, view, confirm, log)
	if err != nil {
		return nil, err
	}
	return &terminal{log: log, view: view, ctrl: ctrl}, nil
}

func (t *terminal) close() {
	t.ctrl.Close()
	_ = t.log.Sync()
}
