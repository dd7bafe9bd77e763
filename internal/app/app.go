package app

import (
	"fmt"
	"io"
	"log/slog"

	"chromactl/internal/logging"
)

// App is what the commands run against.
type App struct {
	Config Config
	Log    *slog.Logger
	*Wire
}

// New validates cfg, builds the logger writing to logOut and wires the backend.
func New(cfg Config, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logOut, level, logging.Format(cfg.Log.Format))
	if err != nil {
		return nil, err
	}
	w, err := NewWire(cfg, log)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Log: log, Wire: w}, nil
}
