package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/studycore/internal/config"
	"github.com/abhisek/studycore/internal/engine"
	"github.com/abhisek/studycore/internal/logger"
	"github.com/abhisek/studycore/internal/store"
	"github.com/spf13/cobra"
)

// env is what a command needs to talk to the engine.
type env struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	svc   *engine.Service
}

// Close flushes logs and closes the database.
func (e *env) Close() {
	e.store.Close()
	e.log.Sync()
}

// openEnv loads config, builds the logger, opens the store and wires the
// engine service.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	svc, err := engine.NewService(st, cfg, log.With("db", dbPath))
	if err != nil {
		st.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: st, svc: svc}, nil
}

// evalTime returns --now if set, otherwise the wall clock.
func evalTime(cmd *cobra.Command) (time.Time, error) {
	return timeFlag(cmd, "now")
}

// timeFlag parses an RFC 3339 flag, defaulting to the current time.
func timeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}
