package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/config"
	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/logging"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/store"
)

// env holds the dependencies shared by the commands that talk to a model.
type env struct {
	loader *config.Loader
	cfg    config.Config
	logger *logrus.Logger
	store  *store.Store
	svc    *pathway.Service

	closers []io.Closer
}

// loadConfig reads the config file named by --config and applies the
// --provider override.
func loadConfig(cmd *cobra.Command) (*config.Loader, config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	loader, err := config.NewLoader(path)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg := loader.Config()
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	return loader, cfg, nil
}

// newEnv loads configuration, opens the audit log and builds the learning
// path service. With ownsTerminal set, logs go to the configured file or
// nowhere.
func newEnv(cmd *cobra.Command, ownsTerminal bool) (*env, error) {
	loader, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, fmt.Errorf("invalid LLM config: %w (pass --provider mock to try tuturo offline)", err)
	}

	e := &env{loader: loader, cfg: cfg}

	if ownsTerminal && cfg.Log.File == "" {
		e.logger = logging.Discard()
	} else {
		logger, closer, err := logging.New(cfg.Log)
		if err != nil {
			return nil, err
		}
		e.logger = logger
		e.closers = append(e.closers, closer)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DB)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)
	e.logger.WithField("db", dbPath).Debug("audit log opened")

	deps := llm.Deps{Events: st.EventRepo(), Logger: e.logger}
	if cfg.LLM.Provider == "mock" {
		deps.Base = demoProvider()
	}
	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, deps)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}

	e.svc = pathway.NewService(provider, cfg.Pathway, e.logger)
	e.svc.SetRecorder(st.EventRepo())

	e.logger.WithFields(logrus.Fields{
		"provider": cfg.LLM.Provider,
		"model":    provider.ModelID(),
	}).Info("learning path service ready")

	return e, nil
}

// Close releases the store and the log file, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
	e.closers = nil
}

// openStore opens the audit log alone, for the read-only inspection
// commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
