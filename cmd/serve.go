package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/config"
	"github.com/abhisek/tuturo/internal/logging"
	"github.com/abhisek/tuturo/internal/server"
	"github.com/abhisek/tuturo/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve learning paths over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		addr := e.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		gin.SetMode(e.cfg.Server.Mode)
		reg, err := session.NewRegistry(e.cfg.Server.MaxSessions, e.logger)
		if err != nil {
			return fmt.Errorf("session registry: %w", err)
		}

		// Only the log level is applied live; other settings need a restart.
		e.loader.Watch(func(cfg config.Config) {
			if logging.SetLevel(e.logger, cfg.Log.Level) {
				e.logger.WithField("level", cfg.Log.Level).Info("log level reloaded")
			}
		}, func(err error) {
			e.logger.WithError(err).Warn("config reload failed")
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return server.New(e.svc, reg, e.logger).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
