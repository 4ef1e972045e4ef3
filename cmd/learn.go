package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/app"
	"github.com/abhisek/tuturo/internal/session"
	"github.com/abhisek/tuturo/internal/tutor"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start the interactive learning path (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, learnCmd} {
		c.Flags().Bool("onboard", false, "Ask the profile questions before the home screen")
		c.Flags().Bool("no-splash", false, "Skip the welcome animation")
	}
}

// runApp builds the learning path service and launches the TUI on a
// single local session.
func runApp(cmd *cobra.Command) error {
	e, err := newEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	reg, err := session.NewRegistry(1, e.logger)
	if err != nil {
		return fmt.Errorf("session registry: %w", err)
	}
	sess := reg.Create(e.cfg.Profile)

	onboard, _ := cmd.Flags().GetBool("onboard")
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(app.Options{
		Tutor:      tutor.New(e.svc, sess, e.store.EventRepo()),
		Onboard:    onboard,
		SkipSplash: noSplash,
	})
}
