package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/tutor"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum <subject>",
	Short: "Generate a learning path and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := args[0]
		open, _ := cmd.Flags().GetInt("open")
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := newEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := pathway.WithSession(cmd.Context(), "cli")
		st := curriculum.NewStore()

		out, err := e.svc.RequestCurriculum(ctx, st, e.cfg.Profile, subject)
		if err != nil {
			return errors.New(tutor.Describe(err))
		}
		if out.Refused {
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{"refused": true, "message": pathway.RefusalMessage})
			}
			fmt.Println(pathway.RefusalMessage)
			return nil
		}

		view := out.View
		var theory string
		if open > 0 {
			if open > len(view.Topics) {
				return fmt.Errorf("--open must be between 1 and %d", len(view.Topics))
			}
			if view, err = st.SelectTopic(subject, view.Topics[open-1]); err != nil {
				return err
			}
			if theory, err = e.svc.RequestTheory(ctx, st, e.cfg.Profile, subject, view.CurrentTopic); err != nil {
				return errors.New(tutor.Describe(err))
			}
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				curriculum.View
				Theory string `json:"theory,omitempty"`
			}{view, theory})
		}

		printOverview(view)
		if theory != "" {
			fmt.Printf("\n── %s ──\n\n%s\n", view.CurrentTopic, theory)
		}
		return nil
	},
}

func init() {
	curriculumCmd.Flags().Int("open", 0, "Open topic N (1-based) and print its theory")
	curriculumCmd.Flags().Bool("json", false, "Print the learning path as JSON")
}
