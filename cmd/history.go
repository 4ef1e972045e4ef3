package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent curriculum requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")
		verbose, _ := cmd.Flags().GetBool("topics")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryCurriculumEvents(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			Session: sessionID,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No curriculum requests found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-36s  %s\n", "ID", "Timestamp", "Action", "Session", "Subject")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range events {
			fmt.Printf("%-5d  %-19s  %-10s  %-36s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Action,
				clip(e.SessionID, 36),
				e.Subject,
			)
			if e.Detail != "" {
				fmt.Printf("       %s\n", clip(e.Detail, 92))
			}
			if verbose {
				for i, t := range e.Topics {
					fmt.Printf("       %2d. %s\n", i+1, t)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	historyCmd.Flags().String("session", "", "Only show requests from this session")
	historyCmd.Flags().BoolP("topics", "t", false, "Print the generated topics")
}
