package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/llm"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		subject, _ := cmd.Flags().GetString("subject")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit: limit, Purpose: purpose, Subject: subject,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No model calls recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-10s  %-22s  %-20s  %6s  %6s  %6s\n",
			"ID", "Time", "Purpose", "Subject", "Model", "In", "Out", "Ms")
		fmt.Println(strings.Repeat("─", 106))
		for _, e := range events {
			mark := ""
			if !e.Success {
				mark = "  failed"
			}
			fmt.Printf("%-5d  %-16s  %-10s  %-22s  %-20s  %6d  %6d  %6d%s\n",
				e.ID, e.Timestamp.Local().Format("01-02 15:04:05"), e.Purpose,
				clip(orDash(e.Subject), 22), clip(e.Model, 20),
				e.InputTokens, e.OutputTokens, e.LatencyMs, mark)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and answer of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Printf("#%d  %s  %s via %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Model, e.Provider)
		fmt.Printf("%s for %s", e.Purpose, orDash(e.Subject))
		if e.SessionID != "" {
			fmt.Printf(" (session %s)", e.SessionID)
		}
		fmt.Printf("\n%d in / %d out tokens, %dms", e.InputTokens, e.OutputTokens, e.LatencyMs)
		if p, ok := llm.PriceFor(e.Model); ok {
			fmt.Printf(", about %s", formatCost(p.Cost(e.InputTokens, e.OutputTokens)))
		}
		fmt.Println()
		if !e.Success {
			fmt.Printf("failed: %s\n", e.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"Prompt", e.RequestBody},
			{"Answer", e.ResponseBody},
		} {
			fmt.Printf("\n── %s %s\n", part.title, strings.Repeat("─", 56-len(part.title)))
			if part.body == "" {
				fmt.Println("(empty)")
				continue
			}
			fmt.Println(part.body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per purpose and subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		ctx := cmd.Context()
		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		bySubject, err := repo.LLMUsageBySubject(ctx)
		if err != nil {
			return fmt.Errorf("query subject usage: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		writeStats(os.Stdout, byPurpose, bySubject, byModel)
		return nil
	},
}

// subjectTotals is one subject's row in the stats report.
type subjectTotals struct {
	subject       string
	paths, theory int
	tokens        int
	cost          float64
	partial       bool
}

// writeStats prints usage by purpose, by subject and by model. Costs are
// summed from the subject rows, which carry the model of every call.
func writeStats(w io.Writer, byPurpose []store.LLMUsageStats, bySubject []store.LLMSubjectUsage, byModel []store.LLMModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No model calls recorded yet.")
		return
	}

	var bill llm.Bill
	purposeCost := map[string]float64{}
	purposePartial := map[string]bool{}
	var subjects []*subjectTotals
	index := map[string]*subjectTotals{}
	for _, u := range bySubject {
		cost, ok := bill.Add(u.Model, u.InputTokens, u.OutputTokens)
		purposeCost[u.Purpose] += cost
		purposePartial[u.Purpose] = purposePartial[u.Purpose] || !ok

		st := index[u.Subject]
		if st == nil {
			st = &subjectTotals{subject: u.Subject}
			index[u.Subject] = st
			subjects = append(subjects, st)
		}
		switch u.Purpose {
		case pathway.PurposeCurriculum:
			st.paths += u.Calls
		case pathway.PurposeTheory:
			st.theory += u.Calls
		}
		st.tokens += u.InputTokens + u.OutputTokens
		st.cost += cost
		st.partial = st.partial || !ok
	}

	rule := strings.Repeat("─", 74)
	fmt.Fprintln(w, "By purpose")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-12s  %6s  %10s  %10s  %8s  %12s\n", "Purpose", "Calls", "Input", "Output", "Avg ms", "Cost")
	var calls, in, out int
	for _, p := range byPurpose {
		fmt.Fprintf(w, "%-12s  %6d  %10d  %10d  %8d  %12s\n",
			p.Purpose, p.Calls, p.InputTokens, p.OutputTokens, p.AvgLatencyMs,
			costCell(purposeCost[p.Purpose], purposePartial[p.Purpose]))
		calls += p.Calls
		in += p.InputTokens
		out += p.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-12s  %6d  %10d  %10d  %8s  %12s\n", "Total", calls, in, out, "", costCell(bill.Total, bill.Partial()))

	sort.SliceStable(subjects, func(i, j int) bool { return subjects[i].cost > subjects[j].cost })
	fmt.Fprintln(w)
	fmt.Fprintln(w, "By subject")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-28s  %6s  %7s  %10s  %12s\n", "Subject", "Paths", "Theory", "Tokens", "Cost")
	for _, st := range subjects {
		fmt.Fprintf(w, "%-28s  %6d  %7d  %10d  %12s\n",
			clip(orDash(st.subject), 28), st.paths, st.theory, st.tokens, costCell(st.cost, st.partial))
	}

	if len(byModel) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By model")
		fmt.Fprintln(w, rule)
		for _, m := range byModel {
			cell := "?"
			if p, ok := llm.PriceFor(m.Model); ok {
				cell = formatCost(p.Cost(m.InputTokens, m.OutputTokens))
			}
			fmt.Fprintf(w, "%-36s  %6d calls  %12s\n", clip(m.Model, 36), m.Calls, cell)
		}
	}

	if bill.Partial() {
		fmt.Fprintf(w, "\nNo price known for %s; costs marked + are lower bounds.\n", strings.Join(bill.Unpriced(), ", "))
	}
}

func costCell(usd float64, partial bool) string {
	s := formatCost(usd)
	if partial {
		s += "+"
	}
	return s
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show curriculum or theory calls")
	llmListCmd.Flags().StringP("subject", "s", "", "Only show calls for this subject")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
