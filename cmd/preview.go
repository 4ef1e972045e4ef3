package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tuturo/internal/curriculum"
	"github.com/abhisek/tuturo/internal/pathway"
	"github.com/abhisek/tuturo/internal/tutor"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Walk a generated learning path in the console",
	Long: `Generate a curriculum for one subject and navigate it line by line.

Commands: open N, next, prev, back, status <not_started|in_progress|completed|to_retry>,
list, help, quit. Useful for evaluating prompts against a provider without the TUI.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("subject", "s", "", "Subject to build a learning path for (required)")
	_ = previewCmd.MarkFlagRequired("subject")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")

	e, err := newEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := pathway.WithSession(cmd.Context(), "preview")
	st := curriculum.NewStore()
	profile := e.cfg.Profile

	fmt.Printf("Designing a %s learning path with %s...\n\n", subject, e.svc.ModelID())
	out, err := e.svc.RequestCurriculum(ctx, st, profile, subject)
	if err != nil {
		return errors.New(tutor.Describe(err))
	}
	if out.Refused {
		fmt.Println(pathway.RefusalMessage)
		return nil
	}
	printOverview(out.View)

	p := &previewSession{ctx: ctx, svc: e.svc, st: st, profile: profile, subject: subject}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "q" {
			return nil
		}
		if err := p.exec(fields[0], fields[1:]); err != nil {
			fmt.Println("error:", tutor.Describe(err))
		}
	}
}

type previewSession struct {
	ctx     context.Context
	svc     *pathway.Service
	st      *curriculum.Store
	profile curriculum.Profile
	subject string
}

func (p *previewSession) exec(verb string, args []string) error {
	switch verb {
	case "open", "o":
		if len(args) != 1 {
			return errors.New("usage: open N")
		}
		v, err := p.st.Get(p.subject)
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(v.Topics) {
			return fmt.Errorf("topic number must be between 1 and %d", len(v.Topics))
		}
		v, err = p.st.SelectTopic(p.subject, v.Topics[n-1])
		if err != nil {
			return err
		}
		return p.show(v)
	case "next", "n", "prev", "p":
		delta := 1
		if verb == "prev" || verb == "p" {
			delta = -1
		}
		v, err := p.st.Advance(p.subject, delta)
		if err != nil {
			return err
		}
		return p.show(v)
	case "back", "b":
		v, err := p.st.ClearSelection(p.subject)
		if err != nil {
			return err
		}
		printOverview(v)
	case "status":
		if len(args) != 1 {
			return errors.New("usage: status <not_started|in_progress|completed|to_retry>")
		}
		status, err := curriculum.ParseStatus(args[0])
		if err != nil {
			return err
		}
		v, err := p.st.Get(p.subject)
		if err != nil {
			return err
		}
		if !v.Selected() {
			return curriculum.ErrNoSelection
		}
		v, err = p.st.SetStatus(p.subject, v.CurrentTopic, status)
		if err != nil {
			return err
		}
		fmt.Println(v.Label(v.CurrentTopic))
	case "list", "l":
		v, err := p.st.Get(p.subject)
		if err != nil {
			return err
		}
		printOverview(v)
	case "help", "h", "?":
		fmt.Println("open N | next | prev | back | status <name> | list | quit")
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
	return nil
}

// show prints the theory for the current topic with its neighbours.
func (p *previewSession) show(v curriculum.View) error {
	text, err := p.svc.RequestTheory(p.ctx, p.st, p.profile, p.subject, v.CurrentTopic)
	if err != nil {
		return err
	}
	fmt.Printf("\n── %s (%d/%d) ──\n\n", v.CurrentTopic, v.CurrentIndex+1, len(v.Topics))
	fmt.Println(text)
	fmt.Println()
	if prev, ok := v.Previous(); ok {
		fmt.Printf("prev: %s\n", prev)
	}
	if next, ok := v.Next(); ok {
		fmt.Printf("next: %s\n", next)
	}
	return nil
}

func printOverview(v curriculum.View) {
	fmt.Printf("── %s ──\n", v.Subject)
	for i, t := range v.Topics {
		fmt.Printf("%2d. %s\n", i+1, v.Label(t))
	}
}
