package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
	"github.com/alexanderramin/itinera/internal/refinement"
)

func newRefineCmd(app *App) *cobra.Command {
	var (
		req       requirementFlags
		planID    string
		feedbacks []string
	)

	cmd := &cobra.Command{
		Use:   "refine FILE --plan ID",
		Short: "Refine one plan from free-text feedback",
		Long: `Start a refinement session on one plan of a plan file. Each round turns
feedback into change requests, revises the plan with the configured language
model and validates the result again. Pass --feedback once per round, or run
in a terminal without --feedback to be prompted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.LLMEnabled {
				return errors.New("refinement needs a language model; set ITINERA_LLM_ENABLED=true and configure a provider")
			}
			if len(feedbacks) == 0 && !app.interactive() {
				return errors.New("no feedback given: pass --feedback or run in a terminal")
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sess, err := app.Refinements.StartFromFile(ctx, args[0], planID, req.override())
			if err != nil {
				return err
			}
			initial := sess.Result()
			fmt.Fprintf(out, "Session %s on plan %s: %s %s\n",
				formatter.Bold(sess.ID()), planID,
				formatter.StatusIndicator(initial.Status),
				formatter.Dim(fmt.Sprintf("(score %.1f)", initial.Score)))

			maxRounds := app.MaxRefinements
			if maxRounds < 1 {
				maxRounds = refinement.DefaultMaxIterations
			}

			next := scriptedFeedback(feedbacks)
			if len(feedbacks) == 0 {
				next = app.promptFeedback
			}

			for round := 1; ; round++ {
				feedback, err := next(round, maxRounds)
				if err != nil {
					return err
				}
				if feedback == "" {
					break
				}

				var outcome *refinement.Outcome
				refine := func() error {
					var err error
					outcome, err = app.Refinements.Refine(ctx, sess.ID(), feedback)
					return err
				}
				if app.interactive() {
					err = formatter.RunWithSpinner(cmd.ErrOrStderr(), "Refining plan...", refine)
				} else {
					err = refine()
				}

				if errors.Is(err, refinement.ErrIterationLimit) {
					fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf("Reached the maximum of %d refinements.", maxRounds)))
					break
				}
				if err != nil {
					if len(feedbacks) > 0 {
						return err
					}
					// Interactive sessions keep going; the plan is unchanged.
					fmt.Fprintln(out, formatter.StyleRed.Render("Refinement failed: "+err.Error()))
					round--
					continue
				}
				fmt.Fprintln(out)
				fmt.Fprint(out, formatter.FormatRefinement(outcome.Entry, outcome.Result, maxRounds))
			}

			printSessionFooter(out, sess)
			return nil
		},
	}

	req.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&planID, "plan", "", "Plan ID to refine (required)")
	cmd.Flags().StringArrayVar(&feedbacks, "feedback", nil, "Feedback for one round (repeatable)")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func (a *App) promptFeedback(round, maxRounds int) (string, error) {
	if a.PromptFeedback != nil {
		s, err := a.PromptFeedback(round, maxRounds)
		return normalizeFeedback(s), err
	}
	return promptFeedback(round, maxRounds)
}

// scriptedFeedback replays feedback given on the command line, one per round.
func scriptedFeedback(feedbacks []string) func(round, maxRounds int) (string, error) {
	return func(round, _ int) (string, error) {
		if round > len(feedbacks) {
			return "", nil
		}
		return normalizeFeedback(feedbacks[round-1]), nil
	}
}

func printSessionFooter(out io.Writer, sess *refinement.Session) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%d refinements recorded. Final plan %s costs %s.\n",
		sess.Iterations(), sess.Plan().PlanID, formatter.Money(sess.Plan().TotalCost))
	fmt.Fprintln(out, formatter.Dim("See the full history with: itinera history "+sess.ID()))
}
