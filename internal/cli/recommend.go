package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/training"
)

type recommendOptions struct {
	exerciseID string
	version    int
	kind       string
	order      int
	repMin     int
	repMax     int
	category   string
	preset     float64
	topWeight  float64
}

type recommendResult struct {
	Prior          *training.PriorResult      `json:"prior,omitempty"`
	Recommendation progression.Recommendation `json:"recommendation"`
}

func NewRecommendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend the next load for an exercise slot",
		Long: `Look up the last result for an exercise slot and recommend the next load.

The lookup joins on exercise id and version. With --user and a configured
remote ledger, a name based search over remote history is used as fallback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.exerciseID, "exercise", "e", "", "exercise id (required)")
	cmd.Flags().IntVar(&opts.version, "version", 1, "exercise version")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", string(training.KindPlain), "set kind (TOP, BOFF, SET, RP, DROP, APROX)")
	cmd.Flags().IntVar(&opts.order, "order", 1, "set order within the kind")
	cmd.Flags().IntVar(&opts.repMin, "rep-min", 8, "lower end of the rep range")
	cmd.Flags().IntVar(&opts.repMax, "rep-max", 12, "upper end of the rep range")
	cmd.Flags().StringVar(&opts.category, "category", string(training.CategoryCompound), "compound or isolation")
	cmd.Flags().Float64Var(&opts.preset, "preset", 0, "preset weight used without history")
	cmd.Flags().Float64Var(&opts.topWeight, "top", 0, "today's top set weight, used for backoff sets")
	_ = cmd.MarkFlagRequired("exercise")

	return cmd
}

func runRecommend(rootOpts *RootOptions, opts *recommendOptions, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	kind, err := training.ParseSetKind(opts.kind)
	if err != nil {
		return WrapExitError(ExitCommandError, "kind", err)
	}
	category := training.Category(opts.category)
	if !category.Valid() {
		return WrapExitError(ExitCommandError, "category", fmt.Errorf("unknown category %q", opts.category))
	}
	if opts.repMin < 0 || opts.repMax < opts.repMin {
		return WrapExitError(ExitCommandError, "rep range", fmt.Errorf("%d-%d", opts.repMin, opts.repMax))
	}

	env, err := openEnv(cmd.Context(), rootOpts)
	if err != nil {
		return err
	}
	defer env.Close()

	prior, err := env.history.FindPriorResult(cmd.Context(), history.Query{
		ExerciseID: opts.exerciseID,
		Version:    opts.version,
		Kind:       kind,
		Order:      opts.order,
		Before:     time.Now(),
		UserID:     rootOpts.UserID,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "history lookup", err)
	}
	formatter.VerboseLog("prior result found: %t", prior != nil)

	in := progression.Input{
		Target: progression.Target{
			RepMin:   opts.repMin,
			RepMax:   opts.repMax,
			Kind:     kind,
			Category: category,
		},
		Prior:            prior,
		SessionTopWeight: opts.topWeight,
		Increment:        env.cfg.PlateIncrement,
	}
	if opts.preset > 0 {
		in.PresetWeight = &opts.preset
	}
	res := recommendResult{
		Prior:          prior,
		Recommendation: progression.Recommend(in),
	}

	return formatter.Success(res, func(w io.Writer) {
		if prior != nil && prior.Weight != nil {
			fuzzy := ""
			if prior.Fuzzy {
				fuzzy = " (name match)"
			}
			fmt.Fprintf(w, "last: %.2f kg x %d on %s%s\n", *prior.Weight, prior.Reps, prior.DateTime.Local().Format("2006-01-02"), fuzzy)
		}
		r := res.Recommendation
		fmt.Fprintf(w, "%s %.2f kg (%+.2f)\n", r.Action, r.SuggestedWeight, r.DeltaFromReference)
		fmt.Fprintf(w, "  %s\n  %s\n", r.Reason, r.Objective)
	})
}
