package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/training"
)

func NewPlatesCommand(rootOpts *RootOptions) *cobra.Command {
	var equipment string

	cmd := &cobra.Command{
		Use:   "plates <weight>",
		Short: "Convert a logged weight into the total load",
		Long: `Convert a logged weight into the total load.

For barbells the weight is the load per side on a 20 kg bar and the discs
per side are listed. For dumbbells the weight is per hand.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			eq := training.Equipment(equipment)
			if !eq.Valid() {
				return WrapExitError(ExitCommandError, "equipment", fmt.Errorf("unknown equipment %q", equipment))
			}
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil || weight < 0 {
				return WrapExitError(ExitCommandError, "weight must be a non-negative number", err)
			}

			breakdown := progression.Plates(eq, weight)
			return formatter.Success(breakdown, func(w io.Writer) {
				fmt.Fprintf(w, "total: %.2f kg\n", breakdown.Total)
				if len(breakdown.PerSide) > 0 {
					fmt.Fprintf(w, "per side: %v\n", breakdown.PerSide)
				}
				if breakdown.Remainder > 0 {
					fmt.Fprintf(w, "not loadable per side: %.2f kg\n", breakdown.Remainder)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&equipment, "equipment", "e", string(training.EquipmentBarbell), "barbell, dumbbell, machine, cable or bw")

	return cmd
}
