package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewRoutinesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routines",
		Short: "List stored routine templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			templates, err := env.routines.LoadTemplates(cmd.Context())
			if err != nil {
				return WrapExitError(ExitFailure, "load routines", err)
			}

			return formatter.Success(templates, func(w io.Writer) {
				if len(templates) == 0 {
					fmt.Fprintln(w, "no routines stored")
					return
				}
				printRoutines(w, templates)
			})
		},
	}
}
