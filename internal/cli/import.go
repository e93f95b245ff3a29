package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import routines from a JSON or YAML file",
		Long: `Import one routine or a list of routines into the local template store.

Imported routines replace stored routines with the same name. Nothing is
written when any routine in the file is invalid. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}
}

func runImport(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "read import file", err)
	}
	formatter.VerboseLog("read %d bytes from %s", len(raw), path)

	env, err := openEnv(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer env.Close()

	saved, err := env.routines.ImportFromText(cmd.Context(), raw)
	if err != nil {
		return WrapExitError(ExitFailure, "import routines", err)
	}

	return formatter.Success(saved, func(w io.Writer) {
		fmt.Fprintf(w, "%d routine(s) stored\n", len(saved))
		printRoutines(w, saved)
	})
}

func printRoutines(w io.Writer, templates []training.RoutineTemplate) {
	for _, t := range templates {
		fmt.Fprintln(w, t.Name)
		for _, ex := range t.Exercises {
			fmt.Fprintf(w, "  %-28s %s (v%d)\n", ex.Name, ex.SchemeText, ex.Version)
		}
	}
}
