package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Env        string
	ConfigPath string
	Format     string // "json" | "text"
	Verbose    bool
	// UserID enables remote sync for the command; empty means local-only.
	UserID string
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the liftlog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "liftlog",
		Short: "liftlog - strength training logger",
		Long:  "Offline tooling for the liftlog training ledger: routine import, session history, load recommendations and plate math.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Env, "env", "development", "config environment [prod | production | dev | development]")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "./config.toml", "path for the TOML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.UserID, "user", "", "user id used for remote sync")

	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewRoutinesCommand(opts))
	cmd.AddCommand(NewSessionsCommand(opts))
	cmd.AddCommand(NewRecommendCommand(opts))
	cmd.AddCommand(NewPlatesCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}
