package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/2beens/liftlog/internal/gymstats/training"
)

type sessionRow struct {
	SessionID   string        `json:"sessionId"`
	DateTime    time.Time     `json:"dateTime"`
	WorkoutName string        `json:"workoutName"`
	KPIs        training.KPIs `json:"kpis"`
}

func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		sync  bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List logged sessions with their set count and volume",
		Long: `List logged sessions, most recent first.

With --sync and --user the remote ledger is merged into the local one first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			env, err := openEnv(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			var sessions []training.Session
			if sync {
				sessions, err = env.ledger.Sync(cmd.Context())
			} else {
				sessions, err = env.ledger.ListSessions(cmd.Context())
			}
			if err != nil {
				return WrapExitError(ExitFailure, "list sessions", err)
			}
			if limit > 0 && len(sessions) > limit {
				sessions = sessions[:limit]
			}

			rows := make([]sessionRow, 0, len(sessions))
			for _, s := range sessions {
				rows = append(rows, sessionRow{
					SessionID:   s.SessionID,
					DateTime:    s.DateTime,
					WorkoutName: s.WorkoutName,
					KPIs:        s.KPIs(),
				})
			}

			return formatter.Success(rows, func(w io.Writer) {
				if len(rows) == 0 {
					fmt.Fprintln(w, "no sessions logged")
					return
				}
				for _, r := range rows {
					fmt.Fprintf(w, "%s  %-20s %3d sets  %8.1f kg\n",
						r.DateTime.Local().Format("2006-01-02 15:04"), r.WorkoutName, r.KPIs.Sets, r.KPIs.Volume)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "merge the remote ledger before listing")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n sessions")

	return cmd
}
