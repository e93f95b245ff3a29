package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/2beens/liftlog/internal/auth"
)

type tokenResult struct {
	UserID string `json:"userId,omitempty"`
	Token  string `json:"token,omitempty"`
	// Revoked is set by the revoke command only.
	Revoked *bool `json:"revoked,omitempty"`
}

// NewTokenCommand groups the API token subcommands.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <user-id>",
		Short: "Issue an API token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthService(rootOpts, cmd, func(ctx context.Context, service *auth.Service) (tokenResult, error) {
				token, err := service.Issue(ctx, args[0], time.Now())
				return tokenResult{UserID: args[0], Token: token}, err
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <token>",
		Short: "Revoke an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuthService(rootOpts, cmd, func(ctx context.Context, service *auth.Service) (tokenResult, error) {
				revoked, err := service.Revoke(ctx, args[0])
				return tokenResult{Revoked: &revoked}, err
			})
		},
	})

	return cmd
}

func withAuthService(
	rootOpts *RootOptions,
	cmd *cobra.Command,
	fn func(ctx context.Context, service *auth.Service) (tokenResult, error),
) error {
	formatter := newFormatter(rootOpts, cmd)

	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("LIFTLOG_REDIS_PASS"),
		DB:       0, // use default DB
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	res, err := fn(ctx, auth.NewService(auth.DefaultTTL, rdb))
	if err != nil {
		return WrapExitError(ExitFailure, "token", err)
	}

	return formatter.Success(res, func(w io.Writer) {
		switch {
		case res.Token != "":
			fmt.Fprintln(w, res.Token)
		case res.Revoked != nil && *res.Revoked:
			fmt.Fprintln(w, "token revoked")
		default:
			fmt.Fprintln(w, "token not found")
		}
	})
}

