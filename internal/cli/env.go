package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/cache"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/ledger"
	"github.com/2beens/liftlog/internal/gymstats/local"
	"github.com/2beens/liftlog/internal/gymstats/remote"
	"github.com/2beens/liftlog/internal/gymstats/routines"
	"github.com/2beens/liftlog/internal/logging"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/pkg"
)

type remoteBackend interface {
	ledger.RemoteStore
	routines.RemoteStore
	history.FuzzySource
}

// appEnv is the training stack opened for a single command run.
type appEnv struct {
	cfg      *config.Config
	local    *local.Store
	pool     *pgxpool.Pool
	ledger   *ledger.Ledger
	routines *routines.Store
	history  *history.Lookup
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	level := "warn"
	if opts.Verbose {
		level = "debug"
	}
	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: false,
		LogLevel:    level,
		Environment: cfg.Environment,
	})
	log.SetOutput(os.Stderr)

	return cfg, nil
}

// openEnv opens the local store and, when a user is given and the remote
// ledger is configured, the postgres pool.
func openEnv(ctx context.Context, opts *RootOptions) (*appEnv, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	if err := pkg.EnsureDir(filepath.Dir(cfg.SQLitePath)); err != nil {
		return nil, WrapExitError(ExitCommandError, "local store dir", err)
	}
	localStore, err := local.Open(cfg.SQLitePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open local store", err)
	}

	env := &appEnv{
		cfg:   cfg,
		local: localStore,
	}

	var remoteRepo remoteBackend = remote.Disabled{}
	if opts.UserID != "" && cfg.RemoteEnabled() {
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBPassword: os.Getenv("LIFTLOG_POSTGRES_PASS"),
			MaxConns:   2,
		})
		if err != nil {
			_ = localStore.Close()
			return nil, WrapExitError(ExitCommandError, "connect remote ledger", err)
		}
		env.pool = pool
		remoteRepo = remote.NewRepo(pool)
	}

	identity := auth.StaticIdentity(opts.UserID)
	// the CLI process does not expose metrics, counters go to a private registry
	metricsManager := metrics.NewManager("liftlog", "cli", prometheus.NewRegistry())
	env.ledger = ledger.New(localStore, remoteRepo, identity, metricsManager)
	env.routines = routines.NewStore(localStore, remoteRepo, identity, metricsManager)
	env.history = history.NewLookup(env.ledger, remoteRepo, cache.NewLookupCache(0))

	return env, nil
}

// Close flushes pending remote writes before closing the stores.
func (e *appEnv) Close() {
	e.ledger.Close()
	e.routines.Close()
	if err := e.local.Close(); err != nil {
		log.Errorf("close local store: %s", err)
	}
	if e.pool != nil {
		e.pool.Close()
	}
}
