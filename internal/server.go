package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/cache"
	"github.com/2beens/liftlog/internal/config"
	"github.com/2beens/liftlog/internal/db"
	"github.com/2beens/liftlog/internal/gymstats"
	"github.com/2beens/liftlog/internal/gymstats/history"
	"github.com/2beens/liftlog/internal/gymstats/ledger"
	"github.com/2beens/liftlog/internal/gymstats/local"
	"github.com/2beens/liftlog/internal/gymstats/remote"
	"github.com/2beens/liftlog/internal/gymstats/rest"
	"github.com/2beens/liftlog/internal/gymstats/routines"
	"github.com/2beens/liftlog/internal/gymstats/workout"
	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

const tokensCleanupInterval = 8 * time.Hour

// remoteBackend is what the ledger, the template store and the history
// fallback need from the remote side.
type remoteBackend interface {
	ledger.RemoteStore
	routines.RemoteStore
	history.FuzzySource
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config     *config.Config
	dbPool     *pgxpool.Pool
	localStore *local.Store

	ledger   *ledger.Ledger
	routines *routines.Store
	history  *history.Lookup
	machine  *workout.Machine
	timer    *rest.Timer

	redisClient     *redis.Client
	identityChecker *auth.IdentityChecker
	authService     *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var (
		dbPool     *pgxpool.Pool
		remoteRepo remoteBackend = remote.Disabled{}
		collectors []prometheus.Collector
	)
	if cfg.RemoteEnabled() {
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}

		dbPool = pool
		remoteRepo = remote.NewRepo(pool)
		collectors = append(collectors, pgxpoolprometheus.NewCollector(
			pool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	} else {
		log.Warnln("postgres host not set, running in local-only mode")
	}

	promRegistry := metrics.SetupPrometheus(collectors...)
	metricsManager := metrics.NewManager("liftlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	if err := pkg.EnsureDir(filepath.Dir(cfg.SQLitePath)); err != nil {
		return nil, fmt.Errorf("local store dir: %w", err)
	}
	localStore, err := local.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	rdb.AddHook(redisotel.NewTracingHook())

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.DefaultTTL, rdb)
	go func() {
		ticker := time.NewTicker(tokensCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftlog")
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:     cfg,
		dbPool:     dbPool,
		localStore: localStore,

		redisClient:     rdb,
		authService:     authService,
		identityChecker: auth.NewIdentityChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.wireGymstats(ctx, remoteRepo)

	return s, nil
}

// wireGymstats builds the training components on top of the local store and
// the given remote side, then restores the rest timers and the anonymous workout.
// Workouts of signed in users are loaded on their first request.
func (s *Server) wireGymstats(ctx context.Context, remoteRepo remoteBackend) {
	identity := auth.ContextIdentity{}
	s.ledger = ledger.New(s.localStore, remoteRepo, identity, s.metricsManager)
	s.routines = routines.NewStore(s.localStore, remoteRepo, identity, s.metricsManager)
	s.history = history.NewLookup(s.ledger, remoteRepo, cache.NewLookupCache(0))

	s.timer = rest.NewTimer(s.localStore, rest.LogNotifier{}, identity, s.metricsManager, nil)
	s.machine = workout.NewMachine(workout.MachineParams{
		Ledger:         s.ledger,
		Templates:      s.routines,
		History:        s.history,
		State:          s.localStore,
		Identity:       identity,
		RestListener:   s.timer,
		Metrics:        s.metricsManager,
		RestSeconds:    s.config.DefaultRestSeconds,
		PlateIncrement: s.config.PlateIncrement,
	})
	s.timer.SetAdvancer(s.machine)

	if resumed, err := s.machine.Resume(ctx); err != nil {
		log.Errorf("resume workout: %s", err)
	} else if resumed {
		log.Infoln("anonymous workout resumed")
	}
	if err := s.timer.Restore(ctx); err != nil {
		log.Errorf("restore rest timer: %s", err)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	gymstats.RegisterRoutes(r, gymstats.NewHandler(
		s.ledger,
		s.machine,
		s.history,
		s.routines,
		s.timer,
	))

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	identityMiddleware := middleware.NewIdentityMiddlewareHandler(s.identityChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(identityMiddleware.IdentityCheck())
	r.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		s.metricsManager,
		"main-router",
		s.config.RateLimitPerMinute,
	))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	if s.config.MetricsPort > 0 {
		go func() {
			log.Debugf(" > metrics listening on: [%s]", metricsAddr)
			err := s.metricsHttpServer.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("metrics service, listen and serve: %s", err)
			}
		}()
	}

	go s.timer.Run(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	// pending remote writes are flushed here, before the stores go away
	s.ledger.Close()
	s.routines.Close()

	if err := s.localStore.Close(); err != nil {
		log.Errorf("failed to close local store: %s", err)
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
