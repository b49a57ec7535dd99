package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/memberhub/internal/announcements"
	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/cache"
	"github.com/2beens/memberhub/internal/config"
	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/gymstats/checkins"
	activitymcp "github.com/2beens/memberhub/internal/gymstats/mcp"
	"github.com/2beens/memberhub/internal/gymstats/stats"
	"github.com/2beens/memberhub/internal/gymstats/workouts"
	"github.com/2beens/memberhub/internal/mailer"
	"github.com/2beens/memberhub/internal/members"
	"github.com/2beens/memberhub/internal/messages"
	"github.com/2beens/memberhub/internal/middleware"
	"github.com/2beens/memberhub/internal/realtime"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
	"github.com/2beens/memberhub/pkg"
)

const (
	sessionsCleanupInterval = 8 * time.Hour
	mailFromName            = "MemberHub"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	loc    *time.Location
	db     db.Querier
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	broker       *realtime.Broker

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	AdminGymID              int64
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	loc, err := params.Config.Location()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("ping db: %s", err)
	} else if err := db.EnsureSchema(ctx, dbPool); err != nil {
		log.Errorf("ensure db schema: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(params.VersionInfo, pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := newRedisClient(ctx, params.Config, params.RedisPassword)

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
		GymID:        params.AdminGymID,
	}, auth.DefaultTTL, rdb)
	go cleanSessionsPeriodically(ctx, authService, sessionsCleanupInterval)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "memberhub-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		loc:         loc,
		db:          dbPool,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		broker:       realtime.NewBroker(rdb, metricsManager),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func newRedisClient(ctx context.Context, cfg *config.Config, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: password,
	})
	if pong, err := rdb.Ping(ctx).Result(); err != nil {
		// sessions, rate limits and streams fail until redis is back; /health reports it
		log.Errorf("ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", pong)
	}
	return rdb
}

// cleanSessionsPeriodically drops expired tokens from the sessions set until ctx is done.
func cleanSessionsPeriodically(ctx context.Context, authService *auth.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			authService.ScanAndClean(ctx)
		}
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("memberhub-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")
	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	loginRateLimit := middleware.RateLimit(reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin, s.metricsManager)
	otpRateLimit := middleware.RateLimit(reqRateLimiter, "email-otp", s.config.OTPRateLimitAllowedPerMin, s.metricsManager)

	memberRouter := r.PathPrefix("/me").Subrouter()
	adminRouter := r.PathPrefix("/admin").Subrouter()

	checkinsRepo := checkins.NewRepo(s.db)
	workoutsRepo := workouts.NewRepo(s.db)

	statsService := stats.NewService(
		stats.NewDataSource(checkinsRepo, workoutsRepo, s.metricsManager),
		activity.NewAggregator(s.loc, s.config.FrequencyBuckets),
		cache.NewFreeCache(cache.DefaultSizeBytes),
		s.config.ActivityCacheTTL(),
		s.metricsManager,
	)

	membersService := members.NewService(
		members.NewRepo(s.db),
		members.NewOTPStore(s.redisClient, members.DefaultOTPTTL),
		mailer.NewSender(mailFromName),
		s.loc,
		s.config.UPIPayeeFallbackName,
		s.metricsManager,
	)

	auth.NewHandler(s.authService, membersService).SetupRoutes(r, loginRateLimit)

	checkins.NewHandler(checkinsRepo, s.broker, statsService, s.metricsManager).SetupRoutes(memberRouter, adminRouter)
	workouts.NewHandler(workoutsRepo, statsService, s.metricsManager).SetupRoutes(memberRouter, adminRouter)
	stats.NewHandler(statsService).SetupRoutes(memberRouter, adminRouter)
	members.NewHandler(membersService).SetupRoutes(memberRouter, adminRouter, otpRateLimit)

	messagesService := messages.NewService(messages.NewRepo(s.db), s.broker, s.loc, s.metricsManager)
	messages.NewHandler(messagesService).SetupRoutes(memberRouter, adminRouter)
	messages.NewStreamHandler(
		s.broker,
		checkins.NewNotifier(s.config.CheckinNotificationWindow(), s.loc, s.metricsManager),
		s.config.AllowedOrigins,
	).SetupRoutes(memberRouter)

	announcements.NewHandler(announcements.NewRepo(s.db)).SetupRoutes(memberRouter, adminRouter)

	// activity MCP over streamable HTTP, same tools as cmd/activity_mcp
	mcpServer := activitymcp.NewServer(s.db, statsService, membersService)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp")).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.LogRequest())
	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitRequestBody(middleware.DefaultMaxRequestBody))

	return r, nil
}

const (
	serverReadHeaderTimeout = 10 * time.Second
	serverReadTimeout       = time.Minute
	serverWriteTimeout      = time.Minute
	serverIdleTimeout       = 2 * time.Minute
	shutdownTimeout         = 15 * time.Second
)

// Serve starts the API and the prometheus metrics listeners and returns.
func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("router setup: %s", err)
	}

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
		Handler:           router,
		ReadHeaderTimeout: serverReadHeaderTimeout,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
	}
	s.metricsHttpServer = s.newMetricsServer()

	listen(s.httpServer, "api")
	listen(s.metricsHttpServer, "metrics")

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) newMetricsServer() *http.Server {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{
		Registry:          s.promRegistry,
		EnableOpenMetrics: true,
	}))
	return &http.Server{
		Addr:              net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort),
		Handler:           metricsRouter,
		ReadHeaderTimeout: serverReadHeaderTimeout,
	}
}

func listen(server *http.Server, name string) {
	go func() {
		log.Infof("%s server listening on [%s]", name, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("%s server, listen and serve: %s", name, err)
		}
	}()
}

func shutdown(ctx context.Context, server *http.Server, name string) {
	if server == nil {
		return
	}
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutdown %s server: %s", name, err)
		return
	}
	log.Infof("%s server shut down", name)
}

// GracefulShutdown stops the API first, then the stores it depends on.
// Open websocket streams end when the redis client closes under them.
func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated")
	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdown(ctx, s.httpServer, "api")

	s.otelShutdown()

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}
	if s.dbPool != nil {
		s.dbPool.Close()
		log.Debugln("db pool closed")
	}

	if !sentry.Flush(5 * time.Second) {
		log.Warnln("sentry flush timed out")
	}

	shutdown(ctx, s.metricsHttpServer, "metrics")
}
