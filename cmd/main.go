package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-bank-client/docs"
	"github.com/sbilibin2017/gw-bank-client/internal/facades"
	"github.com/sbilibin2017/gw-bank-client/internal/handlers"
	"github.com/sbilibin2017/gw-bank-client/internal/jwt"
	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/middlewares"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
	"github.com/sbilibin2017/gw-bank-client/internal/repositories"
	"github.com/sbilibin2017/gw-bank-client/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost        string
	AppPort        string
	LogLevel       string
	LogEncoding    string
	APIBaseURL     string
	APITimeout     time.Duration
	APIRegisterURL string

	StorageDriver string
	SQLitePath    string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisKeyPrefix    string

	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string
	AMQPQueue    string

	SessionCheckSpec   string
	CORSAllowedOrigins []string
}

// @title gw-bank-client API
// @version 1.0.0
// @description Banking demo client: session, user dashboard and admin dashboard over a remote REST backend
// @host localhost:8081
// @BasePath /
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, backend, storage, messaging and scheduling configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getList := func(key, defaultValue string) []string {
		var out []string
		for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8081")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogEncoding = getEnv("APP_LOG_ENCODING", "json")

	// Backend config
	cfg.APIBaseURL = getEnv("API_BASE_URL", "http://localhost:8080/api")
	timeoutMS, err := getInt("API_TIMEOUT_MS", "5000")
	if err != nil {
		return
	}
	cfg.APITimeout = time.Duration(timeoutMS) * time.Millisecond
	cfg.APIRegisterURL = getEnv("API_REGISTER_PATH", "users/register")

	// Storage config
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", "sqlite")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "data/client.db")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "4"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	cfg.RedisKeyPrefix = getEnv("REDIS_KEY_PREFIX", repositories.DefaultRedisPrefix)

	// Activity publishing config
	cfg.KafkaBrokers = getList("KAFKA_BROKERS", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "bank-activity")
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPQueue = getEnv("AMQP_QUEUE", "bank-activity")

	cfg.SessionCheckSpec = getEnv("SESSION_CHECK_SPEC", services.DefaultSessionCheckSpec)
	cfg.CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	return
}

// storage is the persisted client state read by the session and the gateway.
type storage interface {
	services.KeyValueStore
	facades.TokenReader
}

// openStorage connects the configured storage driver.
func openStorage(ctx context.Context, cfg config) (storage, func() error, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		db, err := repositories.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLStorageRepository(db), db.Close, nil
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
		db, err := repositories.OpenPostgres(ctx, dsn, cfg.PGMaxOpenConns, cfg.PGMaxIdleConns)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLStorageRepository(db), db.Close, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis connection: %w", err)
		}
		return repositories.NewRedisStorageRepository(rdb, cfg.RedisKeyPrefix), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// openPublisher builds the activity fan-out. It returns nil when no sink
// is configured.
func openPublisher(cfg config) (services.ActivityPublisher, func() error, error) {
	var (
		sinks   facades.FanoutPublisher
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	if len(cfg.KafkaBrokers) > 0 {
		p := facades.NewKafkaPublisher(facades.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		sinks = append(sinks, p)
		closers = append(closers, p.Close)
	}
	if cfg.AMQPURL != "" {
		p, err := facades.DialAMQP(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sinks = append(sinks, p)
		closers = append(closers, p.Close)
	}
	if len(sinks) == 0 {
		return nil, closeAll, nil
	}
	return sinks, closeAll, nil
}

// app is the wired dependency graph behind the router.
type app struct {
	sessions     *services.SessionService
	registration *services.RegistrationService
	vm           *services.AccountViewModel
	accounts     *services.AccountService
	actions      *services.ActionCoordinator
	admin        *services.AdminService
}

// newApp wires the services on top of store and the backend gateway.
func newApp(cfg config, store storage, publisher services.ActivityPublisher) *app {
	gateway := facades.NewGateway(cfg.APIBaseURL,
		facades.WithTimeout(cfg.APITimeout),
		facades.WithRegisterPath(cfg.APIRegisterURL),
		facades.WithTokenReader(store),
	)

	sessions := services.NewSessionService(store, gateway, jwt.New())
	vm := services.NewAccountViewModel()

	var opts []services.ActionOption
	if publisher != nil {
		opts = append(opts, services.WithPublisher(publisher))
	}

	return &app{
		sessions:     sessions,
		registration: services.NewRegistrationService(gateway),
		vm:           vm,
		accounts:     services.NewAccountService(gateway, vm),
		actions:      services.NewActionCoordinator(gateway, vm, opts...),
		admin:        services.NewAdminService(gateway, sessions),
	}
}

// newRouter builds the dashboard HTTP surface.
func newRouter(a *app, cfg config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middlewares.LoggingMiddleware)

	// Public routes
	r.Post("/login", handlers.NewLoginHandler(a.sessions))
	r.Post("/register", handlers.NewRegisterHandler(a.registration))
	r.Post("/logout", handlers.NewLogoutHandler(a.sessions))
	r.Get("/session", handlers.NewSessionHandler(a.sessions))

	// Session routes
	r.Group(func(r chi.Router) {
		r.Use(middlewares.SessionMiddleware(a.sessions))

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middlewares.RoleMiddleware(models.RoleUser))
			r.Get("/", handlers.NewDashboardHandler(a.vm, a.accounts, a.actions))
			r.Post("/leave", handlers.NewLeaveDashboardHandler(a.vm))
			r.Post("/deposit", handlers.NewDepositHandler(a.actions))
			r.Post("/withdraw", handlers.NewWithdrawHandler(a.actions))
			r.Post("/transfer", handlers.NewTransferHandler(a.actions))
		})

		r.With(middlewares.RoleMiddleware(models.RoleAdmin)).
			Get("/admin", handlers.NewAdminHandler(a.admin))
	})

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}

// run initializes the logger, storage, backend gateway, publishers and HTTP
// server. It restores the persisted session, starts the session watcher and
// handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel, cfg.LogEncoding); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel)

	// Open storage
	store, closeStore, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Log.Errorw("storage connection failed", "driver", cfg.StorageDriver, "error", err)
		return err
	}
	defer closeStore()

	// Connect publishers
	publisher, closePublisher, err := openPublisher(cfg)
	if err != nil {
		logger.Log.Errorw("activity publisher connection failed", "error", err)
		return err
	}
	defer closePublisher()

	a := newApp(cfg, store, publisher)
	defer a.sessions.Close()

	// Leaving the session abandons the dashboard.
	unsubscribe := a.sessions.Subscribe(func(s models.Session) {
		if !s.Authenticated() {
			a.vm.Close()
		}
	})
	defer unsubscribe()

	session, err := a.sessions.Init(ctx)
	if err != nil {
		logger.Log.Warnw("stored session could not be restored", "error", err)
	}
	logger.Log.Infow("session restored", "state", session.State)

	watcher, err := services.NewSessionWatcher(a.sessions, cfg.SessionCheckSpec)
	if err != nil {
		logger.Log.Errorw("invalid session check schedule", "spec", cfg.SessionCheckSpec, "error", err)
		return err
	}
	watcher.Start()
	defer func() { <-watcher.Stop().Done() }()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: newRouter(a, cfg),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infow("HTTP server listening", "addr", srv.Addr, "backend", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
