package main

import (
	"context"
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
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/qa-resolver/internal/facades"
	"github.com/sbilibin2017/qa-resolver/internal/handlers"
	"github.com/sbilibin2017/qa-resolver/internal/jwt"
	"github.com/sbilibin2017/qa-resolver/internal/logger"
	"github.com/sbilibin2017/qa-resolver/internal/middlewares"
	"github.com/sbilibin2017/qa-resolver/internal/repositories"
	"github.com/sbilibin2017/qa-resolver/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// notificationFeedTTL bounds how long an idle notification feed lives.
const notificationFeedTTL = 720 * time.Hour

// @title qa-resolver API
// @version 1.0.0
// @description Resolver dispatch service for the social Q&A backend
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath, tokenSubject := parseFlags()

	appHost, appPort, logLevel,
		secretName, dbRegion,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if tokenSubject != "" {
		token, err := issueDevToken(tokenSubject, jwtSecret, jwtExp)
		if err != nil {
			log.Fatalf("failed to issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		secretName, dbRegion,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path
// and the optional dev-token subject.
func parseFlags() (string, string) {
	c := flag.String("c", "config.env", "Path to configuration file")
	t := flag.String("t", "", "Print a bearer token for the given subject and exit")
	flag.Parse()
	return *c, *t
}

// issueDevToken signs a bearer token for local invocations that carry
// no inline identity block.
func issueDevToken(subject, secretKey string, expSecond int) (string, error) {
	return jwt.New(secretKey, time.Duration(expSecond)*time.Second).Generate(context.Background(), subject)
}

// parseConfig loads environment variables from a file and returns all
// application, store, Redis, Kafka, logging, and JWT configuration.
// When SECRET_NAME is set, store credentials come from Secrets Manager
// and the POSTGRES_* values are ignored.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	secretName, dbRegion string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Secrets Manager config
	secretName = getEnv("SECRET_NAME", "")
	dbRegion = getEnv("DB_REGION", "ap-northeast-1")

	// PostgreSQL config (static credentials for local development)
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}

	// Redis config (empty host disables the notification feed)
	redisHost = getEnv("REDIS_HOST", "")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config (empty brokers disable event publishing)
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "qa-mutations")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, credential provider, optional Redis and
// Kafka collaborators, and the HTTP server. It sets up routes, applies
// middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	secretName, dbRegion string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	// Initialize logger
	log, err := logger.New(logLevel)
	if err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer log.Sync()
	log.Infof("Logger initialized with level %s", logLevel)

	// Store credentials: Secrets Manager in deployed environments,
	// static POSTGRES_* values locally. Connections themselves are
	// opened per invocation by the database facade.
	var provider facades.DSNProvider
	if secretName != "" {
		provider, err = facades.NewSecretsManagerDSN(ctx, secretName, dbRegion)
		if err != nil {
			log.Errorw("failed to initialize secrets provider", "error", err)
			return err
		}
		log.Infof("Store credentials from secret %s (%s)", secretName, dbRegion)
	} else {
		provider = facades.NewStaticDSN(pgUser, pgPassword, pgHost, pgPort, pgDB)
		log.Infof("Store credentials from environment (%s:%d/%s)", pgHost, pgPort, pgDB)
	}
	database := facades.NewDatabase(provider)

	// Optional notification feed
	var notifications services.NotificationStore
	if redisHost != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password: redisPassword,
			DB:       redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Errorw("Redis connection error", "error", err)
			return err
		}
		defer rdb.Close()
		notifications = repositories.NewNotificationRepository(rdb, notificationFeedTTL)
		log.Infof("Notification feed enabled on %s:%d", redisHost, redisPort)
	}

	// Optional mutation event stream
	var events services.EventPublisher
	if kafkaBrokers != "" {
		publisher := facades.NewEventPublisher(strings.Split(kafkaBrokers, ","), kafkaTopic)
		defer publisher.Close()
		events = publisher
		log.Infof("Mutation events to topic %s", kafkaTopic)
	}

	// Initialize JWT service for the bearer-token identity fallback
	jwt := jwt.New(jwtSecretKey, time.Duration(jwtExpSecond)*time.Second)

	// Initialize resolver service and handler
	resolver := services.NewResolver(database, events, notifications)
	resolveHandler := handlers.NewResolveHandler(resolver)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))
	r.Use(middlewares.IdentityMiddleware(jwt))

	r.Post("/api/v1/resolve", resolveHandler)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
