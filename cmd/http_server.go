package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/frahmantamala/camp-management/internal"
	"github.com/frahmantamala/camp-management/internal/association"
	associationPostgres "github.com/frahmantamala/camp-management/internal/association/postgres"
	"github.com/frahmantamala/camp-management/internal/audit"
	auditPostgres "github.com/frahmantamala/camp-management/internal/audit/postgres"
	"github.com/frahmantamala/camp-management/internal/auth"
	authPostgres "github.com/frahmantamala/camp-management/internal/auth/postgres"
	"github.com/frahmantamala/camp-management/internal/camp"
	campPostgres "github.com/frahmantamala/camp-management/internal/camp/postgres"
	"github.com/frahmantamala/camp-management/internal/core/events"
	"github.com/frahmantamala/camp-management/internal/event"
	eventPostgres "github.com/frahmantamala/camp-management/internal/event/postgres"
	"github.com/frahmantamala/camp-management/internal/transport"
	"github.com/frahmantamala/camp-management/internal/transport/rest"
	"github.com/frahmantamala/camp-management/internal/user"
	userPostgres "github.com/frahmantamala/camp-management/internal/user/postgres"
	"github.com/frahmantamala/camp-management/internal/workflow"
	"github.com/frahmantamala/camp-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	// Fail the boot on a broken API contract.
	if _, err := rest.LoadOpenAPISpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, err
	}

	bus := events.NewEventBus(appLogger)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost, appLogger)
	authHandler := auth.NewHandler(authService)

	gate := auth.NewGate(appLogger)

	userRepo := userPostgres.NewUserRepository(gormDB)
	eventRepo := eventPostgres.NewEventRepository(gormDB)
	associationRepo := associationPostgres.NewAssociationRepository(gormDB)
	campRepo := campPostgres.NewCampRepository(gormDB)
	auditRepo := auditPostgres.NewAuditRepository(gormDB)

	auditor := audit.NewEmitter(auditRepo, bus, appLogger)
	engine := workflow.NewEngine(userRepo, eventRepo, associationRepo, gate, auditor, appLogger)

	baseHandler := transport.NewBaseHandler(appLogger)

	userService := user.NewService(userRepo, authService, gate, bus, appLogger)
	userHandler := user.NewHandler(baseHandler, userService, engine)

	eventService := event.NewService(eventRepo, appLogger)
	eventHandler := event.NewHandler(baseHandler, eventService, engine)

	campService := camp.NewService(campRepo, appLogger)
	campHandler := camp.NewHandler(baseHandler, campService)

	associationService := association.NewService(associationRepo, campService, eventRepo, appLogger)
	associationHandler := association.NewHandler(baseHandler, associationService, engine)

	workflowHandler := workflow.NewHandler(baseHandler, engine)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, userHandler, eventHandler, associationHandler, campHandler, workflowHandler, appLogger)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

// initDB opens the pgx-backed pool used for health checks and raw queries.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the already-open pgx pool so both share one
// set of connections.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
}
