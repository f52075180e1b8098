package bootstrap

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "studentdesk/internal/app/controllers"
	appMigrations "studentdesk/internal/app/migrations"
	appRepos "studentdesk/internal/app/repositories"
	appRoutes "studentdesk/internal/app/routes"
	appServices "studentdesk/internal/app/services"
	"studentdesk/internal/config"
	"studentdesk/internal/db"
	appMiddleware "studentdesk/internal/middleware"
	"studentdesk/internal/pkg/helpers"
	"studentdesk/internal/pkg/logger"
	"studentdesk/internal/pkg/session"
	"studentdesk/internal/seed"
)

// migrationsDir holds the SQL migration files, relative to the working
// directory.
const migrationsDir = "migrations"

// templatesGlob locates the HTML templates, relative to the working
// directory.
const templatesGlob = "web/templates/*.html"

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       appServices.AuthService
	StudentService    appServices.StudentService
	HomeController    *appControllers.HomeController
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	SessionManager    *session.Manager
	Renderer          *appControllers.Renderer
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := InitializeSchema(context.Background(), database, lgr); err != nil {
		lgr.Error().Err(err).Msg("Database initialization error")
		database.Close()
		return nil, err
	}

	return database, nil
}

// InitializeSchema runs migrations and seeds default data. It is idempotent
// and also backs the /initdb convenience route.
func InitializeSchema(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database)

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(ctx, database.Pool, lgr); err != nil {
		return fmt.Errorf("failed to create default data: %w", err)
	}

	return nil
}

// sessionSecret resolves the configured session signing secret. Development
// deployments without one get a random per-process secret; sessions then do
// not survive a restart, which beats shipping a guessable constant.
func sessionSecret(cfg *config.Config, lgr zerolog.Logger) ([]byte, error) {
	if cfg.Session.Secret != "" {
		return []byte(cfg.Session.Secret), nil
	}

	lgr.Warn().Msg("SESSION_SECRET not set, generating a random per-process secret; sessions will not survive restarts")
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}
	return secret, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	secret, err := sessionSecret(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps.SessionManager = session.NewManager(session.Config{
		Secret:     secret,
		CookieName: cfg.Session.CookieName,
		TTL:        helpers.ParseDuration(cfg.Session.TTL, 24*time.Hour),
		Secure:     cfg.Session.Secure,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware()
	deps.Renderer = appControllers.NewRenderer(deps.SessionManager)

	initializer := appControllers.InitializerFunc(func(ctx context.Context) error {
		return InitializeSchema(ctx, database, lgr)
	})

	deps.HomeController = appControllers.NewHomeController(initializer, deps.Renderer, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Renderer, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.Renderer, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.LoadHTMLGlob(templatesGlob)

	// Every route sees the decoded session.
	router.Use(appMiddleware.Sessions(deps.SessionManager))

	appRoutes.SetupRouter(router,
		deps.HomeController,
		deps.AuthController,
		deps.StudentController,
		deps.AuthMiddleware,
	)

	return router
}
