package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ecakir/campushub/internal/app/controllers"
	appMigrations "github.com/ecakir/campushub/internal/app/migrations"
	appRepos "github.com/ecakir/campushub/internal/app/repositories"
	appRoutes "github.com/ecakir/campushub/internal/app/routes"
	appServices "github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/config"
	"github.com/ecakir/campushub/internal/db"
	appMiddleware "github.com/ecakir/campushub/internal/middleware"
	"github.com/ecakir/campushub/internal/pkg/filestorage"
	"github.com/ecakir/campushub/internal/pkg/helpers"
	"github.com/ecakir/campushub/internal/pkg/logger"
	"github.com/ecakir/campushub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	CourseController     *appControllers.CourseController
	ResourceController   *appControllers.ResourceController
	ForumController      *appControllers.ForumController
	StudyGroupController *appControllers.StudyGroupController
	MessagingController  *appControllers.MessagingController
	CalendarController   *appControllers.CalendarController
	DashboardController  *appControllers.DashboardController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	FileStorage          *filestorage.LocalStorage
	Logger               zerolog.Logger
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

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
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
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and
// controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	// Clear out sessions that expired while the server was down
	if n, err := deps.Repos.SessionRepository.DeleteExpired(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to delete expired sessions")
	} else if n > 0 {
		lgr.Info().Int64("sessions", n).Msg("Deleted expired sessions")
	}

	// The base URL must match the static file serving path on the router
	baseURL := "http://localhost:" + cfg.Server.Port
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	sessionTTL := helpers.ParseDuration(cfg.Session.Expiration, 720*time.Hour)

	deps.Services = &appServices.Services{
		Auth:     appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.SessionRepository, sessionTTL, lgr),
		User:     appServices.NewUserService(deps.Repos.UserRepository, deps.FileStorage, lgr),
		Course:   appServices.NewCourseService(deps.Repos.CourseRepository, lgr),
		Resource: appServices.NewResourceService(deps.Repos.ResourceRepository, deps.FileStorage, cfg.Server.MaxUploadSize, lgr),
		Forum:    appServices.NewForumService(deps.Repos.ForumRepository, lgr),
		StudyGroup: appServices.NewStudyGroupService(
			deps.Repos.StudyGroupRepository, lgr),
		Messaging: appServices.NewMessagingService(deps.Repos.ConversationRepository, deps.FileStorage, lgr),
		Calendar:  appServices.NewCalendarService(deps.Repos.CalendarRepository, lgr),
		Dashboard: appServices.NewDashboardService(
			deps.Repos.CourseRepository,
			deps.Repos.StudyGroupRepository,
			deps.Repos.ResourceRepository,
			deps.Repos.CalendarRepository,
			lgr),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth, cfg.Session.CookieName)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, cfg.Session.CookieName, sessionTTL, cfg.Session.Secure)
	deps.UserController = appControllers.NewUserController(deps.Services.User)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Course)
	deps.ResourceController = appControllers.NewResourceController(deps.Services.Resource)
	deps.ForumController = appControllers.NewForumController(deps.Services.Forum)
	deps.StudyGroupController = appControllers.NewStudyGroupController(deps.Services.StudyGroup)
	deps.MessagingController = appControllers.NewMessagingController(deps.Services.Messaging)
	deps.CalendarController = appControllers.NewCalendarController(deps.Services.Calendar)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.Dashboard)

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
	router.MaxMultipartMemory = cfg.Server.MaxUploadSize
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CourseController,
		deps.ResourceController,
		deps.ForumController,
		deps.StudyGroupController,
		deps.MessagingController,
		deps.CalendarController,
		deps.DashboardController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
