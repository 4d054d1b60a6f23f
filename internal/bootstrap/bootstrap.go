package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/magallanes/coursecatalog/internal/app/controllers"
	appRepos "github.com/magallanes/coursecatalog/internal/app/repositories"
	appRoutes "github.com/magallanes/coursecatalog/internal/app/routes"
	appServices "github.com/magallanes/coursecatalog/internal/app/services"
	"github.com/magallanes/coursecatalog/internal/config"
	"github.com/magallanes/coursecatalog/internal/db"
	appMiddleware "github.com/magallanes/coursecatalog/internal/middleware"
	"github.com/magallanes/coursecatalog/internal/pkg/logger"
	"github.com/magallanes/coursecatalog/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// CloseFunc releases a resource opened during bootstrap
type CloseFunc func(ctx context.Context) error

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos            *appRepos.Repositories
	CourseService    appServices.CourseService
	CourseController *appControllers.CourseController
	Importer         *seed.Importer // nil when no sink is configured
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: logger.ParseFormat(cfg.Logging.Format),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// LoadCatalog builds the course store and loads it. With fail_fast disabled a
// load error is logged and the returned store answers every query with an error.
func LoadCatalog(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.CourseRepository, error) {
	repo := appRepos.NewCourseRepository(appRepos.FileSource{Path: cfg.Catalog.Path}, lgr)

	if err := repo.Load(ctx); err != nil {
		if cfg.Catalog.FailFast {
			return nil, fmt.Errorf("failed to load course catalog from %s: %w", cfg.Catalog.Path, err)
		}
		lgr.Warn().Str("path", cfg.Catalog.Path).Msg("Serving without a course catalog; course routes will fail")
	}
	return repo, nil
}

// SetupDatabase connects the configured import target and returns it as a sink.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.CourseSink, CloseFunc, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")

	switch cfg.Database.Driver {
	case config.DriverMongo:
		mongoDB, err := db.NewMongoDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().
			Str("database", cfg.Database.DBName).
			Str("collection", cfg.Database.Collection).
			Msg("Database connection successfully established.")
		return appRepos.NewMongoCourseSink(mongoDB.Collection(cfg.Database.Collection)), mongoDB.Close, nil

	case config.DriverPostgres:
		pg, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Str("database", cfg.Database.DBName).Msg("Database connection successfully established.")
		return appRepos.NewPostgresCourseSink(pg), func(context.Context) error {
			pg.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// BuildDependencies initializes services, controllers and the optional importer.
// sink may be nil.
func BuildDependencies(cfg *config.Config, courses *appRepos.CourseRepository, sink appRepos.CourseSink, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(courses, sink)
	deps.CourseService = appServices.NewCourseService(courses, cfg.Catalog.Locale)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)

	if sink != nil {
		deps.Importer = seed.NewImporter(courses, sink, lgr)
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), appMiddleware.Recovery())

	appRoutes.SetupRouter(router, deps.CourseController, deps.Repos.Courses)

	return router
}
