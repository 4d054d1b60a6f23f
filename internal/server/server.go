package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/magallanes/coursecatalog/internal/bootstrap"
	"github.com/magallanes/coursecatalog/internal/config"
)

// Options tunes server startup
type Options struct {
	ConfigPath string
	// ImportOnStart forces a bulk import even when importer.on_startup is false
	ImportOnStart bool
}

// Server holds the state for the HTTP server.
type Server struct {
	config  *config.Config
	router  *gin.Engine
	logger  zerolog.Logger
	http    *http.Server
	closers []bootstrap.CloseFunc
}

// NewServer loads configuration and the course catalog, runs the optional
// import, and builds the router.
func NewServer(ctx context.Context, opts Options) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	courses, err := bootstrap.LoadCatalog(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		logger: lgr,
	}

	deps := bootstrap.BuildDependencies(cfg, courses, nil, lgr)

	if opts.ImportOnStart || cfg.Importer.OnStartup {
		dbSink, closeDB, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			// the import is optional; serving continues without it
			lgr.Error().Err(err).Msg("Skipping course import, database unavailable")
		} else {
			s.closers = append(s.closers, closeDB)
			deps = bootstrap.BuildDependencies(cfg, courses, dbSink, lgr)
			deps.Importer.ImportAll(ctx)
		}
	}

	s.router = bootstrap.SetupRouter(cfg, deps, lgr)
	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msgf("Server listening at http://localhost:%s", s.config.Server.Port)
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeResources(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shutdownErr error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = errors.Join(shutdownErr, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	shutdownErr = errors.Join(shutdownErr, s.closeResources(ctx))

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownErr != nil {
		return fmt.Errorf("server shutdown completed with errors: %w", shutdownErr)
	}
	return nil
}

func (s *Server) closeResources(ctx context.Context) error {
	var errs error
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database connection")
			errs = errors.Join(errs, err)
		}
	}
	s.closers = nil
	return errs
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
