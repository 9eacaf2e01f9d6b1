package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-directory/config"
	deliveryHttp "doctor-directory/internal/delivery/http"
	"doctor-directory/internal/delivery/http/handler"
	"doctor-directory/internal/delivery/http/middleware"
	"doctor-directory/internal/infrastructure/directory"
	"doctor-directory/internal/repository"
	"doctor-directory/internal/service"
	"doctor-directory/internal/usecase"
	"doctor-directory/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config    *config.Config
	Log       *logrus.Logger
	Directory usecase.DoctorDirectoryUsecase
	Server    *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = SetupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	// Initialize all layers
	app.Directory = NewDirectoryUsecase(cfg.Directory, app.Log)
	app.Server = initializeServer(cfg, app.Log, app.Directory)

	return app, nil
}

// SetupLogger configures the logrus logger
func SetupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// NewDirectoryUsecase wires the directory client, snapshot store and filter
// engine. Shared by the server and the CLI.
func NewDirectoryUsecase(cfg config.DirectoryConfig, log *logrus.Logger) usecase.DoctorDirectoryUsecase {
	searchMatch, ok := service.ParseSearchMatch(cfg.SearchMatch)
	if !ok {
		log.Warnf("Unknown search match policy %q, using %s", cfg.SearchMatch, searchMatch)
	}
	specialtyMatch, ok := service.ParseSpecialtyMatch(cfg.SpecialtyMatch)
	if !ok {
		log.Warnf("Unknown specialty match policy %q, using %s", cfg.SpecialtyMatch, specialtyMatch)
	}

	client := directory.NewHTTPClient(cfg.SourceURL, nil, log)
	doctorRepo := repository.NewDoctorRepository()
	filter := service.NewDoctorFilter(searchMatch, specialtyMatch)
	log.WithFields(logrus.Fields{
		"search_match":    filter.SearchMatch(),
		"specialty_match": filter.SpecialtyMatch(),
	}).Info("Directory filter configured")

	return usecase.NewDoctorDirectoryUsecase(log, client, doctorRepo, filter, cfg.SuggestionLimit)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, directoryUsecase usecase.DoctorDirectoryUsecase) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(directoryUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	requestLoggerMiddleware := middleware.NewRequestLoggerMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, corsMiddleware, requestLoggerMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run serves HTTP and loads the directory side by side until SIGINT/SIGTERM.
// Requests arriving before the load resolves see the loading status.
func (app *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := app.Directory.Load(ctx)
		if errors.Is(err, usecase.ErrLoadCancelled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown stops the HTTP server gracefully
func (app *App) shutdown() error {
	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	app.Log.Info("Server shutdown complete")
	return nil
}
