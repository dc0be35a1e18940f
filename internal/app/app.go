package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskgarden/internal/config"
	"taskgarden/internal/handlers"
	"taskgarden/internal/logger"
	"taskgarden/internal/middleware"
	"taskgarden/internal/repository"
	"taskgarden/internal/repository/inmemory"
	"taskgarden/internal/repository/postgres"
	"taskgarden/internal/service"
	"taskgarden/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	sweeper   *worker.SessionSweeper
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	repo, err := a.initRepository(ctx)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(repo, repo, a.config.Session.TTL)
	taskService := service.NewTaskService(repo)
	reportService := service.NewReportService(repo)

	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, repo)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	calendarHandler := handlers.NewCalendarHandler(reportService, taskService)

	a.sweeper = worker.NewSessionSweeper(repo, a.config.Session.SweepInterval)

	sessionAuth := middleware.SessionAuth(authService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimit(a.config.RateLimit.RPM))

	r.Get("/health", taskHandler.HealthCheck)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(sessionAuth)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
				r.Post("/toggle", taskHandler.Toggle)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/statistics", dashboardHandler.Statistics)
			r.Get("/recent-tasks", dashboardHandler.RecentTasks)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/events", calendarHandler.Events)
			r.Post("/events", calendarHandler.CreateEvent)
		})

		// endpoints the dashboard page scripts poll
		r.Route("/api", func(r chi.Router) {
			r.Get("/grass_data", dashboardHandler.GrassData)
			r.Get("/statistics", dashboardHandler.Statistics)
			r.Get("/recent_tasks", dashboardHandler.RecentTasksFeed)
		})
	})

	a.router = r
	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: r,
	}
	return nil
}

func (a *App) initRepository(ctx context.Context) (repository.Repository, error) {
	switch a.config.Repository.Type {
	case "postgres":
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		return storage, nil
	case "inmemory":
		logger.Warn("Repository: using in-memory store, data will not survive a restart")
		return inmemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}
}

// Run serves until ctx is cancelled, then shuts everything down in
// reverse initialization order.
func (a *App) Run(ctx context.Context) error {
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go a.sweeper.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", err)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	return nil
}
