package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"calcapi/internal/calculator"
	"calcapi/internal/logging"
	"calcapi/internal/tasks"
)

// Deps зависимости маршрутизатора. History может быть nil.
type Deps struct {
	Logger       *slog.Logger
	Tasks        *tasks.Store
	History      HistoryStore
	HistoryLimit int
}

// SetupRouter настраивает маршруты для API
func SetupRouter(deps Deps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	store := deps.Tasks
	if store == nil {
		store = tasks.NewStore()
	}

	calc := NewCalculatorHandler(logger, deps.History, deps.HistoryLimit)
	taskHandler := NewTaskHandler(store, logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(Recoverer(logger))

	r.NotFound(NotFoundHandler)
	r.MethodNotAllowed(MethodNotAllowedHandler)

	r.Get("/", HomeHandler)
	r.Get("/health", HealthHandler)

	// CORS разрешён для любых источников, но только на /api/*
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.NotFound(NotFoundHandler)
		r.MethodNotAllowed(MethodNotAllowedHandler)

		for _, op := range calculator.Operations() {
			r.Get("/"+op.Name, calc.Operation(op))
		}
		if deps.History != nil {
			r.Get("/history", calc.History)
		}
	})

	r.Post("/tasks", taskHandler.Create)
	r.Get("/tasks", taskHandler.List)
	r.Get("/tasks/{id}", taskHandler.Get)
	r.Put("/tasks/{id}", taskHandler.Update)
	r.Delete("/tasks/{id}", taskHandler.Delete)
	r.Get("/stats", taskHandler.Stats)

	return r
}
