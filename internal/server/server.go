package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/exertrack/apiserver/config"
	"github.com/exertrack/apiserver/internal/db"
	"github.com/exertrack/apiserver/internal/handlers"
	"github.com/exertrack/apiserver/internal/httpmetrics"
	"github.com/exertrack/apiserver/internal/mq"
	"github.com/exertrack/apiserver/internal/services"
	"github.com/exertrack/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	events     *mq.MQ
	log        *logrus.Logger
}

// New constructs a Server with its full dependency graph: database,
// repositories, services, optional event broker, and routes.
func New(ctx context.Context, cfg config.Config, log *logrus.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var backend mq.Backend
	if cfg.RabbitMQ.URL != "" {
		backend, err = mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		log.WithField("queue", cfg.RabbitMQ.Queue).Info("event publishing enabled")
	} else {
		backend = mq.NewNoopBackend()
	}
	events := mq.New(backend)

	userRepo := store.NewUserRepository(dbConn)
	exerciseRepo := store.NewExerciseRepository(dbConn)

	userService := services.NewUserService(userRepo)
	exerciseService := services.NewExerciseService(exerciseRepo, events, cfg.RabbitMQ.Queue, log)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)
	// The legacy server was fully CORS-open.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	router.Use(httpmetrics.Collect)

	router.Get("/healthz", handlers.Healthz)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api/exercise", func(r chi.Router) {
		handlers.ExerciseAPIRouter(r, userService, exerciseService, log)
	})

	indexPath := filepath.Join(cfg.StaticDir, "index.html")
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, indexPath)
	})
	fileServer := http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.StaticDir)))
	router.Handle("/public/*", fileServer)

	router.NotFound(handlers.NotFound)
	router.MethodNotAllowed(handlers.NotFound)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		events:     events,
		log:        log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("starting server")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.events != nil {
		_ = s.events.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
