package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fitcoach/apiserver/config"
	"github.com/fitcoach/apiserver/internal/auth"
	"github.com/fitcoach/apiserver/internal/handlers"
	"github.com/fitcoach/apiserver/internal/services"
	"github.com/fitcoach/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *zap.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	userStore := store.NewFileStore(cfg.UsersFile)
	userService := services.NewUserService(userStore)
	catalog := services.NewCatalogService(cfg.ExercisesFile, logger)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID)

	userHandler := handlers.NewUserHandler(userService, tokens, logger)
	googleHandler := handlers.NewGoogleAuthHandler(verifier, userService, tokens, logger)
	exerciseHandler := handlers.NewExerciseHandler(catalog)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		}),
	)

	router.Get("/healthz", handlers.Healthz)
	router.Post("/subscription", userHandler.Subscribe)
	router.Post("/connexion", userHandler.Login)
	router.Route("/api", func(r chi.Router) {
		r.Get("/exercices", exerciseHandler.List)
		r.Post("/auth/google-login", googleHandler.Login)
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/", userHandler.GetUser)
			r.Patch("/", userHandler.UpdateUser)
			r.Delete("/", userHandler.DeleteUser)
		})
		r.Patch("/{userID}/favorites", userHandler.ToggleFavorite)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 4000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server configured",
		zap.Int("port", port),
		zap.String("users_file", cfg.UsersFile),
	)

	return &Server{
		httpServer: httpServer,
		router:     router,
		log:        logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	_ = s.log.Sync()
	return s.httpServer.Close()
}
