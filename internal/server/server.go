package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/supper/internal/config"
	"github.com/dukerupert/supper/internal/database"
	"github.com/dukerupert/supper/internal/handler"
	"github.com/dukerupert/supper/internal/middleware"
	"github.com/dukerupert/supper/internal/planner"
	"github.com/dukerupert/supper/internal/store"
	ws "github.com/dukerupert/supper/internal/websocket"
)

// Plan generation is limited to this many requests per client per minute.
const planRequestsPerMinute = 10

type Server struct {
	db              *sql.DB
	hub             *ws.Hub
	recipeH         *handler.RecipeHandler
	pantryH         *handler.PantryHandler
	recommendationH *handler.RecommendationHandler
	planH           *handler.PlanHandler
	rateLimiter     *middleware.RateLimiter
	logger          *slog.Logger
}

func New(db *sql.DB, plannerCfg config.PlannerConfig, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	recipeStore := store.NewRecipeStore(db)
	pantryStore := store.NewPantryStore(db)
	planStore := store.NewPlanStore(db)

	handlerLogger := logger.With("component", "handler")

	return &Server{
		db:              db,
		hub:             hub,
		recipeH:         handler.NewRecipeHandler(recipeStore, hub, handlerLogger),
		pantryH:         handler.NewPantryHandler(pantryStore, hub, handlerLogger),
		recommendationH: handler.NewRecommendationHandler(recipeStore, pantryStore, plannerCfg.FuzzyThreshold, handlerLogger),
		planH: handler.NewPlanHandler(handler.PlanHandlerConfig{
			Plans:     planStore,
			Recipes:   recipeStore,
			Pantry:    pantryStore,
			Generator: planner.New(),
			Defaults:  plannerCfg.Defaults,
			Threshold: plannerCfg.FuzzyThreshold,
			Hub:       hub,
			Logger:    handlerLogger,
		}),
		rateLimiter: middleware.NewRateLimiter(planRequestsPerMinute, time.Minute),
		logger:      logger,
	}
}

func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Recipes
	mux.HandleFunc("GET /api/recipes", s.recipeH.List)
	mux.HandleFunc("POST /api/recipes", s.recipeH.Create)
	mux.HandleFunc("GET /api/recipes/{id}", s.recipeH.Get)
	mux.HandleFunc("PUT /api/recipes/{id}", s.recipeH.Update)
	mux.HandleFunc("DELETE /api/recipes/{id}", s.recipeH.Delete)
	mux.HandleFunc("POST /api/recipes/{id}/cooked", s.recipeH.MarkCooked)

	// Pantry
	mux.HandleFunc("GET /api/pantry", s.pantryH.List)
	mux.HandleFunc("POST /api/pantry", s.pantryH.Create)
	mux.HandleFunc("GET /api/pantry/expiring", s.pantryH.Expiring)
	mux.HandleFunc("PUT /api/pantry/{id}", s.pantryH.Update)
	mux.HandleFunc("DELETE /api/pantry/{id}", s.pantryH.Delete)

	mux.HandleFunc("GET /api/recommendations", s.recommendationH.List)

	// Plans
	mux.HandleFunc("POST /api/plans", s.rateLimitedHandler(s.planH.Create))
	mux.HandleFunc("GET /api/plans/current", s.planH.Current)
	mux.HandleFunc("GET /api/plans/{id}", s.planH.Get)
	mux.HandleFunc("DELETE /api/plans/{id}", s.planH.Delete)
	mux.HandleFunc("POST /api/plans/{id}/weeks/{week}/regenerate", s.rateLimitedHandler(s.planH.RegenerateWeek))
	mux.HandleFunc("PUT /api/plans/{id}/days/{index}", s.planH.EditDay)
	mux.HandleFunc("POST /api/plans/{id}/swap", s.planH.Swap)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	version, err := database.SchemaVersion(r.Context(), s.db)
	if err != nil {
		s.logger.Error("health check", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"status": "unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":         "ok",
		"schema_version": version,
		"clients":        s.hub.ClientCount(),
	})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
