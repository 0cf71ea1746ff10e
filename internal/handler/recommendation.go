package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dukerupert/supper/internal/model"
	"github.com/dukerupert/supper/internal/recommend"
	"github.com/dukerupert/supper/internal/store"
)

type RecommendationHandler struct {
	recipeStore *store.RecipeStore
	pantryStore *store.PantryStore
	threshold   float64
	logger      *slog.Logger
	now         func() time.Time
}

func NewRecommendationHandler(rs *store.RecipeStore, ps *store.PantryStore, threshold float64, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{recipeStore: rs, pantryStore: ps, threshold: threshold, logger: logger, now: time.Now}
}

type recommendationResponse struct {
	Results    []model.MatchResult  `json:"results"`
	Categories recommend.Categories `json:"categories"`
}

// List ranks the recipe library against the pantry. ?limit= caps the ranked
// list; the categories always cover every recipe.
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	recipes, err := h.recipeStore.List()
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipes"})
		return
	}
	items, err := h.pantryStore.List()
	if err != nil {
		h.logger.Error("list pantry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pantry"})
		return
	}

	ranked := recommend.RankWithThreshold(recipes, items, h.now(), h.threshold)
	resp := recommendationResponse{
		Results:    ranked,
		Categories: recommend.Categorize(ranked),
	}
	if limit >= 0 && limit < len(ranked) {
		resp.Results = ranked[:limit]
	}
	writeJSON(w, http.StatusOK, resp)
}
