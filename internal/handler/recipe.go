package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dukerupert/supper/internal/fuzzy"
	"github.com/dukerupert/supper/internal/ingredient"
	"github.com/dukerupert/supper/internal/model"
	"github.com/dukerupert/supper/internal/store"
	"github.com/dukerupert/supper/internal/websocket"
)

type RecipeHandler struct {
	recipeStore *store.RecipeStore
	hub         *websocket.Hub
	logger      *slog.Logger
	now         func() time.Time
}

func NewRecipeHandler(rs *store.RecipeStore, hub *websocket.Hub, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipeStore: rs, hub: hub, logger: logger, now: time.Now}
}

func (h *RecipeHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type recipeRequest struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Ingredients  []ingredient.Ingredient `json:"ingredients"`
	Instructions string                  `json:"instructions"`
	Links        []string                `json:"links"`
	Tags         []string                `json:"tags"`
	PrepTime     int                     `json:"prep_time"`
	ImageRef     string                  `json:"image_ref"`
	Notes        string                  `json:"notes"`
}

func (r *recipeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.PrepTime, validation.Min(0), validation.Max(24*60)),
		validation.Field(&r.Links, validation.Each(validation.Required, validation.Length(1, 2048))),
		validation.Field(&r.Tags, validation.Each(validation.Required, validation.Length(1, 50))),
	)
}

func (r *recipeRequest) recipe(id string) model.Recipe {
	return model.Recipe{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Links:        r.Links,
		Tags:         r.Tags,
		PrepTime:     r.PrepTime,
		ImageRef:     r.ImageRef,
		Notes:        r.Notes,
	}
}

// List returns every recipe by name. With ?q= it returns the recipes whose
// name fuzzily matches the query, closest first.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipeStore.List()
	if err != nil {
		h.logger.Error("list recipes", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list recipes"})
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		names := make([]string, len(recipes))
		for i, rec := range recipes {
			names[i] = rec.Name
		}
		hits := fuzzy.NewIndex(names, 0).Search(q)
		matched := make([]model.Recipe, 0, len(hits))
		for _, hit := range hits {
			matched = append(matched, recipes[hit.Index])
		}
		recipes = matched
	}

	if recipes == nil {
		recipes = []model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.recipeStore.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get recipe"})
		return
	}
	if recipe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	recipe, err := h.recipeStore.Create(req.recipe(""))
	if err != nil {
		h.logger.Error("create recipe", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create recipe"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityRecipe, "created", recipe.ID, nil))
	writeJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req recipeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	recipe, err := h.recipeStore.Update(req.recipe(id))
	if err != nil {
		h.logger.Error("update recipe", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update recipe"})
		return
	}
	if recipe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityRecipe, "updated", recipe.ID, nil))
	writeJSON(w, http.StatusOK, recipe)
}

// Delete removes a recipe. Plans that still name it keep the ID; the plan
// editor shows those days as unknown recipes.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.recipeStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get recipe"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	if err := h.recipeStore.Delete(id); err != nil {
		h.logger.Error("delete recipe", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete recipe"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityRecipe, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// MarkCooked records when the recipe was last cooked, now unless the body
// gives a cooked_at time.
func (h *RecipeHandler) MarkCooked(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		CookedAt *time.Time `json:"cooked_at"`
	}
	if err := decodeJSON(r, &req, true); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	at := h.now().UTC()
	if req.CookedAt != nil {
		at = req.CookedAt.UTC()
	}

	recipe, err := h.recipeStore.MarkCooked(id, at)
	if err != nil {
		h.logger.Error("mark cooked", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to mark recipe cooked"})
		return
	}
	if recipe == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityRecipe, "cooked", recipe.ID, nil))
	writeJSON(w, http.StatusOK, recipe)
}
