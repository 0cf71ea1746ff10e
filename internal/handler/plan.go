package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dukerupert/supper/internal/model"
	"github.com/dukerupert/supper/internal/planner"
	"github.com/dukerupert/supper/internal/recommend"
	"github.com/dukerupert/supper/internal/store"
	"github.com/dukerupert/supper/internal/websocket"
)

// pantryPoolMinScore is the match score a recipe needs to stay in the pool
// when a plan is generated from what is in the pantry.
const pantryPoolMinScore = 50

type PlanHandler struct {
	planStore   *store.PlanStore
	recipeStore *store.RecipeStore
	pantryStore *store.PantryStore
	gen         *planner.Generator
	defaults    model.Preferences
	threshold   float64
	hub         *websocket.Hub
	logger      *slog.Logger
	now         func() time.Time

	// mu serialises read-modify-write cycles on stored plans.
	mu sync.Mutex
}

type PlanHandlerConfig struct {
	Plans     *store.PlanStore
	Recipes   *store.RecipeStore
	Pantry    *store.PantryStore
	Generator *planner.Generator
	Defaults  model.Preferences
	Threshold float64
	Hub       *websocket.Hub
	Logger    *slog.Logger
}

func NewPlanHandler(cfg PlanHandlerConfig) *PlanHandler {
	gen := cfg.Generator
	if gen == nil {
		gen = planner.New()
	}
	return &PlanHandler{
		planStore:   cfg.Plans,
		recipeStore: cfg.Recipes,
		pantryStore: cfg.Pantry,
		gen:         gen,
		defaults:    cfg.Defaults,
		threshold:   cfg.Threshold,
		hub:         cfg.Hub,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

func (h *PlanHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type planRequest struct {
	model.Preferences
	StartDate string `json:"start_date"`
}

func (r *planRequest) Validate() error {
	if err := r.Preferences.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.StartDate, validation.Date(dateLayout)),
	)
}

// pool returns the recipes plans are dealt from. With UsePantryIngredients
// it keeps only the recipes that are at least half covered by the pantry,
// unless none are.
func (h *PlanHandler) pool(prefs model.Preferences) ([]model.Recipe, error) {
	recipes, err := h.recipeStore.List()
	if err != nil {
		return nil, err
	}
	if !prefs.UsePantryIngredients || len(recipes) == 0 {
		return recipes, nil
	}

	items, err := h.pantryStore.List()
	if err != nil {
		return nil, err
	}
	var kept []model.Recipe
	for _, m := range recommend.RankWithThreshold(recipes, items, h.now(), h.threshold) {
		if m.MatchScore >= pantryPoolMinScore {
			kept = append(kept, m.Recipe)
		}
	}
	if len(kept) == 0 {
		return recipes, nil
	}
	return kept, nil
}

// Create generates a plan from the request preferences layered over the
// configured defaults, stores it and makes it current.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	req := planRequest{Preferences: h.defaults}
	req.ExcludedMealIDs = slices.Clone(h.defaults.ExcludedMealIDs)
	if err := decodeJSON(r, &req, true); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	anchor := h.now()
	if req.StartDate != "" {
		anchor, _ = parseDate(req.StartDate)
	}

	recipes, err := h.pool(req.Preferences)
	if err != nil {
		h.logger.Error("load plan pool", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load recipes"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	plan := h.gen.Generate(recipes, anchor, req.Preferences)
	if err := h.planStore.Save(plan); err != nil {
		h.logger.Error("save plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save plan"})
		return
	}
	if _, err := h.planStore.SetCurrent(plan.ID); err != nil {
		h.logger.Error("set current plan", "id", plan.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save plan"})
		return
	}

	h.logger.Info("plan generated", "id", plan.ID, "days", len(plan.Days), "recipes", len(recipes))
	h.broadcast(websocket.NewMessage(websocket.EntityPlan, "created", plan.ID, nil))
	writeJSON(w, http.StatusCreated, plan)
}

func (h *PlanHandler) Current(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planStore.GetCurrent()
	if err != nil {
		h.logger.Error("get current plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get plan"})
		return
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no current plan"})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.load(w, r.PathValue("id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// load fetches a plan, writing the error response when it cannot.
func (h *PlanHandler) load(w http.ResponseWriter, id string) (*model.Plan, bool) {
	plan, err := h.planStore.GetByID(id)
	if err != nil {
		h.logger.Error("get plan", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get plan"})
		return nil, false
	}
	if plan == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return nil, false
	}
	return plan, true
}

// save stores an edited plan and tells clients about it.
func (h *PlanHandler) save(w http.ResponseWriter, plan *model.Plan, action string, extra map[string]any) bool {
	if err := h.planStore.Save(plan); err != nil {
		h.logger.Error("save plan", "id", plan.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save plan"})
		return false
	}
	h.broadcast(websocket.NewMessage(websocket.EntityPlan, action, plan.ID, extra))
	return true
}

// RegenerateWeek deals one week of the plan afresh with the default
// preferences' exclusions and pacing.
func (h *PlanHandler) RegenerateWeek(w http.ResponseWriter, r *http.Request) {
	week, err := parseIndexParam(r, "week")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid week"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	plan, ok := h.load(w, r.PathValue("id"))
	if !ok {
		return
	}
	if week < 0 || week*7 >= len(plan.Days) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "week out of range"})
		return
	}

	recipes, err := h.pool(h.defaults)
	if err != nil {
		h.logger.Error("load plan pool", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load recipes"})
		return
	}

	out := h.gen.RegenerateWeek(plan, week, recipes, h.defaults)
	if !h.save(w, out, "regenerated", map[string]any{"week": week}) {
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type dayEditRequest struct {
	Kind     *model.SlotKind `json:"kind"`
	RecipeID *string         `json:"recipe_id"`
	Note     *string         `json:"note"`
	Locked   *bool           `json:"locked"`
}

func validKind(v any) error {
	k, _ := v.(*model.SlotKind)
	if k != nil && !k.Valid() {
		return errors.New("must be meal, eating_out or leftovers")
	}
	return nil
}

func (r *dayEditRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Kind, validation.By(validKind)),
		validation.Field(&r.Note, validation.Length(0, 500)),
	)
}

type planEditResponse struct {
	Plan     *model.Plan `json:"plan"`
	Repaired []int       `json:"repaired"`
}

// EditDay changes one day of a plan and repairs any leftovers it left
// dangling.
func (h *PlanHandler) EditDay(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid day index"})
		return
	}

	var req dayEditRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if req.RecipeID != nil && *req.RecipeID != "" {
		recipe, err := h.recipeStore.GetByID(*req.RecipeID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get recipe"})
			return
		}
		if recipe == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "recipe not found"})
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	plan, ok := h.load(w, r.PathValue("id"))
	if !ok {
		return
	}

	edit := planner.DayEdit{Kind: req.Kind, RecipeID: req.RecipeID, Note: req.Note, Locked: req.Locked}
	out, repaired, err := planner.EditDay(plan, index, edit, h.now().UTC())
	if errors.Is(err, planner.ErrDayOutOfRange) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day index out of range"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if !h.save(w, out, "updated", map[string]any{"day": index}) {
		return
	}
	writeJSON(w, http.StatusOK, planEditResponse{Plan: out, Repaired: nonNil(repaired)})
}

type swapRequest struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Swap exchanges the contents of two days.
func (h *PlanHandler) Swap(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	plan, ok := h.load(w, r.PathValue("id"))
	if !ok {
		return
	}

	out, repaired, err := planner.SwapDays(plan, req.A, req.B, h.now().UTC())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "day index out of range"})
		return
	}

	if !h.save(w, out, "swapped", map[string]any{"a": req.A, "b": req.B}) {
		return
	}
	writeJSON(w, http.StatusOK, planEditResponse{Plan: out, Repaired: nonNil(repaired)})
}

func (h *PlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.load(w, id); !ok {
		return
	}
	if err := h.planStore.Delete(id); err != nil {
		h.logger.Error("delete plan", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete plan"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityPlan, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
