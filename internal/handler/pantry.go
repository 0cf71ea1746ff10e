package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dukerupert/supper/internal/model"
	"github.com/dukerupert/supper/internal/pantry"
	"github.com/dukerupert/supper/internal/recommend"
	"github.com/dukerupert/supper/internal/store"
	"github.com/dukerupert/supper/internal/websocket"
)

type PantryHandler struct {
	pantryStore *store.PantryStore
	hub         *websocket.Hub
	logger      *slog.Logger
	now         func() time.Time
}

func NewPantryHandler(ps *store.PantryStore, hub *websocket.Hub, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{pantryStore: ps, hub: hub, logger: logger, now: time.Now}
}

func (h *PantryHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type pantryItemRequest struct {
	Name      string  `json:"name"`
	Quantity  string  `json:"quantity"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category"`
	ExpiresOn *string `json:"expires_on"`
	Notes     string  `json:"notes"`
}

var errUnknownCategory = errors.New("must be produce, meat, dairy, pantry, frozen or other")

func validCategory(v any) error {
	s, _ := v.(string)
	if s != "" && !model.PantryCategory(s).Valid() {
		return errUnknownCategory
	}
	return nil
}

func (r *pantryItemRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.By(validCategory)),
		validation.Field(&r.ExpiresOn, validation.Date(dateLayout)),
	)
}

// item builds the pantry item, suggesting a category from the name when
// none was given and fallback is empty.
func (r *pantryItemRequest) item(id string, fallback model.PantryCategory) model.PantryItem {
	item := model.PantryItem{
		ID:       id,
		Name:     r.Name,
		Quantity: r.Quantity,
		Unit:     r.Unit,
		Category: model.PantryCategory(r.Category),
		Notes:    r.Notes,
	}
	if item.Category == "" {
		item.Category = fallback
	}
	if item.Category == "" {
		item.Category = pantry.SuggestCategory(r.Name)
	}
	if r.ExpiresOn != nil && *r.ExpiresOn != "" {
		// Already checked by Validate.
		d, _ := parseDate(*r.ExpiresOn)
		item.ExpiresOn = &d
	}
	return item
}

func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.pantryStore.List()
	if err != nil {
		h.logger.Error("list pantry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pantry"})
		return
	}
	if items == nil {
		items = []model.PantryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pantryItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	item, err := h.pantryStore.Create(req.item("", ""))
	if err != nil {
		h.logger.Error("create pantry item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create pantry item"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityPantryItem, "created", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.pantryStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get pantry item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pantry item not found"})
		return
	}

	var req pantryItemRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	item, err := h.pantryStore.Update(req.item(id, existing.Category))
	if err != nil {
		h.logger.Error("update pantry item", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update pantry item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pantry item not found"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityPantryItem, "updated", item.ID, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.pantryStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get pantry item"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pantry item not found"})
		return
	}

	if err := h.pantryStore.Delete(id); err != nil {
		h.logger.Error("delete pantry item", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete pantry item"})
		return
	}

	h.broadcast(websocket.NewMessage(websocket.EntityPantryItem, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// Expiring lists items expiring within ?days= days of today (default 3).
func (h *PantryHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days := recommend.ExpiringWithinDays
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 365 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "days must be between 0 and 365"})
			return
		}
		days = n
	}

	items, err := h.pantryStore.ListExpiring(h.now(), days)
	if err != nil {
		h.logger.Error("list expiring", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list expiring items"})
		return
	}
	if items == nil {
		items = []model.PantryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
