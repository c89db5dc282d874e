package multiplier

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/models"
)

// configSource supplies the course XP config for the effective-XP
// preview. Implemented by the perks service, which owns course settings.
type configSource interface {
	GetXPConfig(ctx context.Context, courseID string) (models.XPConfig, error)
}

// streakSource supplies a student's current streak for the preview.
type streakSource interface {
	CurrentStreak(ctx context.Context, studentID int64, courseID string) (int, error)
}

type Handler struct {
	service *Service
	config  configSource
	streaks streakSource
}

func NewHandler(service *Service, config configSource, streaks streakSource) *Handler {
	return &Handler{service: service, config: config, streaks: streaks}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) SetMultiplier(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	var req models.SetMultiplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	ev, err := h.service.SetActiveMultiplier(r.Context(), courseID, req.Multiplier, req.DurationMinutes, req.Label, time.Now().UTC())
	if err != nil {
		if apperrors.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to set multiplier"})
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (h *Handler) ClearMultiplier(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	if err := h.service.ClearActiveMultiplier(r.Context(), courseID); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to clear multiplier"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *Handler) GetMultiplier(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	ev, err := h.service.GetActive(r.Context(), courseID, time.Now().UTC())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get multiplier"})
		return
	}
	if ev == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"active": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"active": true, "event": ev})
}

// EffectiveXP previews the XP a base amount would earn for the calling
// student right now. Read-only; does not touch the ledger.
func (h *Handler) EffectiveXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	courseID := mux.Vars(r)["courseID"]

	base, err := strconv.Atoi(r.URL.Query().Get("base"))
	if err != nil || base < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "base must be a non-negative integer"})
		return
	}

	cfg, err := h.config.GetXPConfig(r.Context(), courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load course config"})
		return
	}

	currentStreak, err := h.streaks.CurrentStreak(r.Context(), userID, courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load streak"})
		return
	}

	now := time.Now().UTC()
	ev, err := h.service.GetActive(r.Context(), courseID, now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get multiplier"})
		return
	}

	writeJSON(w, http.StatusOK, EffectiveXP(base, cfg.MultiplierConfig, currentStreak, ev, now))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
