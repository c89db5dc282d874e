package progression

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/levels"
	"github.com/learnquest/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// AwardXP handles POST /api/v1/progress/xp
func (h *Handler) AwardXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
		return
	}

	var req models.AwardXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.AwardXP(r.Context(), userID, req)
	if err != nil {
		if apperrors.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[progression] award failed for student %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to award XP"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProgress handles GET /api/v1/progress?course_id=
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
		return
	}

	resp, err := h.service.GetProgress(r.Context(), userID, r.URL.Query().Get("course_id"))
	if err != nil {
		log.Printf("[progression] get progress failed for student %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load progress"})
		return
	}
	resp.Badges = visibleBadges(resp.Badges)
	writeJSON(w, http.StatusOK, resp)
}

// UpdateStats handles POST /api/v1/progress/stats
func (h *Handler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "authentication required"})
		return
	}

	var update models.StatsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.service.UpdateStats(r.Context(), userID, update)
	if err != nil {
		log.Printf("[progression] stats update failed for student %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update stats"})
		return
	}
	resp.Badges = visibleBadges(resp.Badges)
	writeJSON(w, http.StatusOK, resp)
}

// GetLevelInfo handles GET /api/v1/levels?xp=N. With no xp parameter it
// returns the whole level table.
func (h *Handler) GetLevelInfo(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("xp")
	if raw == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"levels": levels.Table()})
		return
	}
	xp, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "xp must be an integer"})
		return
	}

	info := levels.GetLevelInfo(xp)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level": info,
		"tier":  levels.RankTier(info.Current.Level),
	})
}

// visibleBadges drops hidden badges the student has not earned yet.
func visibleBadges(states []models.BadgeState) []models.BadgeState {
	out := states[:0]
	for _, b := range states {
		if b.Hidden && !b.Earned {
			continue
		}
		out = append(out, b)
	}
	return out
}

func getUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("user_id").(int64)
	return userID, ok
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
