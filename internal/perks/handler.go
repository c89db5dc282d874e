package perks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/learnquest/backend/internal/apperrors"
	"github.com/learnquest/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Catalog ─────────────────────────────────────────────

func (h *Handler) GetPerks(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	perks, err := h.service.GetCoursePerks(r.Context(), courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get perks"})
		return
	}

	writeJSON(w, http.StatusOK, models.PerkCatalogResponse{CourseID: courseID, Perks: perks})
}

func (h *Handler) SavePerks(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	var req models.SavePerksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.SaveCoursePerks(r.Context(), courseID, req.Perks); err != nil {
		if apperrors.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save perks"})
		return
	}

	writeJSON(w, http.StatusOK, models.PerkCatalogResponse{CourseID: courseID, Perks: req.Perks})
}

// ── XP Config ───────────────────────────────────────────

func (h *Handler) GetXPConfig(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	cfg, err := h.service.GetXPConfig(r.Context(), courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get config"})
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

func (h *Handler) SaveXPConfig(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]

	var cfg models.XPConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.SaveXPConfig(r.Context(), courseID, cfg); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save config"})
		return
	}

	writeJSON(w, http.StatusOK, cfg)
}

// ── Redemption ──────────────────────────────────────────

func (h *Handler) RequestRedemption(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	vars := mux.Vars(r)

	req, err := h.service.RequestRedemption(r.Context(), vars["courseID"], userID, vars["perkID"])
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownPerk) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create request"})
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["courseID"]
	status := r.URL.Query().Get("status")

	requests, err := h.service.ListRequests(r.Context(), courseID, status)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list requests"})
		return
	}

	writeJSON(w, http.StatusOK, models.PerkRequestsResponse{Requests: requests})
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, true)
}

func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, false)
}

func (h *Handler) resolveRequest(w http.ResponseWriter, r *http.Request, approve bool) {
	requestID := mux.Vars(r)["id"]

	var resp *models.PerkResolveResponse
	var err error
	if approve {
		resp, err = h.service.ApproveRedemption(r.Context(), requestID)
	} else {
		resp, err = h.service.DenyRedemption(r.Context(), requestID)
	}

	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRequestNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrAlreadyResolved):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to resolve request"})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Usage ───────────────────────────────────────────────

func (h *Handler) GetMyUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	courseID := mux.Vars(r)["courseID"]

	usage, err := h.service.GetUsage(r.Context(), userID, courseID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get usage"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"course_id": courseID, "usage": usage})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
