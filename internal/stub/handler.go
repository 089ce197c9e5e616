package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DhanushS2309/LLM-enhanced-recommendation-system/pkg/utils"
)

// Handler exposes the stub service over the backend's HTTP contract.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts every contract endpoint on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session/init", h.handleInit)
	r.Post("/session/respond", h.handleRespond)
	r.Post("/session/refine", h.handleRefine)
	r.Get("/recommendations/{userID}", h.handleRecommendations)
	r.Get("/recommendations/{userID}/insight", h.handleInsight)
	r.Post("/search/natural", h.handleSearch)
	r.Get("/health", h.handleHealth)
}

func (h *Handler) handleInit(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	questions := h.svc.InitSession(r.Context(), sessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"questions":  questions,
	})
}

func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID     string `json:"session_id"`
		QuestionIndex int    `json:"question_index"`
		Response      string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	outcome, err := h.svc.SubmitResponse(r.Context(), payload.SessionID, payload.QuestionIndex, payload.Response)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	if outcome.Complete {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"session_id":      payload.SessionID,
			"complete":        true,
			"recommendations": outcome.Recommendations,
		})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id":     payload.SessionID,
		"complete":       false,
		"question_index": outcome.NextIndex,
		"next_question":  outcome.NextQuestion,
	})
}

func (h *Handler) handleRefine(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"session_id"`
		Feedback  struct {
			Liked    []string `json:"liked"`
			Disliked []string `json:"disliked"`
		} `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refined, err := h.svc.Refine(r.Context(), payload.SessionID, payload.Feedback.Liked, payload.Feedback.Disliked)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"session_id":              payload.SessionID,
		"refined_recommendations": refined,
	})
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	topK := 10
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 50 {
			utils.RespondError(w, http.StatusBadRequest, "top_k must be between 1 and 50")
			return
		}
		topK = v
	}

	includeExplanations := true
	if raw := r.URL.Query().Get("include_explanations"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "include_explanations must be a boolean")
			return
		}
		includeExplanations = v
	}

	utils.RespondJSON(w, http.StatusOK, h.svc.Recommendations(r.Context(), userID, topK, includeExplanations))
}

func (h *Handler) handleInsight(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	utils.RespondJSON(w, http.StatusOK, h.svc.Insight(r.Context(), userID))
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query  string `json:"query"`
		UserID string `json:"user_id"`
		TopK   int    `json:"top_k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		utils.RespondError(w, http.StatusBadRequest, "query is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.svc.Search(r.Context(), payload.Query, payload.UserID, payload.TopK))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
