package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"testgenz-result-service/internal/app"
	"testgenz-result-service/internal/domain"
)

// ResultsHandler accepts a completed answer sequence in one shot and returns
// the generated result identifier. This is the non-interactive counterpart to
// the websocket flow, for clients that collect answers locally.
type ResultsHandler struct {
	service *app.ResultService
}

func NewResultsHandler(service *app.ResultService) *ResultsHandler {
	return &ResultsHandler{service: service}
}

type submitRequest struct {
	UserID   string          `json:"userId"`
	QuizSlug string          `json:"quizSlug"`
	Answers  []domain.Answer `json:"answers"`
}

type submitResponse struct {
	ResultID string `json:"resultId"`
}

func (h *ResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.QuizSlug == "" || len(req.Answers) == 0 {
		http.Error(w, "missing userId, quizSlug, or answers", http.StatusBadRequest)
		return
	}

	resultID, err := h.service.ComputeAndPersistResult(r.Context(), req.Answers, req.UserID, req.QuizSlug)
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, domain.ErrAttemptIncomplete):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submitResponse{ResultID: resultID})
}
