package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/internal/service/vocabulary"
	"github.com/heartmarshall/alice-reader-backend/internal/transport/middleware"
)

type vocabularyService interface {
	Save(ctx context.Context, in vocabulary.SaveInput) (domain.VocabularyItem, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error)
	Remove(ctx context.Context, in vocabulary.RemoveInput) error
}

// VocabularyHandler serves the caller's saved-word list.
type VocabularyHandler struct {
	svc vocabularyService
	log *slog.Logger
}

// NewVocabularyHandler creates a VocabularyHandler.
func NewVocabularyHandler(svc vocabularyService, logger *slog.Logger) *VocabularyHandler {
	return &VocabularyHandler{svc: svc, log: logger.With("handler", "vocabulary")}
}

type saveVocabularyRequest struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

type vocabularyListResponse struct {
	Items []domain.VocabularyItem `json:"items"`
}

// List returns the caller's saved words.
// GET /api/v1/vocabulary
func (h *VocabularyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, vocabularyListResponse{Items: items})
}

// Save adds or updates a word.
// PUT /api/v1/vocabulary
func (h *VocabularyHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req saveVocabularyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	item, err := h.svc.Save(r.Context(), vocabulary.SaveInput{
		UserID:     userID,
		Term:       req.Term,
		Definition: req.Definition,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Remove deletes a word. Unknown words still yield 204.
// DELETE /api/v1/vocabulary/{term}
func (h *VocabularyHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	err = h.svc.Remove(r.Context(), vocabulary.RemoveInput{UserID: userID, Term: r.PathValue("term")})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
