package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// maxTermLength bounds terms accepted over HTTP.
const maxTermLength = 200

type termResolver interface {
	Resolve(ctx context.Context, q domain.DefinitionQuery) domain.DictionaryEntry
}

// DefinitionHandler serves term lookups.
type DefinitionHandler struct {
	resolver termResolver
	log      *slog.Logger
}

// NewDefinitionHandler creates a DefinitionHandler.
func NewDefinitionHandler(resolver termResolver, logger *slog.Logger) *DefinitionHandler {
	return &DefinitionHandler{resolver: resolver, log: logger.With("handler", "definitions")}
}

// Get resolves a term within a book.
// GET /api/v1/books/{bookID}/definitions/{term}?section=&chapter=
func (h *DefinitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := domain.DefinitionQuery{
		BookID:    r.PathValue("bookID"),
		Term:      r.PathValue("term"),
		SectionID: r.URL.Query().Get("section"),
		ChapterID: r.URL.Query().Get("chapter"),
	}
	if len(q.Term) > maxTermLength {
		handleError(h.log, w, r, domain.NewValidationError("term", "max 200 characters"))
		return
	}

	writeJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), q))
}
