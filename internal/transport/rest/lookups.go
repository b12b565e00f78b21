package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/alice-reader-backend/internal/service/lookup"
	"github.com/heartmarshall/alice-reader-backend/internal/transport/middleware"
)

type lookupLogger interface {
	LogLookup(ctx context.Context, in lookup.LookupInput)
}

// LookupHandler accepts lookup telemetry from readers.
type LookupHandler struct {
	svc lookupLogger
	log *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupLogger, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, log: logger.With("handler", "lookups")}
}

type logLookupRequest struct {
	BookID          string `json:"bookId"`
	SectionID       string `json:"sectionId"`
	Term            string `json:"term"`
	DefinitionFound bool   `json:"definitionFound"`
}

// Create queues a lookup record. Persistence happens in the background, so
// the response is 202 even if the record is later dropped.
// POST /api/v1/lookups
func (h *LookupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireUser(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req logLookupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	in := lookup.LookupInput{
		UserID:          userID,
		BookID:          req.BookID,
		SectionID:       req.SectionID,
		Term:            req.Term,
		DefinitionFound: req.DefinitionFound,
	}
	if err := in.Validate(); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	// Detached so the job outlives the request.
	h.svc.LogLookup(context.WithoutCancel(r.Context()), in)
	w.WriteHeader(http.StatusAccepted)
}
