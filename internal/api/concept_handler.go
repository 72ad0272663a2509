package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/platform/logger"
)

// ConceptResponse is one concept as shown when studying before a game.
type ConceptResponse struct {
	ID          string `json:"id"`
	Term        string `json:"term"`
	Definition  string `json:"definition"`
	Explanation string `json:"explanation,omitempty"`
	Example     string `json:"example,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// ConceptListResponse lists every loaded concept in content order.
type ConceptListResponse struct {
	Concepts []ConceptResponse `json:"concepts"`
}

// ConceptHandler serves the concept table the decks are dealt from.
type ConceptHandler struct {
	concepts []ConceptResponse
	logger   *slog.Logger
}

// NewConceptHandler creates a new ConceptHandler. The concepts are copied, so
// later changes to the slice are not served.
func NewConceptHandler(concepts []domain.ConceptRecord, logger *slog.Logger) *ConceptHandler {
	if logger == nil {
		panic("logger cannot be nil for ConceptHandler")
	}

	responses := make([]ConceptResponse, len(concepts))
	for i, c := range concepts {
		responses[i] = conceptToResponse(c)
	}

	return &ConceptHandler{
		concepts: responses,
		logger:   logger.With(slog.String("component", "concept_handler")),
	}
}

// ListConcepts handles GET /concepts requests
func (h *ConceptHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	log.Debug("listing concepts", slog.Int("count", len(h.concepts)))
	shared.RespondWithJSON(w, r, http.StatusOK, ConceptListResponse{Concepts: h.concepts})
}

func conceptToResponse(c domain.ConceptRecord) ConceptResponse {
	return ConceptResponse{
		ID:          c.ID,
		Term:        c.Front,
		Definition:  c.Back,
		Explanation: c.Explanation,
		Example:     c.Example,
		Icon:        c.Icon,
	}
}
