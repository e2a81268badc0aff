package httpapi

import (
	"net/http"
	"strings"
)

// ListMatches serves one round of the schedule. Without a round query
// parameter the default round resolver picks the round a visitor most
// likely wants to see; "round=all" returns the whole season.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	selector := strings.TrimSpace(r.URL.Query().Get("round"))

	result, err := h.matchService.ListRound(ctx, selector)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "round", selector, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundMatchesToDTO(result))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))

	item, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GetDefaultRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDefaultRound")
	defer span.End()

	round, err := h.matchService.DefaultRound(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve default round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"round": round})
}
