package httpapi

import (
	"net/http"
	"strings"
)

// GetRanking serves a league's table. The round query parameter scopes
// it to one round or, with "all", the whole season; when absent the
// default round resolver decides and the response says which round it
// picked.
func (h *Handler) GetRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRanking")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	selector := strings.TrimSpace(r.URL.Query().Get("round"))

	board, err := h.rankingService.GetLeaderboard(ctx, leagueID, selector)
	if err != nil {
		h.logger.WarnContext(ctx, "get ranking failed", "league_id", leagueID, "round", selector, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}
