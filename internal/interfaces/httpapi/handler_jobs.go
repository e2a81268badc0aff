package httpapi

import (
	"net/http"
)

// RunRefreshStatsJob recomputes the cached per-league member totals.
// The scheduler calls this; it is idempotent and safe to re-run.
func (h *Handler) RunRefreshStatsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshStatsJob")
	defer span.End()

	refreshed, err := h.statsService.RefreshAll(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh stats job failed", "refreshed_leagues", refreshed, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"refreshed_leagues": refreshed})
}
