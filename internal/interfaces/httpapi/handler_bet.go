package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/palpiteiro/prediction-league/internal/usecase"
)

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBet")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req placeBetRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	placed, err := h.betService.PlaceBet(ctx, usecase.PlaceBetInput{
		UserID:    principal.UserID,
		LeagueID:  leagueID,
		MatchID:   req.MatchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bet failed", "user_id", principal.UserID, "league_id", leagueID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betToDTO(placed))
}

// ListLeagueBets serves every member's bets for the scoped round so
// players can compare predictions.
func (h *Handler) ListLeagueBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueBets")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	selector := strings.TrimSpace(r.URL.Query().Get("round"))

	result, err := h.betService.ListLeagueBets(ctx, principal.UserID, leagueID, selector)
	if err != nil {
		h.logger.WarnContext(ctx, "list league bets failed", "user_id", principal.UserID, "league_id", leagueID, "round", selector, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueBetsToDTO(result))
}

func (h *Handler) ListMyLeagueBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagueBets")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	selector := strings.TrimSpace(r.URL.Query().Get("round"))

	items, err := h.betService.ListMyBets(ctx, principal.UserID, leagueID, selector)
	if err != nil {
		h.logger.WarnContext(ctx, "list my league bets failed", "user_id", principal.UserID, "league_id", leagueID, "round", selector, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betsToDTO(items))
}

// ListMyBets returns the caller's bets across every league they are in.
func (h *Handler) ListMyBets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyBets")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	selector := strings.TrimSpace(r.URL.Query().Get("round"))

	items, err := h.betService.ListMyBets(ctx, principal.UserID, "", selector)
	if err != nil {
		h.logger.WarnContext(ctx, "list my bets failed", "user_id", principal.UserID, "round", selector, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, betsToDTO(items))
}
