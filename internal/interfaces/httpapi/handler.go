package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/palpiteiro/prediction-league/internal/platform/logging"
	"github.com/palpiteiro/prediction-league/internal/usecase"
)

type Handler struct {
	matchService   *usecase.MatchService
	rankingService *usecase.RankingService
	leagueService  *usecase.LeagueService
	betService     *usecase.BetService
	statsService   *usecase.StatsService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	rankingService *usecase.RankingService,
	leagueService *usecase.LeagueService,
	betService *usecase.BetService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:   matchService,
		rankingService: rankingService,
		leagueService:  leagueService,
		betService:     betService,
		statsService:   statsService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

type createLeagueRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsPublic    bool   `json:"is_public"`
}

type updateLeagueRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type joinLeagueRequest struct {
	Code string `json:"code" validate:"required,max=16"`
}

type placeBetRequest struct {
	MatchID   string `json:"match_id" validate:"required"`
	HomeScore int    `json:"home_score" validate:"min=0,max=99"`
	AwayScore int    `json:"away_score" validate:"min=0,max=99"`
}
