package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	statsmock "github.com/palpiteiro/prediction-league/internal/mocks/domain/stats"
)

func TestStatsService_RefreshLeague_WritesComputedRowsUsingMockery(t *testing.T) {
	t.Parallel()

	leagueID := "lg-mock-1"
	betRepo := &stubBetRepository{rows: []bet.LeaderboardRow{
		leaderboardRow("u-ana", 1, 5, true),
		leaderboardRow("u-beto", 1, 0, false),
		leaderboardRow("u-ana", 2, 2, false),
	}}
	statsRepo := statsmock.NewRepository(t)

	service := NewStatsService(&stubLeagueRepository{}, betRepo, statsRepo, time.Minute, 1)

	statsRepo.
		On("ReplaceByLeague", mock.Anything, leagueID, mock.MatchedBy(func(rows []stats.UserStats) bool {
			if len(rows) != 2 {
				return false
			}
			ana, beto := rows[0], rows[1]
			return ana.UserID == "u-ana" && ana.TotalPoints == 7 && ana.ExactScores == 1 &&
				ana.TotalBets == 2 && ana.RoundsWon == 2 &&
				beto.UserID == "u-beto" && beto.TotalPoints == 0 && beto.TotalBets == 1
		})).
		Return(nil).
		Once()

	if err := service.RefreshLeague(context.Background(), leagueID); err != nil {
		t.Fatalf("refresh league: %v", err)
	}
}

func TestStatsService_RefreshLeague_WriteFailureUsingMockery(t *testing.T) {
	t.Parallel()

	leagueID := "lg-mock-2"
	betRepo := &stubBetRepository{rows: []bet.LeaderboardRow{
		leaderboardRow("u-ana", 1, 3, false),
	}}
	statsRepo := statsmock.NewRepository(t)

	service := NewStatsService(&stubLeagueRepository{}, betRepo, statsRepo, time.Minute, 1)

	writeErr := errors.New("deadlock detected")
	statsRepo.
		On("ReplaceByLeague", mock.Anything, leagueID, mock.Anything).
		Return(writeErr).
		Once()

	if err := service.RefreshLeague(context.Background(), leagueID); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error to propagate, got %v", err)
	}
}
