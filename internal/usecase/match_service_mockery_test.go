package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
	matchmock "github.com/palpiteiro/prediction-league/internal/mocks/domain/match"
)

func TestMatchService_DefaultRound_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	matchRepo := matchmock.NewRepository(t)

	service := NewMatchService(matchRepo)
	service.now = func() time.Time { return now }

	schedule := []match.Match{
		{ID: "m-11", Round: 1, KickoffAt: now.Add(-7 * 24 * time.Hour), Status: match.StatusFinished},
		{ID: "m-12", Round: 1, KickoffAt: now.Add(-7 * 24 * time.Hour), Status: match.StatusFinished},
		{ID: "m-21", Round: 2, KickoffAt: now.Add(-2 * 24 * time.Hour), Status: match.StatusFinished},
		{ID: "m-22", Round: 2, KickoffAt: now.Add(2 * 24 * time.Hour), Status: match.StatusScheduled},
	}

	matchRepo.
		On("List", mock.Anything).
		Return(schedule, nil).
		Once()

	got, err := service.DefaultRound(context.Background())
	if err != nil {
		t.Fatalf("default round: %v", err)
	}
	if got != 2 {
		t.Fatalf("unexpected default round: got=%d want=2", got)
	}
}

func TestMatchService_GetByID_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	matchRepo.
		On("GetByID", mock.Anything, "missing-match").
		Return(match.Match{}, false, nil).
		Once()

	_, err := service.GetByID(context.Background(), "missing-match")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_ListRound_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo)

	repoErr := errors.New("connection reset")
	matchRepo.
		On("ListByRound", mock.Anything, 3).
		Return(nil, repoErr).
		Once()

	_, err := service.ListRound(context.Background(), "3")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error to propagate, got %v", err)
	}
}
