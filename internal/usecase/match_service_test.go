package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

func TestMatchService_ListRound_DefaultSelector(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.May, 10, 9, 0, 0, 0, time.UTC)
	repo := &stubMatchRepository{
		items: []match.Match{
			{ID: "m1", Round: 1, KickoffAt: now.Add(-3 * 24 * time.Hour), Status: match.StatusFinished},
			{ID: "m2", Round: 2, KickoffAt: now.Add(26 * time.Hour), Status: match.StatusScheduled},
		},
	}

	service := NewMatchService(repo)
	service.now = func() time.Time { return now }

	got, err := service.ListRound(context.Background(), "")
	if err != nil {
		t.Fatalf("ListRound error: %v", err)
	}
	if got.Round != 2 || !got.Determined {
		t.Fatalf("expected determined round 2, got %+v", got)
	}
	if len(got.Matches) != 1 || got.Matches[0].ID != "m2" {
		t.Fatalf("unexpected matches: %+v", got.Matches)
	}
}

func TestMatchService_ListRound_ExplicitSelector(t *testing.T) {
	t.Parallel()

	repo := &stubMatchRepository{
		items: []match.Match{
			{ID: "m1", Round: 3, Status: match.StatusScheduled},
			{ID: "m2", Round: 4, Status: match.StatusScheduled},
		},
	}

	service := NewMatchService(repo)

	got, err := service.ListRound(context.Background(), "3")
	if err != nil {
		t.Fatalf("ListRound error: %v", err)
	}
	if got.Round != 3 || got.Determined {
		t.Fatalf("expected requested round 3, got %+v", got)
	}
	if len(got.Matches) != 1 || got.Matches[0].ID != "m1" {
		t.Fatalf("unexpected matches: %+v", got.Matches)
	}
}

func TestMatchService_ListRound_AllSelectorReturnsFullSchedule(t *testing.T) {
	t.Parallel()

	repo := &stubMatchRepository{
		items: []match.Match{
			{ID: "m1", Round: 1, Status: match.StatusFinished},
			{ID: "m2", Round: 2, Status: match.StatusScheduled},
		},
	}
	service := NewMatchService(repo)

	got, err := service.ListRound(context.Background(), "all")
	if err != nil {
		t.Fatalf("ListRound error: %v", err)
	}
	if got.Round != 0 || got.Determined {
		t.Fatalf("aggregate listing carries no single round: %+v", got)
	}
	if len(got.Matches) != 2 {
		t.Fatalf("expected the full schedule, got %d matches", len(got.Matches))
	}
}

func TestMatchService_ListRound_RejectsBadSelector(t *testing.T) {
	t.Parallel()

	service := NewMatchService(&stubMatchRepository{})

	for _, selector := range []string{"abc", "0", "-1"} {
		if _, err := service.ListRound(context.Background(), selector); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("selector %q: expected ErrInvalidInput, got %v", selector, err)
		}
	}
}

func TestMatchService_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	service := NewMatchService(&stubMatchRepository{})

	if _, err := service.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
