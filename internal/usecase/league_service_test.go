package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	"github.com/palpiteiro/prediction-league/internal/domain/user"
)

type fixedStatsProvider struct {
	rows map[string][]stats.UserStats
}

func (p *fixedStatsProvider) ListByLeague(_ context.Context, leagueID string) ([]stats.UserStats, error) {
	return p.rows[leagueID], nil
}

func TestLeagueService_Create_AddsCreatorAsMember(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{}
	service := NewLeagueService(repo, nil, &sequenceIDGenerator{})

	got, err := service.Create(context.Background(), CreateLeagueInput{
		Principal: user.Principal{UserID: "alice", Name: "Alice", Email: "alice@example.com"},
		Name:      "Friends League",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "id-0001" || got.CreatedBy != "alice" {
		t.Fatalf("unexpected league: %+v", got)
	}
	if len(got.Code) != joinCodeLength {
		t.Fatalf("expected a %d-char join code, got %q", joinCodeLength, got.Code)
	}

	isMember, err := repo.IsMember(context.Background(), got.ID, "alice")
	if err != nil || !isMember {
		t.Fatalf("creator must join automatically: member=%v err=%v", isMember, err)
	}
}

func TestLeagueService_JoinByCode_NormalizesCode(t *testing.T) {
	t.Parallel()

	item := league.League{ID: "l1", Name: "Friends League", Code: "ABCD2345"}
	repo := &stubLeagueRepository{
		byID:   map[string]league.League{"l1": item},
		byCode: map[string]league.League{"ABCD2345": item},
	}
	service := NewLeagueService(repo, nil, &sequenceIDGenerator{})

	got, err := service.JoinByCode(context.Background(), user.Principal{UserID: "bruno", Name: "Bruno"}, " abcd2345 ")
	if err != nil {
		t.Fatalf("JoinByCode error: %v", err)
	}
	if got.ID != "l1" {
		t.Fatalf("unexpected league: %+v", got)
	}

	isMember, _ := repo.IsMember(context.Background(), "l1", "bruno")
	if !isMember {
		t.Fatalf("join must add membership")
	}
}

func TestLeagueService_JoinByCode_DuplicateJoin(t *testing.T) {
	t.Parallel()

	item := league.League{ID: "l1", Code: "ABCD2345"}
	repo := &stubLeagueRepository{
		byID:   map[string]league.League{"l1": item},
		byCode: map[string]league.League{"ABCD2345": item},
		members: map[string]map[string]league.Member{
			"l1": {"bruno": {LeagueID: "l1", UserID: "bruno"}},
		},
	}
	service := NewLeagueService(repo, nil, &sequenceIDGenerator{})

	_, err := service.JoinByCode(context.Background(), user.Principal{UserID: "bruno"}, "ABCD2345")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate join, got %v", err)
	}
}

func TestLeagueService_Update_CreatorOnly(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{
		byID: map[string]league.League{"l1": {ID: "l1", Name: "Old", CreatedBy: "alice"}},
	}
	service := NewLeagueService(repo, nil, &sequenceIDGenerator{})

	_, err := service.Update(context.Background(), UpdateLeagueInput{
		Principal: user.Principal{UserID: "bruno"},
		LeagueID:  "l1",
		Name:      "New",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-creator, got %v", err)
	}

	got, err := service.Update(context.Background(), UpdateLeagueInput{
		Principal: user.Principal{UserID: "alice"},
		LeagueID:  "l1",
		Name:      "New",
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Name != "New" {
		t.Fatalf("unexpected league after update: %+v", got)
	}
}

func TestLeagueService_Leave_CreatorCannotLeave(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{
		byID: map[string]league.League{"l1": {ID: "l1", CreatedBy: "alice"}},
		members: map[string]map[string]league.Member{
			"l1": {
				"alice": {LeagueID: "l1", UserID: "alice"},
				"bruno": {LeagueID: "l1", UserID: "bruno"},
			},
		},
	}
	service := NewLeagueService(repo, nil, &sequenceIDGenerator{})

	if err := service.Leave(context.Background(), "alice", "l1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for creator leave, got %v", err)
	}
	if err := service.Leave(context.Background(), "bruno", "l1"); err != nil {
		t.Fatalf("Leave error: %v", err)
	}

	isMember, _ := repo.IsMember(context.Background(), "l1", "bruno")
	if isMember {
		t.Fatalf("leave must remove membership")
	}
}

func TestLeagueService_Get_PrivateLeagueRequiresMembership(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{
		byID: map[string]league.League{
			"private": {ID: "private", CreatedBy: "alice"},
			"public":  {ID: "public", CreatedBy: "alice", IsPublic: true},
		},
		members: map[string]map[string]league.Member{
			"private": {"alice": {LeagueID: "private", UserID: "alice"}},
		},
	}
	service := NewLeagueService(repo, nil, &sequenceIDGenerator{})

	if _, err := service.Get(context.Background(), "bruno", "private"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for private league, got %v", err)
	}
	if _, err := service.Get(context.Background(), "bruno", "public"); err != nil {
		t.Fatalf("public league must be visible: %v", err)
	}
}

func TestLeagueService_ListMembers_MergesStats(t *testing.T) {
	t.Parallel()

	repo := &stubLeagueRepository{
		byID: map[string]league.League{"l1": {ID: "l1", CreatedBy: "alice"}},
		members: map[string]map[string]league.Member{
			"l1": {
				"alice": {LeagueID: "l1", UserID: "alice", UserName: "Alice"},
				"bruno": {LeagueID: "l1", UserID: "bruno", UserName: "Bruno"},
			},
		},
	}
	provider := &fixedStatsProvider{
		rows: map[string][]stats.UserStats{
			"l1": {{LeagueID: "l1", UserID: "alice", TotalPoints: 12, RoundsWon: 2}},
		},
	}
	service := NewLeagueService(repo, provider, &sequenceIDGenerator{})

	got, err := service.ListMembers(context.Background(), "alice", "l1")
	if err != nil {
		t.Fatalf("ListMembers error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 members, got %d", len(got))
	}
	if got[0].Member.UserID != "alice" || got[0].Stats.TotalPoints != 12 {
		t.Fatalf("alice must carry her stats: %+v", got[0])
	}
	if got[1].Member.UserID != "bruno" || got[1].Stats.TotalBets != 0 {
		t.Fatalf("bruno has no bets yet and gets zero stats: %+v", got[1])
	}
}
