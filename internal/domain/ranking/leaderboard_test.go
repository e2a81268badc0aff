package ranking

import (
	"reflect"
	"testing"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
)

func TestComputeLeaderboard_CompetitionRankingLeavesGaps(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("alice", 1, 10, true),
		scoredBet("bruno", 1, 10, true),
		scoredBet("carla", 1, 7, false),
	}

	got := ComputeLeaderboard(rows, SingleRound(1))
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	if got[0].UserID != "alice" || got[0].Rank != 1 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].UserID != "bruno" || got[1].Rank != 1 {
		t.Fatalf("tied entry must share rank 1: %+v", got[1])
	}
	if got[2].UserID != "carla" || got[2].Rank != 3 {
		t.Fatalf("rank after a two-way tie must be 3, not 2: %+v", got[2])
	}
}

func TestComputeLeaderboard_ExactScoresBreakPointTies(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("alice", 1, 3, false),
		scoredBet("alice", 1, 1, false),
		scoredBet("bruno", 1, 3, true),
		scoredBet("bruno", 1, 1, false),
	}

	got := ComputeLeaderboard(rows, SingleRound(1))
	if got[0].UserID != "bruno" || got[0].Rank != 1 {
		t.Fatalf("exact score must win the tie-break: %+v", got[0])
	}
	if got[1].UserID != "alice" || got[1].Rank != 2 {
		t.Fatalf("expected alice at rank 2: %+v", got[1])
	}
}

func TestComputeLeaderboard_UnsettledBetsCountTowardTotalBets(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("alice", 1, 3, true),
		pendingBet("alice", 2),
	}

	got := ComputeLeaderboard(rows, AllRounds())
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	entry := got[0]
	if entry.TotalPoints != 3 || entry.TotalBets != 2 || entry.CorrectResults != 1 || entry.ExactScores != 1 {
		t.Fatalf("unsettled bet must count as a bet only: %+v", entry)
	}
}

func TestComputeLeaderboard_UserWithoutBetsIsAbsent(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("alice", 1, 3, false),
	}

	for _, scope := range []Scope{AllRounds(), SingleRound(1), SingleRound(2)} {
		got := ComputeLeaderboard(rows, scope)
		for _, entry := range got {
			if entry.UserID == "dora" {
				t.Fatalf("scope %s: user without bets must not appear", scope)
			}
		}
	}
}

func TestComputeLeaderboard_SingleRoundScopeFiltersRows(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("alice", 1, 3, false),
		scoredBet("alice", 2, 1, false),
		scoredBet("bruno", 2, 3, false),
	}

	got := ComputeLeaderboard(rows, SingleRound(2))
	if len(got) != 2 {
		t.Fatalf("expected 2 entries in round 2, got %d", len(got))
	}
	if got[0].UserID != "bruno" || got[0].TotalPoints != 3 {
		t.Fatalf("unexpected round-2 leader: %+v", got[0])
	}
	if got[1].UserID != "alice" || got[1].TotalPoints != 1 {
		t.Fatalf("round-1 points must not leak into round 2: %+v", got[1])
	}
}

func TestComputeLeaderboard_RoundsWonAndTied(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		// Round 1: alice and bruno share the round maximum.
		scoredBet("alice", 1, 3, true),
		scoredBet("bruno", 1, 3, true),
		scoredBet("carla", 1, 1, false),
		// Round 2: alice wins outright.
		scoredBet("alice", 2, 3, true),
		scoredBet("bruno", 2, 1, false),
		scoredBet("carla", 2, 0, false),
	}

	got := ComputeLeaderboard(rows, AllRounds())
	byUser := entriesByUser(got)

	alice := byUser["alice"]
	if alice.RoundsWon != 1 || alice.RoundsTied != 1 {
		t.Fatalf("alice: want 1 win and 1 tie, got %+v", alice)
	}
	if !reflect.DeepEqual(alice.WonRounds, []int{2}) || !reflect.DeepEqual(alice.TiedRounds, []int{1}) {
		t.Fatalf("alice round lists wrong: %+v", alice)
	}

	bruno := byUser["bruno"]
	if bruno.RoundsWon != 0 || bruno.RoundsTied != 1 {
		t.Fatalf("bruno: want 0 wins and 1 tie, got %+v", bruno)
	}

	carla := byUser["carla"]
	if carla.RoundsWon != 0 || carla.RoundsTied != 0 {
		t.Fatalf("carla: want no round credit, got %+v", carla)
	}
}

func TestComputeLeaderboard_RoundCreditIgnoredForSingleRoundScope(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("alice", 1, 3, true),
		scoredBet("bruno", 1, 1, false),
	}

	got := ComputeLeaderboard(rows, SingleRound(1))
	if got[0].RoundsWon != 0 || got[0].WonRounds != nil {
		t.Fatalf("single-round scope must not derive round credit: %+v", got[0])
	}
}

func TestComputeLeaderboard_Idempotent(t *testing.T) {
	t.Parallel()

	rows := []bet.LeaderboardRow{
		scoredBet("zoe", 1, 3, false),
		scoredBet("yuri", 1, 3, false),
		scoredBet("alice", 1, 3, false),
		scoredBet("alice", 2, 1, false),
	}

	first := ComputeLeaderboard(rows, AllRounds())
	second := ComputeLeaderboard(rows, AllRounds())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated computation diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	// Fully tied users order deterministically by name.
	if first[0].UserID != "alice" && first[0].UserName != "alice" {
		t.Fatalf("expected name-ordered ties, got %+v", first)
	}
}

func TestComputeLeaderboard_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := ComputeLeaderboard(nil, AllRounds()); len(got) != 0 {
		t.Fatalf("expected empty leaderboard, got %+v", got)
	}
}

func scoredBet(userID string, round, points int, exact bool) bet.LeaderboardRow {
	p := points
	e := exact
	return bet.LeaderboardRow{
		UserID:   userID,
		UserName: userID,
		Round:    round,
		Points:   &p,
		IsExact:  &e,
	}
}

func pendingBet(userID string, round int) bet.LeaderboardRow {
	return bet.LeaderboardRow{
		UserID:   userID,
		UserName: userID,
		Round:    round,
	}
}

func entriesByUser(entries []Entry) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		out[entry.UserID] = entry
	}
	return out
}
