package ranking

import (
	"fmt"
	"strconv"
	"strings"
)

// Scope selects either one round or the whole season to date.
type Scope struct {
	All   bool
	Round int
}

func AllRounds() Scope {
	return Scope{All: true}
}

func SingleRound(round int) Scope {
	return Scope{Round: round}
}

// ParseScope parses the HTTP round selector ("all" or a positive round
// number). The empty selector is the caller's cue to run the default
// round resolver and is rejected here.
func ParseScope(selector string) (Scope, error) {
	selector = strings.ToLower(strings.TrimSpace(selector))
	if selector == "" {
		return Scope{}, fmt.Errorf("round selector is empty")
	}
	if selector == "all" {
		return AllRounds(), nil
	}

	round, err := strconv.Atoi(selector)
	if err != nil {
		return Scope{}, fmt.Errorf("invalid round selector %q: %w", selector, err)
	}
	if round < 1 {
		return Scope{}, fmt.Errorf("round must be >= 1, got %d", round)
	}

	return SingleRound(round), nil
}

func (s Scope) String() string {
	if s.All {
		return "all"
	}
	return strconv.Itoa(s.Round)
}

// Entry is one leaderboard row. WonRounds/TiedRounds are populated for
// the aggregate scope only.
type Entry struct {
	UserID         string
	UserName       string
	TotalPoints    int
	ExactScores    int
	TotalBets      int
	CorrectResults int
	Rank           int
	RoundsWon      int
	RoundsTied     int
	WonRounds      []int
	TiedRounds     []int
}
