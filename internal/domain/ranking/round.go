package ranking

import (
	"sort"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/match"
)

type roundState struct {
	startAt     time.Time
	allFinished bool
}

// ResolveDefaultRound picks the round to show when the caller did not
// request one. A round that starts today or tomorrow wins outright;
// otherwise the last fully finished round is shown until its successor
// actually kicks off. With no matches at all the first round is the
// only sensible default.
func ResolveDefaultRound(matches []match.Match, now time.Time) int {
	if len(matches) == 0 {
		return 1
	}

	byRound := make(map[int]*roundState)
	for _, m := range matches {
		state, ok := byRound[m.Round]
		if !ok {
			state = &roundState{startAt: m.KickoffAt, allFinished: true}
			byRound[m.Round] = state
		} else if m.KickoffAt.Before(state.startAt) {
			state.startAt = m.KickoffAt
		}
		if !match.IsFinishedStatus(m.Status) {
			state.allFinished = false
		}
	}

	rounds := make([]int, 0, len(byRound))
	for round := range byRound {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	today := truncateToDay(now)
	tomorrow := today.AddDate(0, 0, 1)

	// A round starting today or tomorrow takes priority, first match
	// in ascending round order wins.
	for _, round := range rounds {
		state := byRound[round]
		if state.allFinished {
			continue
		}
		start := truncateToDay(state.startAt.In(now.Location()))
		if start.Equal(today) || start.Equal(tomorrow) {
			return round
		}
	}

	lastFinished := 0
	for _, round := range rounds {
		if byRound[round].allFinished {
			lastFinished = round
		}
	}
	if lastFinished == 0 {
		return rounds[0]
	}

	// Round numbering may be non-contiguous; a missing successor is
	// the same as no next round.
	next, ok := byRound[lastFinished+1]
	if !ok || next.allFinished {
		return lastFinished
	}
	if !next.startAt.After(now) {
		return lastFinished + 1
	}

	return lastFinished
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
