package ranking

import (
	"sort"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
)

// ComputeLeaderboard aggregates scored bets into an ordered, ranked
// leaderboard. Rows are grouped per user; users without an in-scope bet
// do not appear. For the aggregate scope every round with at least one
// bet is additionally re-ranked on its own to credit round wins and
// ties, since those can never be read off the aggregate totals.
func ComputeLeaderboard(rows []bet.LeaderboardRow, scope Scope) []Entry {
	inScope := rows
	if !scope.All {
		inScope = filterRound(rows, scope.Round)
	}

	entries := aggregate(inScope)
	sortEntries(entries)
	assignRanks(entries)

	if scope.All {
		creditRoundResults(rows, entries)
	}

	return entries
}

func filterRound(rows []bet.LeaderboardRow, round int) []bet.LeaderboardRow {
	out := make([]bet.LeaderboardRow, 0, len(rows))
	for _, row := range rows {
		if row.Round == round {
			out = append(out, row)
		}
	}
	return out
}

func aggregate(rows []bet.LeaderboardRow) []Entry {
	byUser := make(map[string]*Entry)
	order := make([]string, 0)

	for _, row := range rows {
		entry, ok := byUser[row.UserID]
		if !ok {
			entry = &Entry{UserID: row.UserID, UserName: row.UserName}
			byUser[row.UserID] = entry
			order = append(order, row.UserID)
		}

		entry.TotalBets++
		if row.Points != nil {
			// A nil Points row belongs to an unsettled match: it counts
			// as a bet but contributes nothing to the totals yet.
			entry.TotalPoints += *row.Points
			if *row.Points > 0 {
				entry.CorrectResults++
			}
		}
		if row.IsExact != nil && *row.IsExact {
			entry.ExactScores++
		}
	}

	out := make([]Entry, 0, len(order))
	for _, userID := range order {
		out = append(out, *byUser[userID])
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].ExactScores != entries[j].ExactScores {
			return entries[i].ExactScores > entries[j].ExactScores
		}
		if entries[i].UserName != entries[j].UserName {
			return entries[i].UserName < entries[j].UserName
		}
		return entries[i].UserID < entries[j].UserID
	})
}

// assignRanks applies competition ranking: tied entries share the rank
// of the tie group's first member, and the next distinct pair resumes
// at its true 1-based position, leaving a gap after the group.
func assignRanks(entries []Entry) {
	for i := range entries {
		if i == 0 {
			entries[i].Rank = 1
			continue
		}
		if entries[i].TotalPoints != entries[i-1].TotalPoints ||
			entries[i].ExactScores != entries[i-1].ExactScores {
			entries[i].Rank = i + 1
		} else {
			entries[i].Rank = entries[i-1].Rank
		}
	}
}

func creditRoundResults(rows []bet.LeaderboardRow, entries []Entry) {
	byRound := make(map[int][]bet.LeaderboardRow)
	rounds := make([]int, 0)
	for _, row := range rows {
		if _, ok := byRound[row.Round]; !ok {
			rounds = append(rounds, row.Round)
		}
		byRound[row.Round] = append(byRound[row.Round], row)
	}
	sort.Ints(rounds)

	won := make(map[string][]int)
	tied := make(map[string][]int)
	for _, round := range rounds {
		roundEntries := aggregate(byRound[round])
		sortEntries(roundEntries)
		assignRanks(roundEntries)

		leaders := make([]string, 0, 2)
		for _, entry := range roundEntries {
			if entry.Rank != 1 {
				break
			}
			leaders = append(leaders, entry.UserID)
		}

		if len(leaders) == 1 {
			won[leaders[0]] = append(won[leaders[0]], round)
			continue
		}
		for _, userID := range leaders {
			tied[userID] = append(tied[userID], round)
		}
	}

	for i := range entries {
		entries[i].WonRounds = won[entries[i].UserID]
		entries[i].TiedRounds = tied[entries[i].UserID]
		entries[i].RoundsWon = len(entries[i].WonRounds)
		entries[i].RoundsTied = len(entries[i].TiedRounds)
	}
}
