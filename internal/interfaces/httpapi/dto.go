package httpapi

import (
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/bet"
	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/match"
	"github.com/palpiteiro/prediction-league/internal/domain/ranking"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	"github.com/palpiteiro/prediction-league/internal/usecase"
)

type matchDTO struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	KickoffAt time.Time `json:"kickoff_at"`
	Round     int       `json:"round"`
	Season    string    `json:"season,omitempty"`
	Status    string    `json:"status"`
}

func matchToDTO(item match.Match) matchDTO {
	return matchDTO{
		ID:        item.ID,
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		KickoffAt: item.KickoffAt,
		Round:     item.Round,
		Season:    item.Season,
		Status:    match.NormalizeStatus(item.Status),
	}
}

type roundMatchesDTO struct {
	Round           int        `json:"round,omitempty"`
	DeterminedRound bool       `json:"determined_round,omitempty"`
	Matches         []matchDTO `json:"matches"`
}

func roundMatchesToDTO(item usecase.RoundMatches) roundMatchesDTO {
	matches := make([]matchDTO, 0, len(item.Matches))
	for _, m := range item.Matches {
		matches = append(matches, matchToDTO(m))
	}
	return roundMatchesDTO{
		Round:           item.Round,
		DeterminedRound: item.Determined,
		Matches:         matches,
	}
}

type rankingEntryDTO struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	TotalPoints    int    `json:"total_points"`
	ExactScores    int    `json:"exact_scores"`
	TotalBets      int    `json:"total_bets"`
	CorrectResults int    `json:"correct_results"`
	RoundsWon      int    `json:"rounds_won,omitempty"`
	RoundsTied     int    `json:"rounds_tied,omitempty"`
	WonRounds      []int  `json:"won_rounds,omitempty"`
	TiedRounds     []int  `json:"tied_rounds,omitempty"`
}

func rankingEntryToDTO(item ranking.Entry) rankingEntryDTO {
	return rankingEntryDTO{
		Rank:           item.Rank,
		UserID:         item.UserID,
		UserName:       item.UserName,
		TotalPoints:    item.TotalPoints,
		ExactScores:    item.ExactScores,
		TotalBets:      item.TotalBets,
		CorrectResults: item.CorrectResults,
		RoundsWon:      item.RoundsWon,
		RoundsTied:     item.RoundsTied,
		WonRounds:      item.WonRounds,
		TiedRounds:     item.TiedRounds,
	}
}

type leaderboardDTO struct {
	LeagueID        string            `json:"league_id"`
	Round           string            `json:"round"`
	DeterminedRound bool              `json:"determined_round,omitempty"`
	Entries         []rankingEntryDTO `json:"entries"`
}

func leaderboardToDTO(item usecase.Leaderboard) leaderboardDTO {
	entries := make([]rankingEntryDTO, 0, len(item.Entries))
	for _, entry := range item.Entries {
		entries = append(entries, rankingEntryToDTO(entry))
	}
	return leaderboardDTO{
		LeagueID:        item.LeagueID,
		Round:           item.Scope.String(),
		DeterminedRound: item.Determined,
		Entries:         entries,
	}
}

type leagueDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"code"`
	CreatedBy   string    `json:"created_by"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

func leagueToDTO(item league.League) leagueDTO {
	return leagueDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Code:        item.Code,
		CreatedBy:   item.CreatedBy,
		IsPublic:    item.IsPublic,
		CreatedAt:   item.CreatedAt,
	}
}

func leaguesToDTO(items []league.League) []leagueDTO {
	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	return out
}

type memberStatsDTO struct {
	TotalPoints    int `json:"total_points"`
	ExactScores    int `json:"exact_scores"`
	TotalBets      int `json:"total_bets"`
	CorrectResults int `json:"correct_results"`
	RoundsWon      int `json:"rounds_won"`
	RoundsTied     int `json:"rounds_tied"`
}

type memberDTO struct {
	UserID   string         `json:"user_id"`
	UserName string         `json:"user_name"`
	JoinedAt time.Time      `json:"joined_at"`
	Stats    memberStatsDTO `json:"stats"`
}

func memberToDTO(item usecase.MemberWithStats) memberDTO {
	return memberDTO{
		UserID:   item.Member.UserID,
		UserName: item.Member.UserName,
		JoinedAt: item.Member.JoinedAt,
		Stats:    memberStatsToDTO(item.Stats),
	}
}

func memberStatsToDTO(item stats.UserStats) memberStatsDTO {
	return memberStatsDTO{
		TotalPoints:    item.TotalPoints,
		ExactScores:    item.ExactScores,
		TotalBets:      item.TotalBets,
		CorrectResults: item.CorrectResults,
		RoundsWon:      item.RoundsWon,
		RoundsTied:     item.RoundsTied,
	}
}

type betDTO struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	LeagueID  string    `json:"league_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Points    *int      `json:"points"`
	IsExact   *bool     `json:"is_exact"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func betToDTO(item bet.Bet) betDTO {
	return betDTO{
		ID:        item.ID,
		MatchID:   item.MatchID,
		LeagueID:  item.LeagueID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		Points:    item.Points,
		IsExact:   item.IsExact,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func betsToDTO(items []bet.Bet) []betDTO {
	out := make([]betDTO, 0, len(items))
	for _, item := range items {
		out = append(out, betToDTO(item))
	}
	return out
}

type leagueBetDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	LeagueID  string    `json:"league_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Points    *int      `json:"points"`
	IsExact   *bool     `json:"is_exact"`
	CreatedAt time.Time `json:"created_at"`
	Match     matchDTO  `json:"match"`
}

type leagueBetsDTO struct {
	LeagueID        string         `json:"league_id"`
	Round           string         `json:"round"`
	DeterminedRound bool           `json:"determined_round,omitempty"`
	Bets            []leagueBetDTO `json:"bets"`
}

func leagueBetsToDTO(item usecase.LeagueBets) leagueBetsDTO {
	bets := make([]leagueBetDTO, 0, len(item.Bets))
	for _, row := range item.Bets {
		bets = append(bets, leagueBetDTO{
			ID:        row.Bet.ID,
			UserID:    row.Bet.UserID,
			UserName:  row.UserName,
			LeagueID:  row.Bet.LeagueID,
			HomeScore: row.Bet.HomeScore,
			AwayScore: row.Bet.AwayScore,
			Points:    row.Bet.Points,
			IsExact:   row.Bet.IsExact,
			CreatedAt: row.Bet.CreatedAt,
			Match:     matchToDTO(row.Match),
		})
	}
	return leagueBetsDTO{
		LeagueID:        item.LeagueID,
		Round:           item.Scope.String(),
		DeterminedRound: item.Determined,
		Bets:            bets,
	}
}
