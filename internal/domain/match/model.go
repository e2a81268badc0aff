package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
	StatusPostponed = "postponed"
)

// Match represents one scheduled or played fixture. Matches are written
// by an external ingestion collaborator and are read-only here.
type Match struct {
	ID        string
	APIRefID  int64
	HomeTeam  string
	AwayTeam  string
	HomeScore *int
	AwayScore *int
	KickoffAt time.Time
	Round     int
	Season    string
	Status    string
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "ft", "aet", "pen":
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "in_play", "ht", "1h", "2h", "et":
		return true
	default:
		return false
	}
}

func IsPostponedLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPostponed, "cancelled", "abandoned":
		return true
	default:
		return false
	}
}
