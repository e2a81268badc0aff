package league

import "time"

// League is a private or public group of users competing on the same
// set of matches.
type League struct {
	ID          string
	Name        string
	Description string
	Code        string
	CreatedBy   string
	IsPublic    bool
	CreatedAt   time.Time
}

type Member struct {
	LeagueID  string
	UserID    string
	UserName  string
	UserEmail string
	JoinedAt  time.Time
}
