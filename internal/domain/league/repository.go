package league

import "context"

type Repository interface {
	Create(ctx context.Context, item League) (League, error)
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByCode(ctx context.Context, code string) (League, bool, error)
	ListByUser(ctx context.Context, userID string) ([]League, error)
	Update(ctx context.Context, item League) error
	Delete(ctx context.Context, leagueID string) error

	AddMember(ctx context.Context, member Member) error
	RemoveMember(ctx context.Context, leagueID, userID string) error
	IsMember(ctx context.Context, leagueID, userID string) (bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
}
