package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/palpiteiro/prediction-league/internal/domain/league"
)

type LeagueRepository struct {
	mu      sync.RWMutex
	items   map[string]league.League
	order   []string
	members map[string]map[string]league.Member
}

func NewLeagueRepository(leagues []league.League, members []league.Member) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	order := make([]string, 0, len(leagues))
	for _, l := range leagues {
		items[l.ID] = l
		order = append(order, l.ID)
	}

	byLeague := make(map[string]map[string]league.Member)
	for _, m := range members {
		if byLeague[m.LeagueID] == nil {
			byLeague[m.LeagueID] = make(map[string]league.Member)
		}
		byLeague[m.LeagueID][m.UserID] = m
	}

	return &LeagueRepository{
		items:   items,
		order:   order,
		members: byLeague,
	}
}

func (r *LeagueRepository) Create(_ context.Context, item league.League) (league.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	r.order = append(r.order, item.ID)

	return item, nil
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return item, true, nil
}

func (r *LeagueRepository) GetByCode(_ context.Context, code string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.items[id].Code == code {
			return r.items[id], true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) ListByUser(_ context.Context, userID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, id := range r.order {
		if _, ok := r.members[id][userID]; ok {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *LeagueRepository) Update(_ context.Context, item league.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; ok {
		r.items[item.ID] = item
	}

	return nil
}

func (r *LeagueRepository) Delete(_ context.Context, leagueID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, leagueID)
	delete(r.members, leagueID)
	for i, id := range r.order {
		if id == leagueID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *LeagueRepository) AddMember(_ context.Context, member league.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members[member.LeagueID] == nil {
		r.members[member.LeagueID] = make(map[string]league.Member)
	}
	r.members[member.LeagueID][member.UserID] = member

	return nil
}

func (r *LeagueRepository) RemoveMember(_ context.Context, leagueID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members[leagueID], userID)

	return nil
}

func (r *LeagueRepository) IsMember(_ context.Context, leagueID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.members[leagueID][userID]
	return ok, nil
}

func (r *LeagueRepository) ListMembers(_ context.Context, leagueID string) ([]league.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Member, 0, len(r.members[leagueID]))
	for _, member := range r.members[leagueID] {
		out = append(out, member)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})

	return out, nil
}

// MemberName resolves a member's display name for leaderboard rows.
func (r *LeagueRepository) MemberName(leagueID, userID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if member, ok := r.members[leagueID][userID]; ok {
		return member.UserName
	}
	return userID
}
