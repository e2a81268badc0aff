package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/palpiteiro/prediction-league/internal/domain/league"
	"github.com/palpiteiro/prediction-league/internal/domain/stats"
	"github.com/palpiteiro/prediction-league/internal/domain/user"
	idgen "github.com/palpiteiro/prediction-league/internal/platform/id"
)

const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const joinCodeLength = 8

type CreateLeagueInput struct {
	Principal   user.Principal
	Name        string
	Description string
	IsPublic    bool
}

type UpdateLeagueInput struct {
	Principal   user.Principal
	LeagueID    string
	Name        string
	Description string
}

// MemberWithStats pairs a league member with their cached totals. Stats
// are zero-valued for members who have not placed a bet yet.
type MemberWithStats struct {
	Member league.Member
	Stats  stats.UserStats
}

type memberStatsProvider interface {
	ListByLeague(ctx context.Context, leagueID string) ([]stats.UserStats, error)
}

type LeagueService struct {
	leagueRepo league.Repository
	stats      memberStatsProvider
	idGen      idgen.Generator
	now        func() time.Time
}

func NewLeagueService(leagueRepo league.Repository, statsProvider memberStatsProvider, idGen idgen.Generator) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		stats:      statsProvider,
		idGen:      idGen,
		now:        time.Now,
	}
}

func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Principal.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	code, err := generateJoinCode(joinCodeLength)
	if err != nil {
		return league.League{}, fmt.Errorf("generate join code: %w", err)
	}

	item := league.League{
		ID:          leagueID,
		Name:        input.Name,
		Description: input.Description,
		Code:        code,
		CreatedBy:   input.Principal.UserID,
		IsPublic:    input.IsPublic,
		CreatedAt:   s.now().UTC(),
	}

	created, err := s.leagueRepo.Create(ctx, item)
	if err != nil {
		if isDuplicateConstraintError(err) {
			return league.League{}, fmt.Errorf("%w: duplicate league name or join code", ErrInvalidInput)
		}
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	if err := s.addMember(ctx, created.ID, input.Principal); err != nil {
		return league.League{}, err
	}

	return created, nil
}

func (s *LeagueService) Get(ctx context.Context, userID, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	if !item.IsPublic {
		isMember, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
		if err != nil {
			return league.League{}, fmt.Errorf("check league member: %w", err)
		}
		if !isMember {
			return league.League{}, fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
		}
	}

	return item, nil
}

func (s *LeagueService) ListMine(ctx context.Context, userID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.leagueRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by user: %w", err)
	}

	return items, nil
}

func (s *LeagueService) JoinByCode(ctx context.Context, principal user.Principal, code string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByCode")
	defer span.End()

	code = strings.ToUpper(strings.TrimSpace(code))
	if principal.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if code == "" {
		return league.League{}, fmt.Errorf("%w: join code is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByCode(ctx, code)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by code: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: join code not found", ErrNotFound)
	}

	if err := s.addMember(ctx, item.ID, principal); err != nil {
		return league.League{}, err
	}

	return item, nil
}

func (s *LeagueService) Update(ctx context.Context, input UpdateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Update")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Principal.UserID == "" {
		return league.League{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: league name is required", ErrInvalidInput)
	}

	item, err := s.requireCreator(ctx, input.LeagueID, input.Principal.UserID)
	if err != nil {
		return league.League{}, err
	}

	item.Name = input.Name
	item.Description = input.Description
	if err := s.leagueRepo.Update(ctx, item); err != nil {
		if isDuplicateConstraintError(err) {
			return league.League{}, fmt.Errorf("%w: duplicate league name", ErrInvalidInput)
		}
		return league.League{}, fmt.Errorf("update league: %w", err)
	}

	return item, nil
}

func (s *LeagueService) Delete(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Delete")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, err := s.requireCreator(ctx, leagueID, userID); err != nil {
		return err
	}

	if err := s.leagueRepo.Delete(ctx, leagueID); err != nil {
		return fmt.Errorf("delete league: %w", err)
	}

	return nil
}

func (s *LeagueService) Leave(ctx context.Context, userID, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Leave")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if item.CreatedBy == userID {
		return fmt.Errorf("%w: the league creator cannot leave, delete the league instead", ErrInvalidInput)
	}

	isMember, err := s.leagueRepo.IsMember(ctx, leagueID, userID)
	if err != nil {
		return fmt.Errorf("check league member: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: you are not a member of this league", ErrUnauthorized)
	}

	if err := s.leagueRepo.RemoveMember(ctx, leagueID, userID); err != nil {
		return fmt.Errorf("remove league member: %w", err)
	}

	return nil
}

// ListMembers returns the league roster with each member's cached
// totals, refreshing the stats side table first when it is stale.
func (s *LeagueService) ListMembers(ctx context.Context, userID, leagueID string) ([]MemberWithStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	if _, err := s.Get(ctx, userID, leagueID); err != nil {
		return nil, err
	}

	members, err := s.leagueRepo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	statsByUser := make(map[string]stats.UserStats)
	if s.stats != nil {
		rows, err := s.stats.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, fmt.Errorf("list member stats: %w", err)
		}
		for _, row := range rows {
			statsByUser[row.UserID] = row
		}
	}

	items := make([]MemberWithStats, 0, len(members))
	for _, member := range members {
		item := MemberWithStats{Member: member}
		if row, ok := statsByUser[member.UserID]; ok {
			item.Stats = row
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *LeagueService) requireCreator(ctx context.Context, leagueID, userID string) (league.League, error) {
	item, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if item.CreatedBy != userID {
		return league.League{}, fmt.Errorf("%w: only the league creator may do this", ErrUnauthorized)
	}
	return item, nil
}

func (s *LeagueService) addMember(ctx context.Context, leagueID string, principal user.Principal) error {
	isMember, err := s.leagueRepo.IsMember(ctx, leagueID, principal.UserID)
	if err != nil {
		return fmt.Errorf("check league member: %w", err)
	}
	if isMember {
		return fmt.Errorf("%w: you already joined this league", ErrInvalidInput)
	}

	member := league.Member{
		LeagueID:  leagueID,
		UserID:    principal.UserID,
		UserName:  principal.Name,
		UserEmail: principal.Email,
		JoinedAt:  s.now().UTC(),
	}
	if err := s.leagueRepo.AddMember(ctx, member); err != nil {
		if isDuplicateConstraintError(err) {
			return fmt.Errorf("%w: you already joined this league", ErrInvalidInput)
		}
		return fmt.Errorf("add league member: %w", err)
	}
	return nil
}

func generateJoinCode(length int) (string, error) {
	if length < 6 {
		length = 6
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes for join code: %w", err)
	}

	out := make([]byte, length)
	for i, b := range buf {
		out[i] = joinCodeAlphabet[int(b)%len(joinCodeAlphabet)]
	}
	return string(out), nil
}

func isDuplicateConstraintError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "duplicate key value violates unique constraint")
}
