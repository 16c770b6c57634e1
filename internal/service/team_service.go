package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"questhunt/internal/cache"
	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// TeamService handles admin-side team lifecycle: creation with a task queue
// snapshot, reshuffles, and cascading deletes.
type TeamService struct {
	teams       repository.TeamRepo
	tasks       repository.TaskRepo
	submissions repository.SubmissionRepo
	questSubs   repository.SideQuestSubmissionRepo
	configSvc   *ConfigService
	leaderboard cache.LeaderboardCache
	clock       clockwork.Clock
}

// NewTeamService creates a new team service.
func NewTeamService(
	teams repository.TeamRepo,
	tasks repository.TaskRepo,
	submissions repository.SubmissionRepo,
	questSubs repository.SideQuestSubmissionRepo,
	configSvc *ConfigService,
	leaderboard cache.LeaderboardCache,
	clock clockwork.Clock,
) *TeamService {
	return &TeamService{
		teams:       teams,
		tasks:       tasks,
		submissions: submissions,
		questSubs:   questSubs,
		configSvc:   configSvc,
		leaderboard: leaderboard,
		clock:       clock,
	}
}

// List returns all non-admin teams.
func (s *TeamService) List(ctx context.Context) ([]*model.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}

// Create creates a team with a task queue snapshotted from the currently
// active tasks, shuffled when the config says so.
func (s *TeamService) Create(ctx context.Context, name, password string) (*model.Team, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", ErrValidation)
	}
	if len(password) < 4 {
		return nil, fmt.Errorf("%w: password must be at least 4 characters", ErrValidation)
	}

	queue, err := s.buildQueue(ctx, true)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	team := &model.Team{
		Name:         trimmed,
		PasswordHash: hash,
		AvatarColor:  "#00f0ff",
		Role:         model.RoleTeam,
		TaskQueue:    queue,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.teams.Create(ctx, team); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: team name already taken", ErrConflict)
		}
		return nil, fmt.Errorf("creating team: %w", err)
	}
	return team, nil
}

// GeneratedTeam pairs a created team with its one-time plaintext password.
type GeneratedTeam struct {
	Team     *model.Team `json:"team"`
	Password string      `json:"password"`
}

// BulkCreate generates count teams named prefix-1..count with random
// passwords. The passwords are returned once and never stored in plaintext.
func (s *TeamService) BulkCreate(ctx context.Context, prefix string, count int) ([]GeneratedTeam, error) {
	if count < 1 || count > 100 {
		return nil, fmt.Errorf("%w: count must be between 1 and 100", ErrValidation)
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = "team"
	}

	generated := make([]GeneratedTeam, 0, count)
	for i := 1; i <= count; i++ {
		name := fmt.Sprintf("%s-%d", strings.TrimSpace(prefix), i)
		password := uuid.NewString()[:8]

		team, err := s.Create(ctx, name, password)
		if err != nil {
			if errors.Is(err, ErrConflict) {
				continue // name taken, keep the rest of the batch
			}
			return nil, err
		}
		generated = append(generated, GeneratedTeam{Team: team, Password: password})
	}
	return generated, nil
}

// Reshuffle regenerates a team's queue from the current active tasks. Unlike
// creation this always shuffles; it is the admin's explicit re-deal.
func (s *TeamService) Reshuffle(ctx context.Context, teamID string) (*model.Team, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up team: %w", err)
	}

	queue, err := s.buildQueue(ctx, false)
	if err != nil {
		return nil, err
	}
	shuffle(queue)

	team.TaskQueue = queue
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("updating team: %w", err)
	}
	return team, nil
}

// Delete removes a team and everything it submitted. Admin accounts cannot
// be deleted.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("looking up team: %w", err)
	}
	if team.Role == model.RoleAdmin {
		return fmt.Errorf("%w: cannot delete admin account", ErrForbidden)
	}

	if err := s.submissions.DeleteByTeam(ctx, teamID); err != nil {
		return fmt.Errorf("deleting submissions: %w", err)
	}
	if err := s.questSubs.DeleteByTeam(ctx, teamID); err != nil {
		return fmt.Errorf("deleting side quest submissions: %w", err)
	}
	if err := s.teams.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	_ = s.leaderboard.Invalidate(ctx)
	return nil
}

// buildQueue snapshots the active task IDs in display order, shuffling when
// honorConfig is set and the config asks for it.
func (s *TeamService) buildQueue(ctx context.Context, honorConfig bool) ([]string, error) {
	tasks, err := s.tasks.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active tasks: %w", err)
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	if honorConfig {
		cfg, err := s.configSvc.Get(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.ShuffleTaskOrder {
			shuffle(ids)
		}
	}
	return ids, nil
}

func shuffle(ids []string) {
	rand.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
