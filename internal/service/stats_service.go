package service

import (
	"context"
	"fmt"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// StatsService produces the admin dashboard overview counts.
type StatsService struct {
	teams       repository.TeamRepo
	tasks       repository.TaskRepo
	submissions repository.SubmissionRepo
}

// NewStatsService creates a new stats service.
func NewStatsService(teams repository.TeamRepo, tasks repository.TaskRepo, submissions repository.SubmissionRepo) *StatsService {
	return &StatsService{teams: teams, tasks: tasks, submissions: submissions}
}

func (s *StatsService) Overview(ctx context.Context) (*model.AdminStats, error) {
	teamCount, err := s.teams.CountByRole(ctx, model.RoleTeam)
	if err != nil {
		return nil, fmt.Errorf("counting teams: %w", err)
	}
	taskCount, err := s.tasks.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting tasks: %w", err)
	}
	total, err := s.submissions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting submissions: %w", err)
	}
	completed, err := s.submissions.CountByStatus(ctx, model.SubmissionCompleted)
	if err != nil {
		return nil, fmt.Errorf("counting completed: %w", err)
	}
	blocked, err := s.submissions.CountByStatus(ctx, model.SubmissionBlocked)
	if err != nil {
		return nil, fmt.Errorf("counting blocked: %w", err)
	}

	return &model.AdminStats{
		Teams:       teamCount,
		Tasks:       taskCount,
		Submissions: total,
		Completed:   completed,
		Blocked:     blocked,
		InProgress:  total - completed - blocked,
	}, nil
}
