package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"questhunt/internal/cache"
	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// TaskService handles the team-facing task list and the admin task CRUD.
type TaskService struct {
	tasks       repository.TaskRepo
	teams       repository.TeamRepo
	submissions repository.SubmissionRepo
	configSvc   *ConfigService
	leaderboard cache.LeaderboardCache
	clock       clockwork.Clock
}

// NewTaskService creates a new task service.
func NewTaskService(
	tasks repository.TaskRepo,
	teams repository.TeamRepo,
	submissions repository.SubmissionRepo,
	configSvc *ConfigService,
	leaderboard cache.LeaderboardCache,
	clock clockwork.Clock,
) *TaskService {
	return &TaskService{
		tasks:       tasks,
		teams:       teams,
		submissions: submissions,
		configSvc:   configSvc,
		leaderboard: leaderboard,
		clock:       clock,
	}
}

// ListForTeam returns active tasks in the team's queue order with the team's
// attempt status attached. The stored queue is a snapshot; tasks created
// after it are merged in at the end at read time and never written back.
func (s *TaskService) ListForTeam(ctx context.Context, teamID string) ([]model.TaskListItem, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up team: %w", err)
	}

	active, err := s.tasks.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	byID := make(map[string]*model.Task, len(active))
	for _, t := range active {
		byID[t.ID] = t
	}

	// Stored queue order first, skipping tasks that were deleted or
	// deactivated since the snapshot.
	ordered := make([]*model.Task, 0, len(active))
	seen := make(map[string]bool, len(active))
	for _, id := range team.TaskQueue {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
			seen[id] = true
		}
	}
	// Then anything active the queue has never heard of.
	for _, t := range active {
		if !seen[t.ID] {
			ordered = append(ordered, t)
		}
	}

	subs, err := s.submissions.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	subByTask := make(map[string]*model.Submission, len(subs))
	for _, sub := range subs {
		subByTask[sub.TaskID] = sub
	}

	items := make([]model.TaskListItem, len(ordered))
	for i, t := range ordered {
		item := model.TaskListItem{
			ID:           t.ID,
			Title:        t.Title,
			LocationHint: t.LocationHint,
			Points:       t.Points,
			Order:        t.Order,
			Status:       "not-started",
		}
		if sub, ok := subByTask[t.ID]; ok {
			item.Status = string(sub.Status)
			item.ElapsedMs = sub.ElapsedMs
		}
		items[i] = item
	}
	return items, nil
}

// Get returns a task by ID without any reveal gating; callers that serve
// teams must go through SubmissionService.VisibleTask instead.
func (s *TaskService) Get(ctx context.Context, taskID string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up task: %w", err)
	}
	return task, nil
}

// ListAll returns every task including inactive ones (admin view).
func (s *TaskService) ListAll(ctx context.Context) ([]*model.Task, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Create adds a task. Points default to the configured per-task base when
// not given. New tasks reach existing teams through the read-time queue
// merge, not by rewriting stored queues.
func (s *TaskService) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Title) == "" || strings.TrimSpace(task.Description) == "" || strings.TrimSpace(task.LocationHint) == "" {
		return nil, fmt.Errorf("%w: title, description and locationHint are required", ErrValidation)
	}

	if task.Points <= 0 {
		cfg, err := s.configSvc.Get(ctx)
		if err != nil {
			return nil, err
		}
		task.Points = cfg.DefaultTaskPoints
	}
	task.CreatedAt = s.clock.Now()

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return task, nil
}

// Update applies an admin task edit. Base-point changes affect standings
// because the aggregator reads points from a fresh task snapshot.
func (s *TaskService) Update(ctx context.Context, taskID string, update *model.TaskUpdate) (*model.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	update.Apply(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	_ = s.leaderboard.Invalidate(ctx)
	return task, nil
}

// Delete removes a task and every attempt that references it.
func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	if _, err := s.Get(ctx, taskID); err != nil {
		return err
	}

	if err := s.submissions.DeleteByTask(ctx, taskID); err != nil {
		return fmt.Errorf("deleting submissions: %w", err)
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	_ = s.leaderboard.Invalidate(ctx)
	return nil
}
