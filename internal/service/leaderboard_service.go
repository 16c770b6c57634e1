package service

import (
	"context"
	"fmt"
	"sort"

	"questhunt/internal/cache"
	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// LeaderboardService derives ranked standings from completed and blocked
// attempts. The computation is deterministic: identical inputs always
// produce identical output, including tie order.
type LeaderboardService struct {
	submissions repository.SubmissionRepo
	tasks       repository.TaskRepo
	teams       repository.TeamRepo
	configSvc   *ConfigService
	cache       cache.LeaderboardCache
}

// NewLeaderboardService creates a new leaderboard service.
func NewLeaderboardService(
	submissions repository.SubmissionRepo,
	tasks repository.TaskRepo,
	teams repository.TeamRepo,
	configSvc *ConfigService,
	cache cache.LeaderboardCache,
) *LeaderboardService {
	return &LeaderboardService{
		submissions: submissions,
		tasks:       tasks,
		teams:       teams,
		configSvc:   configSvc,
		cache:       cache,
	}
}

// Standings returns the published leaderboard, serving from the cache when a
// fresh copy exists.
func (s *LeaderboardService) Standings(ctx context.Context) ([]model.LeaderboardEntry, error) {
	if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
		return cached, nil
	}

	entries, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, entries)
	return entries, nil
}

type teamTotals struct {
	teamID         string
	completedTasks int
	basePoints     int
	photoPoints    int
	elapsedMs      int64
}

// compute runs the aggregation:
//   - base points accrue only for completed attempts, looked up from a fresh
//     task snapshot;
//   - photo points accrue for completed AND blocked attempts (a blocked
//     attempt's admin score still counts, which is deliberate);
//   - elapsed time sums over completed attempts only.
func (s *LeaderboardService) compute(ctx context.Context) ([]model.LeaderboardEntry, error) {
	subs, err := s.submissions.ListByStatuses(ctx, []model.SubmissionStatus{
		model.SubmissionCompleted,
		model.SubmissionBlocked,
	})
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	taskList, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	taskPoints := make(map[string]int, len(taskList))
	for _, t := range taskList {
		taskPoints[t.ID] = t.Points
	}

	totals := make(map[string]*teamTotals)
	for _, sub := range subs {
		t := totals[sub.TeamID]
		if t == nil {
			t = &teamTotals{teamID: sub.TeamID}
			totals[sub.TeamID] = t
		}

		if sub.Status == model.SubmissionCompleted {
			t.completedTasks++
			t.basePoints += taskPoints[sub.TaskID]
			if sub.ElapsedMs != nil {
				t.elapsedMs += *sub.ElapsedMs
			}
		}
		if sub.PhotoPoints != nil {
			t.photoPoints += *sub.PhotoPoints
		}
	}

	teamIDs := make([]string, 0, len(totals))
	for id := range totals {
		teamIDs = append(teamIDs, id)
	}
	teamList, err := s.teams.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving teams: %w", err)
	}
	teamByID := make(map[string]*model.Team, len(teamList))
	for _, t := range teamList {
		teamByID[t.ID] = t
	}

	cfg, err := s.configSvc.Get(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(totals))
	for id, t := range totals {
		team, ok := teamByID[id]
		if !ok || team.Role == model.RoleAdmin {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			TeamID:         id,
			TeamName:       team.Name,
			AvatarColor:    team.AvatarColor,
			CompletedTasks: t.completedTasks,
			TotalPoints:    t.basePoints + t.photoPoints,
			TotalElapsedMs: t.elapsedMs,
		})
	}

	sortEntries(entries, cfg.LeaderboardMode)
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// sortEntries orders standings. The default mode ranks by points descending
// with elapsed time ascending as the tie-break; "fastest" flips the primary
// key to elapsed time. Team ID is the final tie-break so equal teams always
// come out in the same order.
func sortEntries(entries []model.LeaderboardEntry, mode model.LeaderboardMode) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if mode == model.LeaderboardFastest {
			if a.TotalElapsedMs != b.TotalElapsedMs {
				return a.TotalElapsedMs < b.TotalElapsedMs
			}
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
		} else {
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
			if a.TotalElapsedMs != b.TotalElapsedMs {
				return a.TotalElapsedMs < b.TotalElapsedMs
			}
		}
		return a.TeamID < b.TeamID
	})
}
