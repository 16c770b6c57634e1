package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"questhunt/internal/cache"
	"questhunt/internal/model"
	"questhunt/internal/repository"
	"questhunt/internal/storage"
)

const defaultBlockReason = "Blocked by admin"

// SubmissionService is the task-attempt state machine: it owns the
// server-authoritative timer, the reveal gating, photo completion, and all
// admin moderation transitions.
type SubmissionService struct {
	submissions repository.SubmissionRepo
	tasks       repository.TaskRepo
	teams       repository.TeamRepo
	configSvc   *ConfigService
	photos      storage.PhotoStore
	leaderboard cache.LeaderboardCache
	clock       clockwork.Clock
	maxUpload   int64
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(
	submissions repository.SubmissionRepo,
	tasks repository.TaskRepo,
	teams repository.TeamRepo,
	configSvc *ConfigService,
	photos storage.PhotoStore,
	leaderboard cache.LeaderboardCache,
	clock clockwork.Clock,
	maxUpload int64,
) *SubmissionService {
	return &SubmissionService{
		submissions: submissions,
		tasks:       tasks,
		teams:       teams,
		configSvc:   configSvc,
		photos:      photos,
		leaderboard: leaderboard,
		clock:       clock,
		maxUpload:   maxUpload,
	}
}

// Start opens a task for a team. The first call creates the attempt and
// fixes riddleOpenedAt; every later call returns the existing attempt
// unchanged, so starting twice never resets the timer. A concurrent double
// start resolves through the unique (team, task) index to the same attempt.
func (s *SubmissionService) Start(ctx context.Context, teamID, taskID string) (*model.Submission, error) {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up task: %w", err)
	}

	existing, err := s.submissions.GetByTeamAndTask(ctx, teamID, taskID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up submission: %w", err)
	}

	now := s.clock.Now()
	sub := &model.Submission{
		TeamID:         teamID,
		TaskID:         taskID,
		RiddleOpenedAt: now,
		Status:         model.SubmissionInProgress,
		CreatedAt:      now,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against another start; the winner's attempt is
			// the attempt.
			return s.submissions.GetByTeamAndTask(ctx, teamID, taskID)
		}
		return nil, fmt.Errorf("creating submission: %w", err)
	}
	return sub, nil
}

// Get returns the team's attempt for a task, or nil if none was started.
func (s *SubmissionService) Get(ctx context.Context, teamID, taskID string) (*model.Submission, error) {
	sub, err := s.submissions.GetByTeamAndTask(ctx, teamID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up submission: %w", err)
	}
	return sub, nil
}

// VisibleTask computes what the caller may see of a task right now. The
// detailed hint and the coordinates stay hidden until their reveal delays
// have elapsed since riddleOpenedAt; with no attempt nothing is revealed.
// Admins always see the full task. Reveal state is recomputed on every read;
// there is no background job.
func (s *SubmissionService) VisibleTask(ctx context.Context, teamID, taskID string, asAdmin bool) (*model.TaskView, *model.Submission, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("looking up task: %w", err)
	}

	sub, err := s.Get(ctx, teamID, taskID)
	if err != nil {
		return nil, nil, err
	}

	view := &model.TaskView{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		LocationHint: task.LocationHint,
		Points:       task.Points,
		Order:        task.Order,
	}

	hintVisible, locationVisible := asAdmin, asAdmin
	if !asAdmin && sub != nil {
		cfg, err := s.configSvc.Get(ctx)
		if err != nil {
			return nil, nil, err
		}
		elapsed := s.clock.Now().Sub(sub.RiddleOpenedAt)
		hintVisible = elapsed >= time.Duration(cfg.HintRevealDelaySec)*time.Second
		locationVisible = elapsed >= time.Duration(cfg.LocationRevealDelaySec)*time.Second
	}

	if hintVisible {
		view.DetailedHint = task.DetailedHint
	}
	if locationVisible {
		view.Lat = task.Lat
		view.Lng = task.Lng
		view.MapLabel = task.MapLabel
	}
	return view, sub, nil
}

// UploadPhoto completes an attempt: it stores the photo, stops the timer and
// freezes elapsedMs. The elapsed time is computed here and never again.
func (s *SubmissionService) UploadPhoto(ctx context.Context, teamID, taskID, contentType string, size int64, body io.Reader) (*model.Submission, error) {
	sub, err := s.Get(ctx, teamID, taskID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotStarted
	}
	switch sub.Status {
	case model.SubmissionCompleted:
		return nil, ErrAlreadySubmitted
	case model.SubmissionBlocked:
		return nil, ErrSubmissionBlocked
	}

	if err := validatePhoto(contentType, size, s.maxUpload); err != nil {
		return nil, err
	}

	key := "photos/photo-" + uuid.NewString() + photoExt(contentType)
	url, err := s.photos.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("storing photo: %w", err)
	}

	now := s.clock.Now()
	elapsedMs := now.Sub(sub.RiddleOpenedAt).Milliseconds()

	ok, err := s.submissions.CompletePhoto(ctx, sub.ID, model.SubmissionInProgress, url, key, now, elapsedMs)
	if err != nil {
		return nil, fmt.Errorf("completing submission: %w", err)
	}
	if !ok {
		// Somebody beat us to a status change; the blob is orphaned, drop it.
		_ = s.photos.Delete(ctx, key)
		current, err := s.Get(ctx, teamID, taskID)
		if err != nil || current == nil {
			return nil, ErrAlreadySubmitted
		}
		if current.Status == model.SubmissionBlocked {
			return nil, ErrSubmissionBlocked
		}
		return nil, ErrAlreadySubmitted
	}

	sub.Status = model.SubmissionCompleted
	sub.PhotoURL = url
	sub.PhotoKey = key
	sub.PhotoSubmittedAt = &now
	sub.ElapsedMs = &elapsedMs

	_ = s.leaderboard.Invalidate(ctx)
	return sub, nil
}

// Feed returns the public photo feed: completed, unblocked submissions with
// photos, newest first.
func (s *SubmissionService) Feed(ctx context.Context) ([]model.FeedItem, error) {
	subs, err := s.submissions.Feed(ctx, 100)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}

	teams, tasks, err := s.hydrate(ctx, subs)
	if err != nil {
		return nil, err
	}

	items := make([]model.FeedItem, 0, len(subs))
	for _, sub := range subs {
		item := model.FeedItem{
			ID:               sub.ID,
			PhotoURL:         sub.PhotoURL,
			PhotoSubmittedAt: sub.PhotoSubmittedAt,
			ElapsedMs:        sub.ElapsedMs,
		}
		if team, ok := teams[sub.TeamID]; ok {
			item.TeamName = team.Name
			item.AvatarColor = team.AvatarColor
		}
		if task, ok := tasks[sub.TaskID]; ok {
			item.TaskTitle = task.Title
			item.LocationHint = task.LocationHint
		}
		items = append(items, item)
	}
	return items, nil
}

// AdminList returns submissions matching the filter, hydrated with team and
// task metadata for the moderation panel.
func (s *SubmissionService) AdminList(ctx context.Context, filter repository.SubmissionFilter) ([]model.AdminSubmission, error) {
	subs, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	teams, tasks, err := s.hydrate(ctx, subs)
	if err != nil {
		return nil, err
	}

	items := make([]model.AdminSubmission, 0, len(subs))
	for _, sub := range subs {
		item := model.AdminSubmission{Submission: *sub}
		if team, ok := teams[sub.TeamID]; ok {
			item.TeamName = team.Name
			item.AvatarColor = team.AvatarColor
		}
		if task, ok := tasks[sub.TaskID]; ok {
			item.TaskTitle = task.Title
			item.TaskOrder = task.Order
			item.LocationHint = task.LocationHint
		}
		items = append(items, item)
	}
	return items, nil
}

// Block moves a completed attempt to blocked. The team cannot recover from
// this; only Unblock can. Photo points are zeroed.
func (s *SubmissionService) Block(ctx context.Context, adminID, submissionID, reason string) (*model.Submission, error) {
	sub, err := s.getByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status == model.SubmissionBlocked {
		return nil, fmt.Errorf("%w: submission already blocked", ErrConflict)
	}

	if reason == "" {
		reason = defaultBlockReason
	}
	now := s.clock.Now()
	zero := 0

	sub.Status = model.SubmissionBlocked
	sub.BlockedAt = &now
	sub.BlockedBy = adminID
	sub.BlockReason = reason
	sub.PhotoPoints = &zero

	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("updating submission: %w", err)
	}
	_ = s.leaderboard.Invalidate(ctx)
	return sub, nil
}

// Unblock restores a blocked attempt to completed. Block fields are cleared;
// photo points stay at whatever block left them (zero) until re-scored.
func (s *SubmissionService) Unblock(ctx context.Context, submissionID string) (*model.Submission, error) {
	sub, err := s.getByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubmissionBlocked {
		return nil, fmt.Errorf("%w: submission is not blocked", ErrConflict)
	}

	sub.Status = model.SubmissionCompleted
	sub.BlockedAt = nil
	sub.BlockedBy = ""
	sub.BlockReason = ""

	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("updating submission: %w", err)
	}
	_ = s.leaderboard.Invalidate(ctx)
	return sub, nil
}

// Score assigns discretionary photo points. Re-scoring is allowed at any
// status; points on a blocked attempt are stored and still count toward the
// team's total.
func (s *SubmissionService) Score(ctx context.Context, adminID, submissionID string, points int) (*model.Submission, error) {
	if points < 0 {
		return nil, ErrInvalidScore
	}

	sub, err := s.getByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sub.PhotoPoints = &points
	sub.ScoredAt = &now
	sub.ScoredBy = adminID

	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("updating submission: %w", err)
	}
	_ = s.leaderboard.Invalidate(ctx)
	return sub, nil
}

// DeletePhoto removes the stored photo and resets the attempt to
// in-progress so the team can re-upload. riddleOpenedAt is deliberately
// preserved: the timer keeps running from the original open, so the next
// upload's elapsed time includes the moderation gap.
func (s *SubmissionService) DeletePhoto(ctx context.Context, submissionID string) (*model.Submission, error) {
	sub, err := s.getByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if sub.PhotoKey != "" {
		if err := s.photos.Delete(ctx, sub.PhotoKey); err != nil {
			return nil, fmt.Errorf("deleting photo: %w", err)
		}
	}

	sub.Status = model.SubmissionInProgress
	sub.PhotoURL = ""
	sub.PhotoKey = ""
	sub.PhotoSubmittedAt = nil
	sub.ElapsedMs = nil
	sub.PhotoPoints = nil
	sub.ScoredAt = nil
	sub.ScoredBy = ""
	sub.BlockedAt = nil
	sub.BlockedBy = ""
	sub.BlockReason = ""

	if err := s.submissions.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("updating submission: %w", err)
	}
	_ = s.leaderboard.Invalidate(ctx)
	return sub, nil
}

func (s *SubmissionService) getByID(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up submission: %w", err)
	}
	return sub, nil
}

// hydrate resolves the teams and tasks referenced by a submission batch.
func (s *SubmissionService) hydrate(ctx context.Context, subs []*model.Submission) (map[string]*model.Team, map[string]*model.Task, error) {
	teamIDs := make([]string, 0, len(subs))
	seen := make(map[string]bool, len(subs))
	for _, sub := range subs {
		if !seen[sub.TeamID] {
			teamIDs = append(teamIDs, sub.TeamID)
			seen[sub.TeamID] = true
		}
	}

	teamList, err := s.teams.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving teams: %w", err)
	}
	teams := make(map[string]*model.Team, len(teamList))
	for _, t := range teamList {
		teams[t.ID] = t
	}

	taskList, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving tasks: %w", err)
	}
	tasks := make(map[string]*model.Task, len(taskList))
	for _, t := range taskList {
		tasks[t.ID] = t
	}
	return teams, tasks, nil
}
