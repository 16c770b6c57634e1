package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"questhunt/internal/model"
	"questhunt/internal/repository"
	"questhunt/internal/storage"
)

// SideQuestService is the untimed parallel of the submission flow: one
// photo per (team, quest), reviewed by the admin, never feeding the main
// leaderboard.
type SideQuestService struct {
	quests    repository.SideQuestRepo
	questSubs repository.SideQuestSubmissionRepo
	teams     repository.TeamRepo
	photos    storage.PhotoStore
	clock     clockwork.Clock
	maxUpload int64
}

// NewSideQuestService creates a new side quest service.
func NewSideQuestService(
	quests repository.SideQuestRepo,
	questSubs repository.SideQuestSubmissionRepo,
	teams repository.TeamRepo,
	photos storage.PhotoStore,
	clock clockwork.Clock,
	maxUpload int64,
) *SideQuestService {
	return &SideQuestService{
		quests:    quests,
		questSubs: questSubs,
		teams:     teams,
		photos:    photos,
		clock:     clock,
		maxUpload: maxUpload,
	}
}

// ListForTeam returns active quests with the team's progress attached, plus
// a per-status summary of the team's submissions.
func (s *SideQuestService) ListForTeam(ctx context.Context, teamID string) ([]model.SideQuestListItem, *model.SideQuestSummary, error) {
	quests, err := s.quests.ListActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing side quests: %w", err)
	}

	subs, err := s.questSubs.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing side quest submissions: %w", err)
	}
	byQuest := make(map[string]*model.SideQuestSubmission, len(subs))
	summary := &model.SideQuestSummary{Submitted: len(subs)}
	for _, sub := range subs {
		byQuest[sub.SideQuestID] = sub
		switch sub.Status {
		case model.SideQuestApproved:
			summary.Approved++
		case model.SideQuestRejected:
			summary.Rejected++
		case model.SideQuestPending:
			summary.Pending++
		}
	}

	items := make([]model.SideQuestListItem, len(quests))
	for i, q := range quests {
		item := model.SideQuestListItem{SideQuest: *q}
		if sub, ok := byQuest[q.ID]; ok {
			item.Submitted = true
			item.Status = sub.Status
			item.PhotoURL = sub.PhotoURL
		}
		items[i] = item
	}
	return items, summary, nil
}

// Submit uploads a team's photo for a quest. One submission per pair; there
// is no timer and no retry after rejection.
func (s *SideQuestService) Submit(ctx context.Context, teamID, questID, contentType string, size int64, body io.Reader) (*model.SideQuestSubmission, error) {
	quest, err := s.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	if !quest.IsActive {
		return nil, fmt.Errorf("%w: side quest is not active", ErrValidation)
	}

	if _, err := s.questSubs.GetByTeamAndQuest(ctx, teamID, questID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("looking up submission: %w", err)
	}

	if err := validatePhoto(contentType, size, s.maxUpload); err != nil {
		return nil, err
	}

	key := "sidequests/photo-" + uuid.NewString() + photoExt(contentType)
	url, err := s.photos.Upload(ctx, key, contentType, body)
	if err != nil {
		return nil, fmt.Errorf("storing photo: %w", err)
	}

	sub := &model.SideQuestSubmission{
		TeamID:      teamID,
		SideQuestID: questID,
		PhotoURL:    url,
		PhotoKey:    key,
		Status:      model.SideQuestPending,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.questSubs.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			_ = s.photos.Delete(ctx, key)
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("creating submission: %w", err)
	}
	return sub, nil
}

// Gallery returns side quest photos, newest first, optionally filtered to
// one quest.
func (s *SideQuestService) Gallery(ctx context.Context, questID string) ([]model.GalleryItem, error) {
	subs, err := s.questSubs.Gallery(ctx, questID, 200)
	if err != nil {
		return nil, fmt.Errorf("loading gallery: %w", err)
	}

	teamIDs := make([]string, 0, len(subs))
	seen := make(map[string]bool)
	for _, sub := range subs {
		if !seen[sub.TeamID] {
			teamIDs = append(teamIDs, sub.TeamID)
			seen[sub.TeamID] = true
		}
	}
	teamList, err := s.teams.GetByIDs(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("resolving teams: %w", err)
	}
	teams := make(map[string]*model.Team, len(teamList))
	for _, t := range teamList {
		teams[t.ID] = t
	}

	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving quests: %w", err)
	}
	questByID := make(map[string]*model.SideQuest, len(quests))
	for _, q := range quests {
		questByID[q.ID] = q
	}

	items := make([]model.GalleryItem, 0, len(subs))
	for _, sub := range subs {
		item := model.GalleryItem{
			ID:        sub.ID,
			PhotoURL:  sub.PhotoURL,
			Status:    sub.Status,
			CreatedAt: sub.CreatedAt,
		}
		if team, ok := teams[sub.TeamID]; ok {
			item.TeamName = team.Name
			item.AvatarColor = team.AvatarColor
		}
		if quest, ok := questByID[sub.SideQuestID]; ok {
			item.QuestTitle = quest.Title
		}
		items = append(items, item)
	}
	return items, nil
}

// Review records the admin verdict on a pending submission. Approve and
// reject are both re-appliable; the last verdict stands.
func (s *SideQuestService) Review(ctx context.Context, adminID, submissionID string, approve bool) (*model.SideQuestSubmission, error) {
	sub, err := s.questSubs.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up submission: %w", err)
	}

	now := s.clock.Now()
	if approve {
		sub.Status = model.SideQuestApproved
	} else {
		sub.Status = model.SideQuestRejected
	}
	sub.ReviewedBy = adminID
	sub.ReviewedAt = &now

	if err := s.questSubs.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("updating submission: %w", err)
	}
	return sub, nil
}

// ListPending returns submissions awaiting review.
func (s *SideQuestService) ListPending(ctx context.Context) ([]*model.SideQuestSubmission, error) {
	subs, err := s.questSubs.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending submissions: %w", err)
	}
	return subs, nil
}

// ListAll returns every quest, including inactive ones (admin view).
func (s *SideQuestService) ListAll(ctx context.Context) ([]*model.SideQuest, error) {
	quests, err := s.quests.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing side quests: %w", err)
	}
	return quests, nil
}

// Create adds a quest.
func (s *SideQuestService) Create(ctx context.Context, quest *model.SideQuest) (*model.SideQuest, error) {
	if strings.TrimSpace(quest.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	quest.CreatedAt = s.clock.Now()
	if err := s.quests.Create(ctx, quest); err != nil {
		return nil, fmt.Errorf("creating side quest: %w", err)
	}
	return quest, nil
}

// Update edits a quest's title, description or active flag.
func (s *SideQuestService) Update(ctx context.Context, questID string, title, description *string, isActive *bool) (*model.SideQuest, error) {
	quest, err := s.getQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		quest.Title = *title
	}
	if description != nil {
		quest.Description = *description
	}
	if isActive != nil {
		quest.IsActive = *isActive
	}

	if err := s.quests.Update(ctx, quest); err != nil {
		return nil, fmt.Errorf("updating side quest: %w", err)
	}
	return quest, nil
}

// Delete removes a quest and all submissions referencing it.
func (s *SideQuestService) Delete(ctx context.Context, questID string) error {
	if _, err := s.getQuest(ctx, questID); err != nil {
		return err
	}
	if err := s.questSubs.DeleteByQuest(ctx, questID); err != nil {
		return fmt.Errorf("deleting submissions: %w", err)
	}
	if err := s.quests.Delete(ctx, questID); err != nil {
		return fmt.Errorf("deleting side quest: %w", err)
	}
	return nil
}

func (s *SideQuestService) getQuest(ctx context.Context, questID string) (*model.SideQuest, error) {
	quest, err := s.quests.GetByID(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up side quest: %w", err)
	}
	return quest, nil
}
