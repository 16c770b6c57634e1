package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// SubmissionRepo is an in-memory repository.SubmissionRepo with the same
// unique (teamId, taskId) constraint and conditional-update semantics as
// the Mongo implementation.
type SubmissionRepo struct {
	mu   sync.Mutex
	ids  idGen
	subs map[string]*model.Submission
}

func NewSubmissionRepo() *SubmissionRepo {
	return &SubmissionRepo{subs: make(map[string]*model.Submission)}
}

func (r *SubmissionRepo) Create(ctx context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.TeamID == sub.TeamID && s.TaskID == sub.TaskID {
			return repository.ErrDuplicate
		}
	}
	if sub.ID == "" {
		sub.ID = r.ids.newID()
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *SubmissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *SubmissionRepo) GetByTeamAndTask(ctx context.Context, teamID, taskID string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.TeamID == teamID && s.TaskID == taskID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SubmissionRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Submission, error) {
	return r.filter(func(s *model.Submission) bool { return s.TeamID == teamID }), nil
}

func (r *SubmissionRepo) List(ctx context.Context, filter repository.SubmissionFilter) ([]*model.Submission, error) {
	return r.filter(func(s *model.Submission) bool {
		if filter.Status != "" && s.Status != filter.Status {
			return false
		}
		if filter.TaskID != "" && s.TaskID != filter.TaskID {
			return false
		}
		if filter.TeamID != "" && s.TeamID != filter.TeamID {
			return false
		}
		return true
	}), nil
}

func (r *SubmissionRepo) ListByStatuses(ctx context.Context, statuses []model.SubmissionStatus) ([]*model.Submission, error) {
	want := make(map[model.SubmissionStatus]bool, len(statuses))
	for _, st := range statuses {
		want[st] = true
	}
	return r.filter(func(s *model.Submission) bool { return want[s.Status] }), nil
}

func (r *SubmissionRepo) Feed(ctx context.Context, limit int64) ([]*model.Submission, error) {
	out := r.filter(func(s *model.Submission) bool {
		return s.Status == model.SubmissionCompleted && s.PhotoURL != ""
	})
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].PhotoSubmittedAt, out[j].PhotoSubmittedAt
		if ti == nil || tj == nil {
			return tj == nil
		}
		return ti.After(*tj)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SubmissionRepo) CompletePhoto(ctx context.Context, id string, from model.SubmissionStatus, photoURL, photoKey string, submittedAt time.Time, elapsedMs int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok || s.Status != from {
		return false, nil
	}
	at := submittedAt
	s.PhotoURL = photoURL
	s.PhotoKey = photoKey
	s.PhotoSubmittedAt = &at
	s.ElapsedMs = &elapsedMs
	s.Status = model.SubmissionCompleted
	return true, nil
}

func (r *SubmissionRepo) Update(ctx context.Context, sub *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *SubmissionRepo) DeleteByTeam(ctx context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.subs {
		if s.TeamID == teamID {
			delete(r.subs, id)
		}
	}
	return nil
}

func (r *SubmissionRepo) DeleteByTask(ctx context.Context, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.subs {
		if s.TaskID == taskID {
			delete(r.subs, id)
		}
	}
	return nil
}

func (r *SubmissionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.subs)), nil
}

func (r *SubmissionRepo) CountByStatus(ctx context.Context, status model.SubmissionStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.subs {
		if s.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *SubmissionRepo) filter(keep func(*model.Submission) bool) []*model.Submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Submission
	for _, s := range r.subs {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
