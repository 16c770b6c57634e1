package memory

import (
	"context"
	"sort"
	"sync"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// SideQuestRepo is an in-memory repository.SideQuestRepo.
type SideQuestRepo struct {
	mu     sync.Mutex
	ids    idGen
	quests map[string]*model.SideQuest
}

func NewSideQuestRepo() *SideQuestRepo {
	return &SideQuestRepo{quests: make(map[string]*model.SideQuest)}
}

func (r *SideQuestRepo) Create(ctx context.Context, quest *model.SideQuest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if quest.ID == "" {
		quest.ID = r.ids.newID()
	}
	cp := *quest
	r.quests[quest.ID] = &cp
	return nil
}

func (r *SideQuestRepo) GetByID(ctx context.Context, id string) (*model.SideQuest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *SideQuestRepo) ListActive(ctx context.Context) ([]*model.SideQuest, error) {
	return r.list(true), nil
}

func (r *SideQuestRepo) ListAll(ctx context.Context) ([]*model.SideQuest, error) {
	return r.list(false), nil
}

func (r *SideQuestRepo) list(activeOnly bool) []*model.SideQuest {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SideQuest
	for _, q := range r.quests {
		if activeOnly && !q.IsActive {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *SideQuestRepo) Update(ctx context.Context, quest *model.SideQuest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quests[quest.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *quest
	r.quests[quest.ID] = &cp
	return nil
}

func (r *SideQuestRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quests[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.quests, id)
	return nil
}

// SideQuestSubmissionRepo is an in-memory
// repository.SideQuestSubmissionRepo with the unique (teamId, sideQuestId)
// constraint.
type SideQuestSubmissionRepo struct {
	mu   sync.Mutex
	ids  idGen
	subs map[string]*model.SideQuestSubmission
}

func NewSideQuestSubmissionRepo() *SideQuestSubmissionRepo {
	return &SideQuestSubmissionRepo{subs: make(map[string]*model.SideQuestSubmission)}
}

func (r *SideQuestSubmissionRepo) Create(ctx context.Context, sub *model.SideQuestSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.TeamID == sub.TeamID && s.SideQuestID == sub.SideQuestID {
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

func (r *SideQuestSubmissionRepo) GetByID(ctx context.Context, id string) (*model.SideQuestSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *SideQuestSubmissionRepo) GetByTeamAndQuest(ctx context.Context, teamID, questID string) (*model.SideQuestSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.TeamID == teamID && s.SideQuestID == questID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SideQuestSubmissionRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.SideQuestSubmission, error) {
	return r.filter(func(s *model.SideQuestSubmission) bool { return s.TeamID == teamID }), nil
}

func (r *SideQuestSubmissionRepo) Gallery(ctx context.Context, questID string, limit int64) ([]*model.SideQuestSubmission, error) {
	out := r.filter(func(s *model.SideQuestSubmission) bool {
		if s.PhotoURL == "" {
			return false
		}
		return questID == "" || s.SideQuestID == questID
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SideQuestSubmissionRepo) ListPending(ctx context.Context) ([]*model.SideQuestSubmission, error) {
	return r.filter(func(s *model.SideQuestSubmission) bool { return s.Status == model.SideQuestPending }), nil
}

func (r *SideQuestSubmissionRepo) Update(ctx context.Context, sub *model.SideQuestSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *sub
	r.subs[sub.ID] = &cp
	return nil
}

func (r *SideQuestSubmissionRepo) DeleteByTeam(ctx context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.subs {
		if s.TeamID == teamID {
			delete(r.subs, id)
		}
	}
	return nil
}

func (r *SideQuestSubmissionRepo) DeleteByQuest(ctx context.Context, questID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.subs {
		if s.SideQuestID == questID {
			delete(r.subs, id)
		}
	}
	return nil
}

func (r *SideQuestSubmissionRepo) filter(keep func(*model.SideQuestSubmission) bool) []*model.SideQuestSubmission {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.SideQuestSubmission
	for _, s := range r.subs {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
