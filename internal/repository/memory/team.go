package memory

import (
	"context"
	"sort"
	"sync"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// TeamRepo is an in-memory repository.TeamRepo with a unique name index.
type TeamRepo struct {
	mu    sync.Mutex
	ids   idGen
	teams map[string]*model.Team
}

func NewTeamRepo() *TeamRepo {
	return &TeamRepo{teams: make(map[string]*model.Team)}
}

func (r *TeamRepo) Create(ctx context.Context, team *model.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == team.Name {
			return repository.ErrDuplicate
		}
	}
	if team.ID == "" {
		team.ID = r.ids.newID()
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *TeamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TeamRepo) GetByName(ctx context.Context, name string) (*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *TeamRepo) List(ctx context.Context) ([]*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Team
	for _, t := range r.teams {
		if t.Role == model.RoleAdmin {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TeamRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Team
	for _, id := range ids {
		if t, ok := r.teams[id]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *TeamRepo) AdminExists(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Role == model.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepo) Update(ctx context.Context, team *model.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, t := range r.teams {
		if t.ID != team.ID && t.Name == team.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *team
	r.teams[team.ID] = &cp
	return nil
}

func (r *TeamRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *TeamRepo) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.teams {
		if t.Role == role {
			n++
		}
	}
	return n, nil
}
