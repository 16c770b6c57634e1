package memory

import (
	"context"
	"sort"
	"sync"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// TaskRepo is an in-memory repository.TaskRepo.
type TaskRepo struct {
	mu    sync.Mutex
	ids   idGen
	tasks map[string]*model.Task
}

func NewTaskRepo() *TaskRepo {
	return &TaskRepo{tasks: make(map[string]*model.Task)}
}

func (r *TaskRepo) Create(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = r.ids.newID()
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TaskRepo) ListActive(ctx context.Context) ([]*model.Task, error) {
	return r.list(true), nil
}

func (r *TaskRepo) ListAll(ctx context.Context) ([]*model.Task, error) {
	return r.list(false), nil
}

func (r *TaskRepo) list(activeOnly bool) []*model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Task
	for _, t := range r.tasks {
		if activeOnly && !t.IsActive {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (r *TaskRepo) Update(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tasks)), nil
}
