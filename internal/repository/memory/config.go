package memory

import (
	"context"
	"sync"

	"questhunt/internal/model"
)

// GameConfigRepo is an in-memory repository.GameConfigRepo seeded with
// defaults.
type GameConfigRepo struct {
	mu  sync.Mutex
	cfg *model.GameConfig
}

func NewGameConfigRepo() *GameConfigRepo {
	return &GameConfigRepo{cfg: model.DefaultGameConfig()}
}

func (r *GameConfigRepo) Get(ctx context.Context) (*model.GameConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *r.cfg
	return &cp, nil
}

func (r *GameConfigRepo) Save(ctx context.Context, cfg *model.GameConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *cfg
	r.cfg = &cp
	return nil
}
