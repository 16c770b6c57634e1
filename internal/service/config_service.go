package service

import (
	"context"
	"fmt"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// ConfigService wraps the singleton game configuration document.
type ConfigService struct {
	configs repository.GameConfigRepo
}

// NewConfigService creates a new config service.
func NewConfigService(configs repository.GameConfigRepo) *ConfigService {
	return &ConfigService{configs: configs}
}

// Get returns the config, creating it with defaults on first access.
func (s *ConfigService) Get(ctx context.Context) (*model.GameConfig, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading game config: %w", err)
	}
	return cfg, nil
}

// Public returns the non-sensitive subset served without authentication.
func (s *ConfigService) Public(ctx context.Context) (*model.PublicConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	pub := cfg.Public()
	return &pub, nil
}

// Update applies the allow-listed fields of the update and returns the new
// config.
func (s *ConfigService) Update(ctx context.Context, update *model.GameConfigUpdate) (*model.GameConfig, error) {
	if update.LeaderboardMode != nil {
		switch *update.LeaderboardMode {
		case model.LeaderboardFastest, model.LeaderboardMostTasks:
		default:
			return nil, fmt.Errorf("%w: unknown leaderboard mode %q", ErrValidation, *update.LeaderboardMode)
		}
	}

	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	update.Apply(cfg)
	if err := s.configs.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("saving game config: %w", err)
	}
	return cfg, nil
}
