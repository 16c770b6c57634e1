package service

import (
	"context"
	"errors"
	"testing"

	"questhunt/internal/model"
)

func TestConfigDefaults(t *testing.T) {
	e := newEnv(t)

	cfg, err := e.config.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.DefaultTaskPoints != 100 || cfg.HintRevealDelaySec != 180 || cfg.LocationRevealDelaySec != 360 {
		t.Fatalf("defaults: %+v", cfg)
	}
	if cfg.LeaderboardMode != model.LeaderboardMostTasks {
		t.Fatalf("default mode = %q", cfg.LeaderboardMode)
	}
}

func TestConfigPartialUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	delay := 60
	title := "Spring Hunt"
	updated, err := e.config.Update(ctx, &model.GameConfigUpdate{
		HintRevealDelaySec: &delay,
		GameTitle:          &title,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HintRevealDelaySec != 60 || updated.GameTitle != "Spring Hunt" {
		t.Fatalf("update not applied: %+v", updated)
	}
	// Untouched fields keep their values.
	if updated.LocationRevealDelaySec != 360 || updated.DefaultTaskPoints != 100 {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}

func TestConfigRejectsUnknownMode(t *testing.T) {
	e := newEnv(t)

	mode := model.LeaderboardMode("sideways")
	_, err := e.config.Update(context.Background(), &model.GameConfigUpdate{LeaderboardMode: &mode})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestPublicConfigSubset(t *testing.T) {
	e := newEnv(t)

	pub, err := e.config.Public(context.Background())
	if err != nil {
		t.Fatalf("public: %v", err)
	}
	if pub.GameTitle == "" || pub.MapCenterLat == 0 {
		t.Fatalf("public config: %+v", pub)
	}
}
