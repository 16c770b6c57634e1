package model

import "time"

type LeaderboardMode string

const (
	LeaderboardFastest   LeaderboardMode = "fastest"
	LeaderboardMostTasks LeaderboardMode = "most-tasks"
)

// GameConfig is the single admin-editable game configuration document.
// Exactly one instance exists; it is created lazily with defaults on first
// access.
type GameConfig struct {
	ID string `json:"-" bson:"_id,omitempty"`

	// Points and scoring.
	DefaultTaskPoints     int `json:"defaultTaskPoints" bson:"defaultTaskPoints"`
	TimeBonusThresholdSec int `json:"timeBonusThresholdSec" bson:"timeBonusThresholdSec"`
	TimeBonusPoints       int `json:"timeBonusPoints" bson:"timeBonusPoints"`
	HintPenaltyPoints     int `json:"hintPenaltyPoints" bson:"hintPenaltyPoints"`

	LeaderboardMode LeaderboardMode `json:"leaderboardMode" bson:"leaderboardMode"`

	// Game state.
	GameActive   bool   `json:"gameActive" bson:"gameActive"`
	GameTitle    string `json:"gameTitle" bson:"gameTitle"`
	GameSubtitle string `json:"gameSubtitle" bson:"gameSubtitle"`

	// Map settings.
	MapCenterLat float64 `json:"mapCenterLat" bson:"mapCenterLat"`
	MapCenterLng float64 `json:"mapCenterLng" bson:"mapCenterLng"`
	MapZoom      int     `json:"mapZoom" bson:"mapZoom"`

	AllowRegistration bool `json:"allowRegistration" bson:"allowRegistration"`

	// If true, each new team gets a shuffled task queue.
	ShuffleTaskOrder bool `json:"shuffleTaskOrder" bson:"shuffleTaskOrder"`

	// Timed reveals: after a task is opened, the detailed hint appears after
	// HintRevealDelaySec and the coordinates after LocationRevealDelaySec.
	HintRevealDelaySec     int `json:"hintRevealDelaySec" bson:"hintRevealDelaySec"`
	LocationRevealDelaySec int `json:"locationRevealDelaySec" bson:"locationRevealDelaySec"`

	BoundaryRadiusMeters int `json:"boundaryRadiusMeters" bson:"boundaryRadiusMeters"`

	GameEndTime         *time.Time `json:"gameEndTime" bson:"gameEndTime"`
	GameDurationMinutes int        `json:"gameDurationMinutes" bson:"gameDurationMinutes"`
}

// DefaultGameConfig returns the config used when no document exists yet.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		DefaultTaskPoints:      100,
		TimeBonusThresholdSec:  120,
		TimeBonusPoints:        50,
		HintPenaltyPoints:      0,
		LeaderboardMode:        LeaderboardMostTasks,
		GameActive:             true,
		GameTitle:              "Scavenger Hunt 2026",
		GameSubtitle:           "Conference Edition",
		MapCenterLat:           52.2297,
		MapCenterLng:           21.0122,
		MapZoom:                17,
		AllowRegistration:      true,
		ShuffleTaskOrder:       true,
		HintRevealDelaySec:     180,
		LocationRevealDelaySec: 360,
		BoundaryRadiusMeters:   500,
	}
}

// PublicConfig is the non-sensitive subset served without authentication.
type PublicConfig struct {
	GameTitle         string          `json:"gameTitle"`
	GameSubtitle      string          `json:"gameSubtitle"`
	GameActive        bool            `json:"gameActive"`
	MapCenterLat      float64         `json:"mapCenterLat"`
	MapCenterLng      float64         `json:"mapCenterLng"`
	MapZoom           int             `json:"mapZoom"`
	AllowRegistration bool            `json:"allowRegistration"`
	LeaderboardMode   LeaderboardMode `json:"leaderboardMode"`
}

func (c *GameConfig) Public() PublicConfig {
	return PublicConfig{
		GameTitle:         c.GameTitle,
		GameSubtitle:      c.GameSubtitle,
		GameActive:        c.GameActive,
		MapCenterLat:      c.MapCenterLat,
		MapCenterLng:      c.MapCenterLng,
		MapZoom:           c.MapZoom,
		AllowRegistration: c.AllowRegistration,
		LeaderboardMode:   c.LeaderboardMode,
	}
}

// GameConfigUpdate carries an admin config edit. Only non-nil fields are
// applied; anything outside this struct cannot be changed over the API.
type GameConfigUpdate struct {
	DefaultTaskPoints      *int             `json:"defaultTaskPoints"`
	TimeBonusThresholdSec  *int             `json:"timeBonusThresholdSec"`
	TimeBonusPoints        *int             `json:"timeBonusPoints"`
	HintPenaltyPoints      *int             `json:"hintPenaltyPoints"`
	LeaderboardMode        *LeaderboardMode `json:"leaderboardMode"`
	GameActive             *bool            `json:"gameActive"`
	GameTitle              *string          `json:"gameTitle"`
	GameSubtitle           *string          `json:"gameSubtitle"`
	MapCenterLat           *float64         `json:"mapCenterLat"`
	MapCenterLng           *float64         `json:"mapCenterLng"`
	MapZoom                *int             `json:"mapZoom"`
	AllowRegistration      *bool            `json:"allowRegistration"`
	ShuffleTaskOrder       *bool            `json:"shuffleTaskOrder"`
	HintRevealDelaySec     *int             `json:"hintRevealDelaySec"`
	LocationRevealDelaySec *int             `json:"locationRevealDelaySec"`
	BoundaryRadiusMeters   *int             `json:"boundaryRadiusMeters"`
	GameEndTime            *time.Time       `json:"gameEndTime"`
	GameDurationMinutes    *int             `json:"gameDurationMinutes"`
}

// Apply copies the set fields of the update onto the config.
func (u *GameConfigUpdate) Apply(c *GameConfig) {
	if u.DefaultTaskPoints != nil {
		c.DefaultTaskPoints = *u.DefaultTaskPoints
	}
	if u.TimeBonusThresholdSec != nil {
		c.TimeBonusThresholdSec = *u.TimeBonusThresholdSec
	}
	if u.TimeBonusPoints != nil {
		c.TimeBonusPoints = *u.TimeBonusPoints
	}
	if u.HintPenaltyPoints != nil {
		c.HintPenaltyPoints = *u.HintPenaltyPoints
	}
	if u.LeaderboardMode != nil {
		c.LeaderboardMode = *u.LeaderboardMode
	}
	if u.GameActive != nil {
		c.GameActive = *u.GameActive
	}
	if u.GameTitle != nil {
		c.GameTitle = *u.GameTitle
	}
	if u.GameSubtitle != nil {
		c.GameSubtitle = *u.GameSubtitle
	}
	if u.MapCenterLat != nil {
		c.MapCenterLat = *u.MapCenterLat
	}
	if u.MapCenterLng != nil {
		c.MapCenterLng = *u.MapCenterLng
	}
	if u.MapZoom != nil {
		c.MapZoom = *u.MapZoom
	}
	if u.AllowRegistration != nil {
		c.AllowRegistration = *u.AllowRegistration
	}
	if u.ShuffleTaskOrder != nil {
		c.ShuffleTaskOrder = *u.ShuffleTaskOrder
	}
	if u.HintRevealDelaySec != nil {
		c.HintRevealDelaySec = *u.HintRevealDelaySec
	}
	if u.LocationRevealDelaySec != nil {
		c.LocationRevealDelaySec = *u.LocationRevealDelaySec
	}
	if u.BoundaryRadiusMeters != nil {
		c.BoundaryRadiusMeters = *u.BoundaryRadiusMeters
	}
	if u.GameEndTime != nil {
		c.GameEndTime = u.GameEndTime
	}
	if u.GameDurationMinutes != nil {
		c.GameDurationMinutes = *u.GameDurationMinutes
	}
}
