package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"questhunt/internal/model"
	"questhunt/internal/repository"
)

// AuthService handles team login, one-time admin setup and token validation.
type AuthService struct {
	teams     repository.TeamRepo
	jwtSecret []byte
	setupKey  string
	clock     clockwork.Clock
}

// NewAuthService creates a new auth service.
func NewAuthService(teams repository.TeamRepo, jwtSecret, setupKey string, clock clockwork.Clock) *AuthService {
	return &AuthService{
		teams:     teams,
		jwtSecret: []byte(jwtSecret),
		setupKey:  setupKey,
		clock:     clock,
	}
}

// Login validates team credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, name, password string) (*model.LoginResponse, error) {
	team, err := s.teams.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up team: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(team.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(team)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Team: team.Info()}, nil
}

// AdminSetup creates the single admin account, guarded by the setup key.
func (s *AuthService) AdminSetup(ctx context.Context, name, password, setupKey string) (*model.LoginResponse, error) {
	if s.setupKey == "" || setupKey != s.setupKey {
		return nil, fmt.Errorf("%w: invalid setup key", ErrForbidden)
	}
	if strings.TrimSpace(name) == "" || len(password) < 4 {
		return nil, fmt.Errorf("%w: name and a password of at least 4 characters are required", ErrValidation)
	}

	exists, err := s.teams.AdminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("checking for admin: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: admin account already exists", ErrConflict)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.Team{
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		AvatarColor:  "#ffd700",
		Role:         model.RoleAdmin,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.teams.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: name already taken", ErrConflict)
		}
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	token, err := s.GenerateToken(admin)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Team: admin.Info()}, nil
}

// UpdateProfile applies a team's single allowed name/avatar change and
// issues a refreshed token with the new name embedded. Admin accounts are
// not subject to the one-shot limit.
func (s *AuthService) UpdateProfile(ctx context.Context, teamID, name, avatarColor string) (*model.LoginResponse, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up team: %w", err)
	}

	if team.Role != model.RoleAdmin && team.ProfileEdited {
		return nil, ErrProfileLocked
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if trimmed != team.Name {
		existing, err := s.teams.GetByName(ctx, trimmed)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("checking name: %w", err)
		}
		if existing != nil && existing.ID != team.ID {
			return nil, fmt.Errorf("%w: team name already taken", ErrConflict)
		}
	}

	team.Name = trimmed
	if avatarColor != "" {
		team.AvatarColor = avatarColor
	}
	if team.Role != model.RoleAdmin {
		team.ProfileEdited = true
	}

	if err := s.teams.Update(ctx, team); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: team name already taken", ErrConflict)
		}
		return nil, fmt.Errorf("updating team: %w", err)
	}

	token, err := s.GenerateToken(team)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, Team: team.Info()}, nil
}

// GenerateToken signs a 24h claims token for the team.
func (s *AuthService) GenerateToken(team *model.Team) (string, error) {
	now := s.clock.Now()
	claims := &model.TeamClaims{
		TeamID:   team.ID,
		TeamName: team.Name,
		Role:     team.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a claims token.
func (s *AuthService) ValidateToken(tokenString string) (*model.TeamClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.TeamClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.TeamClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
