package service

import (
	"context"
	"errors"
	"testing"
)

func TestLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	team := e.addTeam(t, "owls")

	resp, err := e.auth.Login(ctx, "owls", "huntowls")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.Team.ID != team.ID {
		t.Fatalf("login response: %+v", resp)
	}

	claims, err := e.auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.TeamID != team.ID || claims.TeamName != "owls" || claims.Role != "team" {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	e := newEnv(t)
	e.addTeam(t, "owls")

	if _, err := e.auth.Login(context.Background(), "owls", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if _, err := e.auth.Login(context.Background(), "ghosts", "huntowls"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown team: got %v, want ErrInvalidCredentials", err)
	}
}

func TestAdminSetup(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.auth.AdminSetup(ctx, "organizers", "adminpass", "wrong-key"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("bad key: got %v, want ErrForbidden", err)
	}

	resp, err := e.auth.AdminSetup(ctx, "organizers", "adminpass", "setup-key")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if resp.Team.Role != "admin" {
		t.Fatalf("role = %q", resp.Team.Role)
	}

	// One admin only.
	if _, err := e.auth.AdminSetup(ctx, "second", "adminpass", "setup-key"); !errors.Is(err, ErrConflict) {
		t.Fatalf("second admin: got %v, want ErrConflict", err)
	}
}

func TestProfileEditIsOneShot(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	team := e.addTeam(t, "owls")

	resp, err := e.auth.UpdateProfile(ctx, team.ID, "night owls", "#ff00ff")
	if err != nil {
		t.Fatalf("profile update: %v", err)
	}
	if resp.Team.Name != "night owls" || resp.Team.AvatarColor != "#ff00ff" {
		t.Fatalf("profile not applied: %+v", resp.Team)
	}
	// The fresh token must carry the new name.
	claims, err := e.auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.TeamName != "night owls" {
		t.Fatalf("token name = %q", claims.TeamName)
	}

	if _, err := e.auth.UpdateProfile(ctx, team.ID, "day owls", ""); !errors.Is(err, ErrProfileLocked) {
		t.Fatalf("second edit: got %v, want ErrProfileLocked", err)
	}
}

func TestProfileEditNameTaken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addTeam(t, "owls")
	other := e.addTeam(t, "ravens")

	if _, err := e.auth.UpdateProfile(ctx, other.ID, "owls", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestAdminProfileNotLocked(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.addAdmin(t)

	if _, err := e.auth.UpdateProfile(ctx, admin.ID, "hq", ""); err != nil {
		t.Fatalf("first edit: %v", err)
	}
	if _, err := e.auth.UpdateProfile(ctx, admin.ID, "hq2", ""); err != nil {
		t.Fatalf("second edit: %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	e := newEnv(t)

	if _, err := e.auth.ValidateToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}
