package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func TestCreateTeamSnapshotsQueue(t *testing.T) {
	e := newEnv(t)
	a := e.addTask(t, "arch", 100, 1)
	b := e.addTask(t, "wall", 100, 2)
	c := e.addTask(t, "garden", 100, 3)

	team := e.addTeam(t, "owls")
	if len(team.TaskQueue) != 3 {
		t.Fatalf("queue length = %d, want 3", len(team.TaskQueue))
	}

	want := []string{a.ID, b.ID, c.ID}
	got := append([]string(nil), team.TaskQueue...)
	sort.Strings(got)
	sort.Strings(want)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue members = %v, want %v", team.TaskQueue, want)
		}
	}
}

func TestCreateTeamValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	if _, err := e.teamSvc.Create(ctx, "", "longenough"); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: got %v, want ErrValidation", err)
	}
	if _, err := e.teamSvc.Create(ctx, "owls", "abc"); !errors.Is(err, ErrValidation) {
		t.Fatalf("short password: got %v, want ErrValidation", err)
	}

	e.addTeam(t, "owls")
	if _, err := e.teamSvc.Create(ctx, "owls", "longenough"); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate name: got %v, want ErrConflict", err)
	}
}

func TestBulkCreate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addTask(t, "arch", 100, 1)

	generated, err := e.teamSvc.BulkCreate(ctx, "squad", 5)
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if len(generated) != 5 {
		t.Fatalf("generated = %d, want 5", len(generated))
	}
	for i, g := range generated {
		if g.Password == "" {
			t.Fatalf("no password for %s", g.Team.Name)
		}
		// Each returned password must actually log the team in.
		if _, err := e.auth.Login(ctx, g.Team.Name, g.Password); err != nil {
			t.Fatalf("login generated team %d: %v", i, err)
		}
	}

	if _, err := e.teamSvc.BulkCreate(ctx, "squad", 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("count 0: got %v, want ErrValidation", err)
	}
	if _, err := e.teamSvc.BulkCreate(ctx, "squad", 101); !errors.Is(err, ErrValidation) {
		t.Fatalf("count 101: got %v, want ErrValidation", err)
	}
}

func TestBulkCreateSkipsTakenNames(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addTeam(t, "squad-2")

	generated, err := e.teamSvc.BulkCreate(ctx, "squad", 3)
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if len(generated) != 2 {
		t.Fatalf("generated = %d, want 2 (squad-2 taken)", len(generated))
	}
}

func TestReshuffleKeepsMembership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := 1; i <= 6; i++ {
		e.addTask(t, "task", 100, i)
	}
	team := e.addTeam(t, "owls")

	reshuffled, err := e.teamSvc.Reshuffle(ctx, team.ID)
	if err != nil {
		t.Fatalf("reshuffle: %v", err)
	}
	if len(reshuffled.TaskQueue) != 6 {
		t.Fatalf("queue length = %d, want 6", len(reshuffled.TaskQueue))
	}

	before := append([]string(nil), team.TaskQueue...)
	after := append([]string(nil), reshuffled.TaskQueue...)
	sort.Strings(before)
	sort.Strings(after)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("reshuffle changed membership: %v vs %v", team.TaskQueue, reshuffled.TaskQueue)
		}
	}
}

func TestDeleteTeamCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	task := e.addTask(t, "arch", 100, 1)
	team := e.addTeam(t, "owls")

	if _, err := e.submission.Start(ctx, team.ID, task.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	e.clock.Advance(time.Second)
	e.upload(t, team.ID, task.ID)

	if err := e.teamSvc.Delete(ctx, team.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	subs, err := e.subs.ListByTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("submissions survived team delete: %d", len(subs))
	}
}

func TestDeleteAdminRefused(t *testing.T) {
	e := newEnv(t)
	admin := e.addAdmin(t)

	if err := e.teamSvc.Delete(context.Background(), admin.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}
