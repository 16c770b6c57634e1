package service

import (
	"context"
	"testing"
	"time"
)

func TestStatsOverview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	taskA := e.addTask(t, "arch", 100, 1)
	taskB := e.addTask(t, "wall", 100, 2)
	team := e.addTeam(t, "owls")
	other := e.addTeam(t, "ravens")
	e.addAdmin(t)

	// owls complete A, ravens stay in progress on B.
	if _, err := e.submission.Start(ctx, team.ID, taskA.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	e.clock.Advance(time.Second)
	e.upload(t, team.ID, taskA.ID)
	if _, err := e.submission.Start(ctx, other.ID, taskB.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	stats, err := e.stats.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if stats.Teams != 2 {
		t.Fatalf("teams = %d, want 2 (admin not counted)", stats.Teams)
	}
	if stats.Tasks != 2 {
		t.Fatalf("tasks = %d", stats.Tasks)
	}
	if stats.Submissions != 2 || stats.Completed != 1 || stats.InProgress != 1 || stats.Blocked != 0 {
		t.Fatalf("submission counts: %+v", stats)
	}
}
