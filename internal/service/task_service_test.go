package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"questhunt/internal/model"
)

func TestListForTeamMergesNewTasks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.addTask(t, "arch", 100, 1)
	e.addTask(t, "wall", 100, 2)
	team := e.addTeam(t, "owls")

	// A task added after team creation shows up at the end of the list
	// without touching the stored queue.
	late := e.addTask(t, "garden", 150, 3)

	items, err := e.taskSvc.ListForTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[2].ID != late.ID {
		t.Fatalf("late task not appended last: %+v", items)
	}

	stored, err := e.teams.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(stored.TaskQueue) != 2 {
		t.Fatalf("stored queue grew to %d, merge must stay read-time", len(stored.TaskQueue))
	}
}

func TestListForTeamSkipsDeactivated(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addTask(t, "arch", 100, 1)
	e.addTask(t, "wall", 100, 2)
	team := e.addTeam(t, "owls")

	inactive := false
	if _, err := e.taskSvc.Update(ctx, a.ID, &model.TaskUpdate{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	items, err := e.taskSvc.ListForTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].ID == a.ID {
		t.Fatalf("deactivated task still listed")
	}
}

func TestListForTeamAttachesStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addTask(t, "arch", 100, 1)
	e.addTask(t, "wall", 100, 2)
	team := e.addTeam(t, "owls")

	if _, err := e.submission.Start(ctx, team.ID, a.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	e.clock.Advance(45 * time.Second)
	e.upload(t, team.ID, a.ID)

	items, err := e.taskSvc.ListForTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	byID := make(map[string]model.TaskListItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	if byID[a.ID].Status != "completed" || byID[a.ID].ElapsedMs == nil {
		t.Fatalf("completed task item: %+v", byID[a.ID])
	}
	for id, item := range byID {
		if id != a.ID && item.Status != "not-started" {
			t.Fatalf("untouched task status = %q", item.Status)
		}
	}
}

func TestCreateTaskDefaultsPoints(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	task, err := e.taskSvc.Create(ctx, &model.Task{
		Title:        "arch",
		Description:  "find the arch",
		LocationHint: "entrance",
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Points != 100 {
		t.Fatalf("points = %d, want the configured default 100", task.Points)
	}

	if _, err := e.taskSvc.Create(ctx, &model.Task{Title: "no hint"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestDeleteTaskCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	task := e.addTask(t, "arch", 100, 1)
	team := e.addTeam(t, "owls")

	if _, err := e.submission.Start(ctx, team.ID, task.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := e.taskSvc.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	sub, err := e.submission.Get(ctx, team.ID, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sub != nil {
		t.Fatalf("attempt survived task delete")
	}
}
