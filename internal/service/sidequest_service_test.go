package service

import (
	"context"
	"errors"
	"testing"

	"questhunt/internal/model"
)

func (e *env) addQuest(t *testing.T, title string, active bool) *model.SideQuest {
	t.Helper()
	quest, err := e.sideQuest.Create(context.Background(), &model.SideQuest{
		Title:       title,
		Description: "do " + title,
		IsActive:    active,
	})
	if err != nil {
		t.Fatalf("create quest: %v", err)
	}
	return quest
}

func (e *env) submitQuest(t *testing.T, teamID, questID string) *model.SideQuestSubmission {
	t.Helper()
	sub, err := e.sideQuest.Submit(context.Background(), teamID, questID, "image/png", 1024, photoBody())
	if err != nil {
		t.Fatalf("submit quest: %v", err)
	}
	return sub
}

func TestSideQuestSubmitOncePerPair(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quest := e.addQuest(t, "selfie", true)
	team := e.addTeam(t, "owls")

	sub := e.submitQuest(t, team.ID, quest.ID)
	if sub.Status != model.SideQuestPending {
		t.Fatalf("status = %q, want pending", sub.Status)
	}

	if _, err := e.sideQuest.Submit(ctx, team.ID, quest.ID, "image/png", 1024, photoBody()); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second submit: got %v, want ErrAlreadySubmitted", err)
	}
	if e.photos.count() != 1 {
		t.Fatalf("photo store holds %d objects, want 1", e.photos.count())
	}
}

func TestSideQuestSubmitInactive(t *testing.T) {
	e := newEnv(t)
	quest := e.addQuest(t, "selfie", false)
	team := e.addTeam(t, "owls")

	_, err := e.sideQuest.Submit(context.Background(), team.ID, quest.ID, "image/png", 1024, photoBody())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestSideQuestReview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quest := e.addQuest(t, "selfie", true)
	team := e.addTeam(t, "owls")
	admin := e.addAdmin(t)

	sub := e.submitQuest(t, team.ID, quest.ID)

	approved, err := e.sideQuest.Review(ctx, admin.ID, sub.ID, true)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.SideQuestApproved || approved.ReviewedBy != admin.ID || approved.ReviewedAt == nil {
		t.Fatalf("approved state: %+v", approved)
	}

	// The verdict can be flipped.
	rejected, err := e.sideQuest.Review(ctx, admin.ID, sub.ID, false)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != model.SideQuestRejected {
		t.Fatalf("status = %q, want rejected", rejected.Status)
	}

	if _, err := e.sideQuest.Review(ctx, admin.ID, "missing", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing submission: got %v, want ErrNotFound", err)
	}
}

func TestSideQuestListForTeam(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	selfie := e.addQuest(t, "selfie", true)
	e.addQuest(t, "swag", true)
	e.addQuest(t, "retired", false)
	team := e.addTeam(t, "owls")
	admin := e.addAdmin(t)

	sub := e.submitQuest(t, team.ID, selfie.ID)
	if _, err := e.sideQuest.Review(ctx, admin.ID, sub.ID, true); err != nil {
		t.Fatalf("approve: %v", err)
	}

	items, summary, err := e.sideQuest.ListForTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2 (inactive hidden)", len(items))
	}
	if summary.Submitted != 1 || summary.Approved != 1 || summary.Pending != 0 {
		t.Fatalf("summary: %+v", summary)
	}

	for _, item := range items {
		if item.ID == selfie.ID {
			if !item.Submitted || item.Status != model.SideQuestApproved {
				t.Fatalf("selfie item: %+v", item)
			}
		} else if item.Submitted {
			t.Fatalf("untouched quest marked submitted: %+v", item)
		}
	}
}

func TestSideQuestGalleryFilter(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	selfie := e.addQuest(t, "selfie", true)
	swag := e.addQuest(t, "swag", true)
	team := e.addTeam(t, "owls")

	e.submitQuest(t, team.ID, selfie.ID)
	e.submitQuest(t, team.ID, swag.ID)

	all, err := e.sideQuest.Gallery(ctx, "")
	if err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("gallery = %d, want 2", len(all))
	}
	if all[0].TeamName != "owls" || all[0].QuestTitle == "" {
		t.Fatalf("gallery item not hydrated: %+v", all[0])
	}

	filtered, err := e.sideQuest.Gallery(ctx, selfie.ID)
	if err != nil {
		t.Fatalf("filtered gallery: %v", err)
	}
	if len(filtered) != 1 || filtered[0].QuestTitle != "selfie" {
		t.Fatalf("filtered gallery: %+v", filtered)
	}
}

func TestSideQuestDeleteCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quest := e.addQuest(t, "selfie", true)
	team := e.addTeam(t, "owls")

	e.submitQuest(t, team.ID, quest.ID)

	if err := e.sideQuest.Delete(ctx, quest.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	subs, err := e.questSubs.ListByTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("submissions survived quest delete: %d", len(subs))
	}
}
