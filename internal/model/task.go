package model

import "time"

// Task is a single scavenger hunt challenge.
type Task struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"` // riddle text
	LocationHint string    `json:"locationHint" bson:"locationHint"`
	DetailedHint string    `json:"detailedHint" bson:"detailedHint"`
	Points       int       `json:"points" bson:"points"`
	Order        int       `json:"order" bson:"order"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	Lat          *float64  `json:"lat" bson:"lat"`
	Lng          *float64  `json:"lng" bson:"lng"`
	MapLabel     string    `json:"mapLabel" bson:"mapLabel"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// TaskView is a task as a team is allowed to see it. DetailedHint and the
// coordinates are withheld until their reveal delays have elapsed; admins
// always get the full task.
type TaskView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	LocationHint string   `json:"locationHint"`
	DetailedHint string   `json:"detailedHint,omitempty"`
	Points       int      `json:"points"`
	Order        int      `json:"order"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	MapLabel     string   `json:"mapLabel,omitempty"`
}

// TaskUpdate carries an admin task edit; only non-nil fields are applied.
type TaskUpdate struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	LocationHint *string  `json:"locationHint"`
	DetailedHint *string  `json:"detailedHint"`
	Points       *int     `json:"points"`
	Order        *int     `json:"order"`
	IsActive     *bool    `json:"isActive"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	MapLabel     *string  `json:"mapLabel"`
}

// Apply copies the set fields of the update onto the task.
func (u *TaskUpdate) Apply(t *Task) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.LocationHint != nil {
		t.LocationHint = *u.LocationHint
	}
	if u.DetailedHint != nil {
		t.DetailedHint = *u.DetailedHint
	}
	if u.Points != nil {
		t.Points = *u.Points
	}
	if u.Order != nil {
		t.Order = *u.Order
	}
	if u.IsActive != nil {
		t.IsActive = *u.IsActive
	}
	if u.Lat != nil {
		t.Lat = u.Lat
	}
	if u.Lng != nil {
		t.Lng = u.Lng
	}
	if u.MapLabel != nil {
		t.MapLabel = *u.MapLabel
	}
}

// TaskListItem is the summary row for the team task list: no riddle text,
// just enough to pick the next task, plus the team's progress on it.
type TaskListItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	LocationHint string `json:"locationHint"`
	Points       int    `json:"points"`
	Order        int    `json:"order"`
	Status       string `json:"status"` // "not-started" or the submission status
	ElapsedMs    *int64 `json:"elapsedMs"`
}
