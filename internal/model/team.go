package model

import "time"

type Role string

const (
	RoleTeam  Role = "team"
	RoleAdmin Role = "admin"
)

// Team represents a participating team (or the admin account, which is a
// team with role "admin").
type Team struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	PasswordHash string    `json:"-" bson:"password"`
	AvatarColor  string    `json:"avatarColor" bson:"avatarColor"`
	Role         Role      `json:"role" bson:"role"`

	// TaskQueue is the ordered list of task IDs this team should complete.
	// Snapshot taken at creation time, optionally shuffled; regenerated only
	// by an explicit admin reshuffle.
	TaskQueue []string `json:"taskQueue" bson:"taskQueue"`

	// ProfileEdited flips to true after the team's one allowed profile edit.
	ProfileEdited bool      `json:"profileEdited" bson:"profileEdited"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// TeamInfo is the public shape of a team embedded in auth responses.
type TeamInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatarColor"`
	Role        Role   `json:"role"`
}

func (t *Team) Info() TeamInfo {
	return TeamInfo{ID: t.ID, Name: t.Name, AvatarColor: t.AvatarColor, Role: t.Role}
}
