package model

import "time"

// SideQuest is an optional bonus challenge with no timer.
type SideQuest struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

type SideQuestStatus string

const (
	SideQuestPending  SideQuestStatus = "pending"
	SideQuestApproved SideQuestStatus = "approved"
	SideQuestRejected SideQuestStatus = "rejected"
)

// SideQuestSubmission links a team, a side quest, and a photo. One per
// (team, sideQuest) pair. Outcomes never feed the main leaderboard.
type SideQuestSubmission struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	TeamID      string          `json:"teamId" bson:"teamId"`
	SideQuestID string          `json:"sideQuestId" bson:"sideQuestId"`
	PhotoURL    string          `json:"photoUrl" bson:"photoUrl"`
	PhotoKey    string          `json:"-" bson:"photoKey"`
	Status      SideQuestStatus `json:"status" bson:"status"`
	ReviewedBy  string          `json:"reviewedBy" bson:"reviewedBy"`
	ReviewedAt  *time.Time      `json:"reviewedAt" bson:"reviewedAt"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
}

// SideQuestListItem is a quest with the requesting team's progress attached.
type SideQuestListItem struct {
	SideQuest
	Submitted bool            `json:"submitted"`
	Status    SideQuestStatus `json:"status,omitempty"`
	PhotoURL  string          `json:"photoUrl,omitempty"`
}

// SideQuestSummary counts the requesting team's submissions by status.
type SideQuestSummary struct {
	Submitted int `json:"submitted"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Pending   int `json:"pending"`
}

// GalleryItem is one entry of the side quest photo gallery.
type GalleryItem struct {
	ID          string          `json:"id"`
	PhotoURL    string          `json:"photoUrl"`
	Status      SideQuestStatus `json:"status"`
	TeamName    string          `json:"teamName"`
	AvatarColor string          `json:"avatarColor"`
	QuestTitle  string          `json:"questTitle"`
	CreatedAt   time.Time       `json:"createdAt"`
}
