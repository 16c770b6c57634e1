package model

import "time"

type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in-progress"
	SubmissionCompleted  SubmissionStatus = "completed"
	SubmissionBlocked    SubmissionStatus = "blocked"
)

// Submission is the per-(team, task) attempt record. The (teamId, taskId)
// pair is unique; RiddleOpenedAt is set once when the attempt is created and
// never changes afterwards, even across an admin photo reset.
type Submission struct {
	ID     string `json:"id" bson:"_id,omitempty"`
	TeamID string `json:"teamId" bson:"teamId"`
	TaskID string `json:"taskId" bson:"taskId"`

	// Timer fields, server-authoritative.
	RiddleOpenedAt   time.Time  `json:"riddleOpenedAt" bson:"riddleOpenedAt"`
	PhotoSubmittedAt *time.Time `json:"photoSubmittedAt" bson:"photoSubmittedAt"`
	ElapsedMs        *int64     `json:"elapsedMs" bson:"elapsedMs"`

	PhotoURL string `json:"photoUrl" bson:"photoUrl"`
	PhotoKey string `json:"-" bson:"photoKey"` // blob store object key

	Status SubmissionStatus `json:"status" bson:"status"`

	// Admin moderation.
	BlockedAt   *time.Time `json:"blockedAt" bson:"blockedAt"`
	BlockedBy   string     `json:"blockedBy" bson:"blockedBy"`
	BlockReason string     `json:"blockReason" bson:"blockReason"`

	// Admin photo scoring. PhotoPoints nil means not yet scored.
	PhotoPoints *int       `json:"photoPoints" bson:"photoPoints"`
	ScoredAt    *time.Time `json:"scoredAt" bson:"scoredAt"`
	ScoredBy    string     `json:"scoredBy" bson:"scoredBy"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// SubmissionView is the compact shape returned to teams.
type SubmissionView struct {
	ID             string           `json:"id"`
	RiddleOpenedAt time.Time        `json:"riddleOpenedAt"`
	Status         SubmissionStatus `json:"status"`
	ElapsedMs      *int64           `json:"elapsedMs"`
	PhotoURL       string           `json:"photoUrl,omitempty"`
}

func (s *Submission) View() SubmissionView {
	return SubmissionView{
		ID:             s.ID,
		RiddleOpenedAt: s.RiddleOpenedAt,
		Status:         s.Status,
		ElapsedMs:      s.ElapsedMs,
		PhotoURL:       s.PhotoURL,
	}
}

// AdminSubmission is a submission hydrated with team and task metadata for
// the moderation list.
type AdminSubmission struct {
	Submission
	TeamName     string `json:"teamName"`
	AvatarColor  string `json:"avatarColor"`
	TaskTitle    string `json:"taskTitle"`
	TaskOrder    int    `json:"taskOrder"`
	LocationHint string `json:"locationHint"`
}

// FeedItem is one entry of the public photo feed.
type FeedItem struct {
	ID               string     `json:"id"`
	PhotoURL         string     `json:"photoUrl"`
	PhotoSubmittedAt *time.Time `json:"photoSubmittedAt"`
	ElapsedMs        *int64     `json:"elapsedMs"`
	TeamName         string     `json:"teamName"`
	AvatarColor      string     `json:"avatarColor"`
	TaskTitle        string     `json:"taskTitle"`
	LocationHint     string     `json:"locationHint"`
}
