package model

// LeaderboardEntry is one ranked row of the published leaderboard.
// TotalPoints is the sum of base points over completed attempts plus photo
// points over completed and blocked attempts; TotalElapsedMs sums elapsed
// time over completed attempts only.
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	AvatarColor    string `json:"avatarColor"`
	CompletedTasks int    `json:"completedTasks"`
	TotalPoints    int    `json:"totalPoints"`
	TotalElapsedMs int64  `json:"totalElapsedMs"`
}

// AdminStats is the dashboard overview for the admin panel.
type AdminStats struct {
	Teams       int64 `json:"teams"`
	Tasks       int64 `json:"tasks"`
	Submissions int64 `json:"submissions"`
	Completed   int64 `json:"completed"`
	Blocked     int64 `json:"blocked"`
	InProgress  int64 `json:"inProgress"`
}
