package model

import "github.com/golang-jwt/jwt/v5"

// TeamClaims are the JWT claims carried by every authenticated request.
type TeamClaims struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for team login.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse is returned after login, admin setup and profile updates.
// The token embeds the team name, so profile edits issue a fresh one.
type LoginResponse struct {
	Token string   `json:"token"`
	Team  TeamInfo `json:"team"`
}
