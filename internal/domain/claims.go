package domain

import "github.com/golang-jwt/jwt/v5"

// CoachClaims is the JWT payload carrying the current coach identity.
// Tokens are minted by the external auth collaborator; this core only
// verifies and reads them.
type CoachClaims struct {
	CoachID string `json:"coach_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}
