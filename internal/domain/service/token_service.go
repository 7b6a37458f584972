package service

import "github.com/golang-jwt/jwt/v5"

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID  uint   `json:"uid"`
	IsStaff bool   `json:"is_staff,omitempty"`
	Type    string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies JWTs.
type TokenService interface {
	// GenerateTokens creates an access token and a refresh token for a user.
	GenerateTokens(userID uint, isStaff bool) (accessToken string, refreshToken string, err error)

	// ValidateToken verifies signature and expiry and checks the token type.
	ValidateToken(tokenString string, tokenType string) (*Claims, error)
}
