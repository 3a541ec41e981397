package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenRecord is the server-side half of a session. At most one live record
// exists per user.
type TokenRecord struct {
	UserID    string    `json:"userId" bson:"userId"`
	TokenID   string    `json:"tokenId" bson:"tokenId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// SessionClaims are the claims embedded in a signed credential. The token id
// travels as the registered "jti" claim.
type SessionClaims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"userType"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	Credential string    `json:"token"`
	TokenID    string    `json:"tokenId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// Principal is the verified caller of a protected request.
type Principal struct {
	UserID  string `json:"userId"`
	Role    Role   `json:"userType"`
	TokenID string `json:"tokenId"`
}

// VerifyOptions narrows a verification. Empty fields are not checked.
type VerifyOptions struct {
	Role    string
	OwnerID string
}

// RevokeTarget selects which records a revocation removes. TokenID takes
// precedence when both are set.
type RevokeTarget struct {
	TokenID string
	UserID  string
}
