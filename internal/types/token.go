package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims carried by an API access token. RaterID is the
// compact numeric identity used by the rating store and the collaborative
// models; UserID is the account identity.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID  uuid.UUID `json:"user_id"`
	RaterID int       `json:"rater_id"`
}
