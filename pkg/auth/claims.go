package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role identifies the class of actor behind a token.
type Role string

const (
	RoleUser     Role = "user"
	RoleMerchant Role = "merchant"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleMerchant:
		return true
	}
	return false
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SubjectID uuid.UUID
	Role      Role
}

// AccessTokenClaims represents the typed JWT presented by clients. SubjectID
// is the user id for shoppers and the merchant id for merchant tokens.
type AccessTokenClaims struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Role      Role      `json:"role"`
	jwt.RegisteredClaims
}
