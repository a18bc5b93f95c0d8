package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the session token. Role is optional; an absent
// role means a regular user.
type Claims struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Role    string `json:"role,omitempty"`
	//has standard jwt fields issuer, audience, expiry etc
	jwt.RegisteredClaims
}

// Profile rebuilds the stored profile view carried by the token.
func (c *Claims) Profile() UserProfile {
	return UserProfile{
		UID:         c.UID,
		Email:       c.Email,
		DisplayName: c.Name,
		PhotoURL:    c.Picture,
		Role:        c.Role,
	}
}

// IsAdmin reports whether the token asserts the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
