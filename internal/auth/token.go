package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/config"
	"taskdeck/internal/models"
)

// TokenManager issues and verifies the signed session tokens carried by the
// session cookie. Verification checks signature, issuer, audience and expiry
// in a single parse; an invalid token is indistinguishable from an absent one
// as far as the access gate is concerned.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenManager(cfg config.SessionConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TTL,
	}
}

// Issue signs a session token for the given profile. The role claim is
// embedded here, at issuance, and trusted verbatim at verification time.
func (m *TokenManager) Issue(user models.UserProfile) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UID:     user.UID,
		Email:   user.Email,
		Name:    user.DisplayName,
		Picture: user.PhotoURL,
		Role:    user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	//sign with the secret key and return
	return token.SignedString(m.secret)
}

// Verify parses and validates a session token string. Any failure - bad
// signature, wrong issuer or audience, expired - comes back as an error; the
// caller treats all of them the same way.
func (m *TokenManager) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
	)
	if err != nil {
		return nil, fmt.Errorf("verify session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("verify session token: token invalid")
	}

	return claims, nil
}
