package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amanjaiswal-07/youtube-backend/config"
)

// AccessClaims is carried by the short lived access token.
type AccessClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	jwt.RegisteredClaims
}

// RefreshClaims only identifies the user; the token itself is also stored on
// the user document so it can be revoked.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenSubject is the user data baked into a freshly issued access token.
type TokenSubject struct {
	ID       string
	Email    string
	Username string
	Fullname string
}

type TokenMaker struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenMaker(cfg *config.Config) *TokenMaker {
	return &TokenMaker{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		now:           time.Now,
	}
}

func (m *TokenMaker) AccessTTL() time.Duration  { return m.accessTTL }
func (m *TokenMaker) RefreshTTL() time.Duration { return m.refreshTTL }

// GenerateTokens signs a new access/refresh pair for the subject.
func (m *TokenMaker) GenerateTokens(sub TokenSubject) (access string, refresh string, err error) {
	now := m.now()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, &AccessClaims{
		Email:    sub.Email,
		Username: sub.Username,
		Fullname: sub.Fullname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}).SignedString(m.accessSecret)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, &RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}).SignedString(m.refreshSecret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return access, refresh, nil
}

// ValidateAccessToken verifies signature and expiry and returns the claims.
func (m *TokenMaker) ValidateAccessToken(signed string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.parse(signed, claims, m.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *TokenMaker) ValidateRefreshToken(signed string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.parse(signed, claims, m.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (m *TokenMaker) parse(signed string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(signed, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("token is expired: %w", err)
		}
		return fmt.Errorf("the token is invalid: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return errors.New("the token is invalid: missing subject")
	}
	return nil
}
