package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/morsechimwai/blog-api/config"
	jwt "github.com/golang-jwt/jwt/v4"
)

// Subject tags separating the two token families. A token presented for the
// wrong purpose fails verification even when its signature is good.
const (
	subjectAccess  = "accessApi"
	subjectRefresh = "refreshToken"
)

// Claims is the signed payload of both token families.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenCodec signs and verifies the two token families. Access and refresh
// tokens use distinct secrets and lifetimes, so leaking one secret cannot
// forge the other family. The codec never touches storage.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenCodec(cfg config.Config) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// IssueAccessToken signs a short-lived token authorizing API calls for the
// given user.
func (c *TokenCodec) IssueAccessToken(userID string) (string, error) {
	return c.issue(userID, subjectAccess, c.accessSecret, c.accessTTL)
}

// IssueRefreshToken signs the longer-lived token exchanged for new access
// tokens.
func (c *TokenCodec) IssueRefreshToken(userID string) (string, error) {
	return c.issue(userID, subjectRefresh, c.refreshSecret, c.refreshTTL)
}

// VerifyAccessToken checks an access token and returns its claims. Fails
// with ErrTokenExpired past expiry and ErrTokenInvalid otherwise.
func (c *TokenCodec) VerifyAccessToken(token string) (*Claims, error) {
	return c.verify(token, subjectAccess, c.accessSecret)
}

// VerifyRefreshToken checks a refresh token against the refresh secret.
func (c *TokenCodec) VerifyRefreshToken(token string) (*Claims, error) {
	return c.verify(token, subjectRefresh, c.refreshSecret)
}

func (c *TokenCodec) issue(userID, subject string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", subject, err)
	}
	return token, nil
}

func (c *TokenCodec) verify(token, subject string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !parsed.Valid || claims.Subject != subject || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
