package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/util"
	"golang.org/x/crypto/bcrypt"
)

// Session is the result of a successful register or login: the account plus
// a fresh token pair. The refresh token travels back to the client only via
// an httpOnly cookie; the access token goes in the response body.
type Session struct {
	User         models.User
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the session lifecycle over the credential store,
// the token ledger and the token codec.
type AuthService struct {
	users  db.UserStore
	ledger db.TokenLedger
	codec  *TokenCodec
	cfg    config.Config
	log    *slog.Logger
}

func NewAuthService(users db.UserStore, ledger db.TokenLedger, codec *TokenCodec, cfg config.Config, log *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		ledger: ledger,
		codec:  codec,
		cfg:    cfg,
		log:    log,
	}
}

// Register creates an account and opens its first session. The admin role is
// only assignable when the email is on the configured allow-list.
func (s *AuthService) Register(ctx context.Context, email, password string, role models.Role) (Session, error) {
	if role == models.RoleAdmin && !s.cfg.AdminAllowed(email) {
		s.log.Warn("non-whitelisted email tried to register as admin", "email", email)
		return Session{}, ErrAdminRestricted
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return Session{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, db.CreateUser{
		Username: util.GenUsername(),
		Email:    email,
		PwdHash:  string(hash),
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID.Hex(), "role", user.Role)
	return s.startSession(ctx, user)
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// startSession issues the token pair and records the refresh token in the
// ledger. Ordering matters: if the ledger insert fails, no tokens reach the
// caller, so every live access token has a revocable refresh record behind
// it.
func (s *AuthService) startSession(ctx context.Context, user models.User) (Session, error) {
	userID := user.ID.Hex()

	accessToken, err := s.codec.IssueAccessToken(userID)
	if err != nil {
		return Session{}, err
	}

	refreshToken, err := s.codec.IssueRefreshToken(userID)
	if err != nil {
		return Session{}, err
	}

	if err := s.ledger.InsertToken(ctx, refreshToken, user.ID); err != nil {
		return Session{}, fmt.Errorf("persist refresh token: %w", err)
	}

	s.log.Info("refresh token created", "user_id", userID, "token", util.TokenTag(refreshToken))

	return Session{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a live refresh token for a new access token. The ledger
// check runs before cryptographic verification, so a logged-out token is
// rejected even while its signature is still valid. The refresh token itself
// is not rotated; it stays usable until expiry or logout.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	exists, err := s.ledger.TokenExists(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("check ledger: %w", err)
	}
	if !exists {
		return "", ErrRefreshReused
	}

	claims, err := s.codec.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	return s.codec.IssueAccessToken(claims.UserID)
}

// Logout removes the refresh token's ledger record and is idempotent: a
// token that is already gone still logs out cleanly.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := s.ledger.DeleteToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	s.log.Info("refresh token revoked", "token", util.TokenTag(refreshToken))
	return nil
}
