package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memUsers struct {
	mu    sync.Mutex
	users map[bson.ObjectID]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[bson.ObjectID]models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, in db.CreateUser) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == in.Email {
			return models.User{}, db.ErrDuplicate
		}
	}
	user := models.User{
		ID:       bson.NewObjectID(),
		Username: in.Username,
		Email:    in.Email,
		Password: in.PwdHash,
		Role:     in.Role,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, db.ErrNotFound
}

func (m *memUsers) FindUserByID(_ context.Context, id bson.ObjectID) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return models.User{}, db.ErrNotFound
}

func (m *memUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := m.FindUserByEmail(ctx, email)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) ListUsers(_ context.Context, limit, offset int) ([]models.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, int64(len(users)), nil
}

func (m *memUsers) UpdateUser(_ context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return db.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUsers) DeleteUser(_ context.Context, id bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

type memLedger struct {
	mu         sync.Mutex
	tokens     map[string]bson.ObjectID
	failInsert bool
}

func newMemLedger() *memLedger {
	return &memLedger{tokens: make(map[string]bson.ObjectID)}
}

func (m *memLedger) InsertToken(_ context.Context, token string, userID bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert {
		return errors.New("ledger down")
	}
	m.tokens[token] = userID
	return nil
}

func (m *memLedger) TokenExists(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[token]
	return ok, nil
}

func (m *memLedger) DeleteToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

func (m *memLedger) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

func testConfig() config.Config {
	return config.Config{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		AdminEmails:     []string{"boss@x.com"},
	}
}

func testAuthService(users *memUsers, ledger *memLedger) (*AuthService, *TokenCodec) {
	cfg := testConfig()
	codec := NewTokenCodec(cfg)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(users, ledger, codec, cfg, log), codec
}

func TestRegisterOpensVerifiableSession(t *testing.T) {
	t.Parallel()

	users, ledger := newMemUsers(), newMemLedger()
	svc, codec := testAuthService(users, ledger)

	sess, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, sess.User.Role)
	require.NotEmpty(t, sess.User.Username)

	claims, err := codec.VerifyAccessToken(sess.AccessToken)
	require.NoError(t, err)
	require.Equal(t, sess.User.ID.Hex(), claims.UserID)

	exists, err := ledger.TokenExists(context.Background(), sess.RefreshToken)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRegisterAdminNeedsAllowList(t *testing.T) {
	t.Parallel()

	svc, _ := testAuthService(newMemUsers(), newMemLedger())

	_, err := svc.Register(context.Background(), "stranger@x.com", "password1", models.RoleAdmin)
	require.ErrorIs(t, err, ErrAdminRestricted)

	sess, err := svc.Register(context.Background(), "boss@x.com", "password1", models.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, sess.User.Role)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc, _ := testAuthService(newMemUsers(), newMemLedger())

	_, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@x.com", "password2", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterFailsWhenLedgerInsertFails(t *testing.T) {
	t.Parallel()

	ledger := newMemLedger()
	ledger.failInsert = true
	svc, _ := testAuthService(newMemUsers(), ledger)

	_, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.Error(t, err)
	require.Equal(t, 0, ledger.size())
}

func TestLoginDeniesBadCredentialsGenerically(t *testing.T) {
	t.Parallel()

	svc, _ := testAuthService(newMemUsers(), newMemLedger())

	_, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)

	// Unknown email and wrong password produce the same error.
	_, err = svc.Login(context.Background(), "nobody@x.com", "password1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "a@x.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesTokenPairAndLedgerRecord(t *testing.T) {
	t.Parallel()

	users, ledger := newMemUsers(), newMemLedger()
	svc, codec := testAuthService(users, ledger)

	_, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)

	sess, err := svc.Login(context.Background(), "a@x.com", "password1")
	require.NoError(t, err)

	_, err = codec.VerifyAccessToken(sess.AccessToken)
	require.NoError(t, err)

	exists, err := ledger.TokenExists(context.Background(), sess.RefreshToken)
	require.NoError(t, err)
	require.True(t, exists)

	// Two logins are two independent sessions, each revocable on its own.
	require.Equal(t, 2, ledger.size())
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	t.Parallel()

	svc, codec := testAuthService(newMemUsers(), newMemLedger())

	// Cryptographically valid, but never recorded in the ledger.
	token, err := codec.IssueRefreshToken(bson.NewObjectID().Hex())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), token)
	require.ErrorIs(t, err, ErrRefreshReused)
}

func TestRefreshExpiredTokenKeepsLedgerRecord(t *testing.T) {
	t.Parallel()

	ledger := newMemLedger()
	svc, _ := testAuthService(newMemUsers(), ledger)

	expiredCfg := testConfig()
	expiredCfg.RefreshTokenTTL = -time.Minute
	expired, err := NewTokenCodec(expiredCfg).IssueRefreshToken(bson.NewObjectID().Hex())
	require.NoError(t, err)
	require.NoError(t, ledger.InsertToken(context.Background(), expired, bson.NewObjectID()))

	_, err = svc.Refresh(context.Background(), expired)
	require.ErrorIs(t, err, ErrTokenExpired)

	// No implicit cleanup on failed refresh.
	exists, err := ledger.TokenExists(context.Background(), expired)
	require.NoError(t, err)
	require.True(t, exists)
}

func TestRefreshDoesNotRotateToken(t *testing.T) {
	t.Parallel()

	svc, codec := testAuthService(newMemUsers(), newMemLedger())

	sess, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)

	first, err := svc.Refresh(context.Background(), sess.RefreshToken)
	require.NoError(t, err)
	second, err := svc.Refresh(context.Background(), sess.RefreshToken)
	require.NoError(t, err)

	for _, token := range []string{first, second} {
		claims, err := codec.VerifyAccessToken(token)
		require.NoError(t, err)
		require.Equal(t, sess.User.ID.Hex(), claims.UserID)
	}
}

func TestLogoutRevokesAndIsIdempotent(t *testing.T) {
	t.Parallel()

	ledger := newMemLedger()
	svc, _ := testAuthService(newMemUsers(), ledger)

	sess, err := svc.Register(context.Background(), "a@x.com", "password1", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sess.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), sess.RefreshToken))

	_, err = svc.Refresh(context.Background(), sess.RefreshToken)
	require.ErrorIs(t, err, ErrRefreshReused)
}
