package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/config"
	"github.com/morsechimwai/blog-api/db"
	"github.com/morsechimwai/blog-api/models"
	"github.com/morsechimwai/blog-api/response"
	"github.com/morsechimwai/blog-api/service"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCodec(accessTTL time.Duration) *service.TokenCodec {
	return service.NewTokenCodec(config.Config{
		AccessSecret:    "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Body {
	t.Helper()
	var body response.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/", Authenticate(testCodec(time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decodeBody(t, rec)
		require.Equal(t, response.CodePermissionDenied, body.Code)
		require.Contains(t, body.Message, "couldn't find a valid access token")
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	t.Parallel()

	codec := testCodec(-time.Minute)
	token, err := codec.IssueAccessToken(bson.NewObjectID().Hex())
	require.NoError(t, err)

	router := gin.New()
	router.GET("/", Authenticate(testCodec(time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, decodeBody(t, rec).Message, "expired")
}

func TestAuthenticateInvalidToken(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/", Authenticate(testCodec(time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, decodeBody(t, rec).Message, "invalid")
}

func TestAuthenticateStoresUserID(t *testing.T) {
	t.Parallel()

	codec := testCodec(time.Minute)
	userID := bson.NewObjectID()
	token, err := codec.IssueAccessToken(userID.Hex())
	require.NoError(t, err)

	var got bson.ObjectID
	router := gin.New()
	router.GET("/", Authenticate(codec), func(c *gin.Context) {
		got = UserID(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, got)
}

type roleStore struct {
	mu    sync.Mutex
	users map[bson.ObjectID]models.User
}

func (s *roleStore) FindUserByID(_ context.Context, id bson.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return models.User{}, db.ErrNotFound
}

func (s *roleStore) CreateUser(context.Context, db.CreateUser) (models.User, error) {
	panic("not used")
}
func (s *roleStore) FindUserByEmail(context.Context, string) (models.User, error) {
	panic("not used")
}
func (s *roleStore) EmailExists(context.Context, string) (bool, error)    { panic("not used") }
func (s *roleStore) UsernameExists(context.Context, string) (bool, error) { panic("not used") }
func (s *roleStore) ListUsers(context.Context, int, int) ([]models.User, int64, error) {
	panic("not used")
}
func (s *roleStore) UpdateUser(context.Context, models.User) error   { panic("not used") }
func (s *roleStore) DeleteUser(context.Context, bson.ObjectID) error { panic("not used") }

func authorizeRouter(store db.UserStore, userID bson.ObjectID, roles ...models.Role) *gin.Engine {
	router := gin.New()
	router.GET("/",
		func(c *gin.Context) { c.Set(ctxUserID, userID) },
		Authorize(store, discardLogger(), roles...),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func TestAuthorizeAllowsListedRole(t *testing.T) {
	t.Parallel()

	userID := bson.NewObjectID()
	store := &roleStore{users: map[bson.ObjectID]models.User{
		userID: {ID: userID, Role: models.RoleUser},
	}}

	rec := httptest.NewRecorder()
	authorizeRouter(store, userID, models.RoleAdmin, models.RoleUser).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorizeBlocksUnlistedRole(t *testing.T) {
	t.Parallel()

	userID := bson.NewObjectID()
	store := &roleStore{users: map[bson.ObjectID]models.User{
		userID: {ID: userID, Role: models.RoleUser},
	}}

	rec := httptest.NewRecorder()
	authorizeRouter(store, userID, models.RoleAdmin).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, response.CodePermissionDenied, decodeBody(t, rec).Code)
}

func TestAuthorizeDeletedUser(t *testing.T) {
	t.Parallel()

	store := &roleStore{users: map[bson.ObjectID]models.User{}}

	rec := httptest.NewRecorder()
	authorizeRouter(store, bson.NewObjectID(), models.RoleUser).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, response.CodeNotFound, decodeBody(t, rec).Code)
}

type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memCounter) Incr(key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[key]++
	return m.counts[key], nil
}

func TestRateLimitBlocksAboveLimit(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.GET("/", RateLimit(&memCounter{}, 2, time.Minute, discardLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, want, rec.Code, "request %d", i+1)
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	t.Parallel()

	store := &memCounter{err: context.DeadlineExceeded}
	router := gin.New()
	router.GET("/", RateLimit(store, 1, time.Minute, discardLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
