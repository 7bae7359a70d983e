package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"taskman/internal/auth"
	"taskman/internal/model"
)

// liveTokens is an in-memory stand-in for the session token table.
type liveTokens struct {
	user   *model.User
	tokens map[string]bool
}

func (l *liveTokens) Add(ctx context.Context, token *model.SessionToken) error {
	l.tokens[token.Token] = true
	return nil
}

func (l *liveTokens) FindUser(ctx context.Context, token string) (*model.User, error) {
	if !l.tokens[token] {
		return nil, gorm.ErrRecordNotFound
	}
	return l.user, nil
}

func (l *liveTokens) Remove(ctx context.Context, userID uuid.UUID, token string) error {
	delete(l.tokens, token)
	return nil
}

func (l *liveTokens) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	l.tokens = map[string]bool{}
	return nil
}

func newSessionEcho(t *testing.T, secret string, repo *liveTokens) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.GET("/users/me", func(c echo.Context) error {
		user := auth.CurrentUser(c)
		assert.NotNil(t, user)
		assert.NotEmpty(t, auth.CurrentToken(c))
		return c.JSON(http.StatusOK, user)
	}, requireSession(secret, repo)...)
	return e
}

func get(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireSession(t *testing.T) {
	const secret = "test-secret"
	jwtService := auth.NewJWTService(secret)
	user := &model.User{Name: "Ann", Email: "ann@x.com"}

	repo := &liveTokens{user: user, tokens: map[string]bool{}}
	e := newSessionEcho(t, secret, repo)

	token, err := jwtService.GenerateToken(user.ID)
	assert.NoError(t, err)
	repo.tokens[token] = true

	t.Run("live token passes", func(t *testing.T) {
		rec := get(e, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := get(e, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad signature rejected", func(t *testing.T) {
		forged, err := auth.NewJWTService("other-secret").GenerateToken(user.ID)
		assert.NoError(t, err)
		rec := get(e, "Bearer "+forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked token rejected on the very next request", func(t *testing.T) {
		rec := get(e, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)

		delete(repo.tokens, token)

		rec = get(e, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
