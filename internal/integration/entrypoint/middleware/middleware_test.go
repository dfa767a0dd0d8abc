package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, id.String())
	})
	engine.GET("/", handlers...)
	return engine
}

func hit(engine *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_Memory(t *testing.T) {
	limiter := NewRateLimiterWithConfig(2, time.Minute)
	engine := newEngine(limiter.Middleware())

	assert.Equal(t, http.StatusOK, hit(engine, "").Code)
	assert.Equal(t, http.StatusOK, hit(engine, "").Code)
	rec := hit(engine, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeRateLimited))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	require.NoError(t, limiter.Reset(context.Background()))
	assert.Equal(t, http.StatusOK, hit(engine, "").Code)
}

func TestRateLimiter_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewRedisRateLimiter(client, 1, time.Minute)
	engine := newEngine(limiter.Middleware())

	assert.Equal(t, http.StatusOK, hit(engine, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(engine, "").Code)
	assert.True(t, mr.TTL("ratelimit:203.0.113.7") > 0)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, hit(engine, "").Code)

	require.NoError(t, limiter.Reset(context.Background()))
	assert.False(t, mr.Exists("ratelimit:203.0.113.7"))
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiterWithConfig(1, time.Minute)
	limiter.Disable()
	engine := newEngine(limiter.Middleware())
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(engine, "").Code)
	}
}

type stubTokens struct {
	adapter.TokenService
	userID uuid.UUID
}

func (s stubTokens) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	switch token {
	case "good":
		return &adapter.TokenClaims{UserID: s.userID, Email: "amina@example.com"}, nil
	case "expired":
		return nil, domainerror.NewAuthError(domainerror.ErrCodeExpiredToken, "token has expired", domainerror.ErrExpiredToken)
	}
	return nil, domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "bad token", domainerror.ErrInvalidToken)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	auth := NewAuthMiddleware(stubTokens{userID: userID})
	engine := newEngine(auth.Authenticate())

	rec := hit(engine, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())

	rec = hit(engine, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeMissingToken))

	rec = hit(engine, "Token good")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = hit(engine, "Bearer expired")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeExpiredToken))
}

func TestOptionalAuthenticate(t *testing.T) {
	userID := uuid.New()
	engine := newEngine(NewAuthMiddleware(stubTokens{userID: userID}).OptionalAuthenticate())

	assert.Equal(t, userID.String(), hit(engine, "Bearer good").Body.String())
	assert.Equal(t, uuid.Nil.String(), hit(engine, "").Body.String())
	assert.Equal(t, uuid.Nil.String(), hit(engine, "Bearer nope").Body.String())
}
