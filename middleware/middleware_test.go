package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodgram/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	utils.SetRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { utils.SetRedis(nil) })

	r := gin.New()
	r.Use(RecoveryMiddleware())
	whoami := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("user_id")})
	}
	r.GET("/private", JWTAuthMiddleware(testSecret), whoami)
	r.GET("/public", OptionalJWTMiddleware(testSecret), whoami)
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func doGet(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newTestRouter(t)
	token, err := utils.GenerateJWT(5, "user", testSecret)
	require.NoError(t, err)

	t.Run("NoHeader", func(t *testing.T) {
		w := doGet(r, "/private", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Bearer", func(t *testing.T) {
		w := doGet(r, "/private", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":5}`, w.Body.String())
	})

	t.Run("TokenPrefix", func(t *testing.T) {
		w := doGet(r, "/private", "Token "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other, _ := utils.GenerateJWT(5, "user", "other")
		w := doGet(r, "/private", "Bearer "+other)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Revoked", func(t *testing.T) {
		require.NoError(t, utils.BlacklistToken(context.Background(), utils.GetRedis(), token, time.Minute))
		w := doGet(r, "/private", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "revoked")
	})
}

func TestOptionalJWTMiddleware(t *testing.T) {
	r := newTestRouter(t)
	token, err := utils.GenerateJWT(9, "user", testSecret)
	require.NoError(t, err)

	w := doGet(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())

	w = doGet(r, "/public", "Bearer "+token)
	assert.JSONEq(t, `{"user_id":9}`, w.Body.String())

	w = doGet(r, "/public", "Bearer broken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := newTestRouter(t)
	w := doGet(r, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}
