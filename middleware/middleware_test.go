package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"gebedsrooster/metrics"
	"gebedsrooster/utils"
)

type staticVerifier map[string]string

func (v staticVerifier) VerifyToken(ctx context.Context, idToken string) (string, error) {
	if uid, ok := v[idToken]; ok {
		return uid, nil
	}
	return "", errors.New("bad token")
}

func newEngine(t *testing.T, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.SetLogger(zaptest.NewLogger(t))
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFirebaseAuthRequired(t *testing.T) {
	r := newEngine(t, FirebaseAuthMiddleware(staticVerifier{"good": "u1"}, false))

	assert.Equal(t, http.StatusUnauthorized, get(r, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, map[string]string{"Authorization": "Bearer bad"}).Code)

	rec := get(r, map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestFirebaseAuthOptional(t *testing.T) {
	r := newEngine(t, FirebaseAuthMiddleware(staticVerifier{"good": "u1"}, true))

	rec := get(r, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = get(r, map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	assert.Equal(t, "u1", get(r, map[string]string{"Authorization": "Bearer good"}).Body.String())
}

func TestRateLimitPerIP(t *testing.T) {
	r := newEngine(t, RateLimitMiddleware(2))
	a := map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}
	b := map[string]string{"X-Real-IP": "10.0.0.9"}

	assert.Equal(t, http.StatusOK, get(r, a).Code)
	assert.Equal(t, http.StatusOK, get(r, a).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, a).Code)
	assert.Equal(t, http.StatusOK, get(r, b).Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newEngine(t, RequestLogger(metrics.New()))

	rec := get(r, map[string]string{"X-Request-ID": "abc"})
	assert.Equal(t, "abc", rec.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, get(r, nil).Header().Get("X-Request-ID"))
}

func TestGetClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"skips garbage", map[string]string{"X-Forwarded-For": "unknown, 203.0.113.8"}, "203.0.113.8"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.2 "}, "198.51.100.2"},
		{"peer", nil, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.header {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
