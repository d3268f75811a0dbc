package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminAuth(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextAdminEmail))
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	valid := jwt.MapClaims{"sub": "admin@vogueclinic.com", "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix()}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signed(t, valid, "other"), http.StatusUnauthorized},
		{"not admin", "Bearer " + signed(t, jwt.MapClaims{"sub": "x", "role": "staff", "exp": time.Now().Add(time.Hour).Unix()}, testSecret), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.MapClaims{"sub": "x", "role": RoleAdmin, "exp": time.Now().Add(-time.Hour).Unix()}, testSecret), http.StatusUnauthorized},
		{"valid", "Bearer " + signed(t, valid, testSecret), http.StatusOK},
	}

	r := protectedRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "admin@vogueclinic.com", w.Body.String())
			}
		})
	}
}

func TestRateLimiterPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/book", NewRateLimiter(60, 2, zap.NewNop()).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, hit("10.0.0.1"))
	assert.Equal(t, http.StatusCreated, hit("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	assert.Equal(t, http.StatusCreated, hit("10.0.0.2"))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://vogueclinic.com"}))
	r.POST("/api/bookings", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/bookings", nil)
	req.Header.Set("Origin", "https://vogueclinic.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://vogueclinic.com", w.Header().Get("Access-Control-Allow-Origin"))
}
