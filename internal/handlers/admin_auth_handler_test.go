package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

func adminRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewAdminAuthHandler(AdminCredentials{
		Email:        "admin@vogueclinic.com",
		PasswordHash: string(hash),
		JWTSecret:    "jwt-test",
	}, audit.Nop{})

	r := gin.New()
	r.POST("/api/admin/login", h.Login)
	r.GET("/api/admin/ping", middleware.AdminAuth("jwt-test"), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestAdminLoginIssuesUsableToken(t *testing.T) {
	r := adminRouter(t)

	w := doJSON(r, http.MethodPost, "/api/admin/login", map[string]any{"email": "Admin@VogueClinic.com", "password": "s3cret!"})
	require.Equal(t, http.StatusOK, w.Code)

	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(r, http.MethodGet, "/api/admin/ping", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	r := adminRouter(t)

	w := doJSON(r, http.MethodPost, "/api/admin/login", map[string]any{"email": "admin@vogueclinic.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/login", map[string]any{"email": "other@vogueclinic.com", "password": "s3cret!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/login", map[string]any{"email": "admin@vogueclinic.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
