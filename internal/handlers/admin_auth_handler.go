package handlers

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

const adminTokenTTL = 24 * time.Hour

type AdminCredentials struct {
	Email        string
	PasswordHash string
	JWTSecret    string
}

type AdminAuthHandler struct {
	creds AdminCredentials
	audit audit.Recorder
	now   func() time.Time
}

func NewAdminAuthHandler(creds AdminCredentials, audit audit.Recorder) *AdminAuthHandler {
	return &AdminAuthHandler{creds: creds, audit: audit, now: time.Now}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.creds.Email == "" || h.creds.PasswordHash == "" ||
		subtle.ConstantTimeCompare([]byte(email), []byte(strings.ToLower(h.creds.Email))) != 1 ||
		bcrypt.CompareHashAndPassword([]byte(h.creds.PasswordHash), []byte(req.Password)) != nil {

		h.audit.Dispatch(audit.Event{
			Action:   audit.ActionAdminLoginFailed,
			Entity:   "admin",
			Metadata: map[string]string{"email": email, "ip": c.ClientIP()},
		})
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	token, expiresAt, err := h.generateToken(email)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create session")
		return
	}

	h.audit.Dispatch(audit.Event{
		Action:   audit.ActionAdminLogin,
		Actor:    email,
		Entity:   "admin",
		Metadata: map[string]string{"email": email, "ip": c.ClientIP()},
	})

	httpresp.OK(c, gin.H{
		"token":     token,
		"expiresAt": expiresAt,
	})
}

func (h *AdminAuthHandler) generateToken(email string) (string, time.Time, error) {
	now := h.now()
	exp := now.Add(adminTokenTTL)

	claims := jwt.MapClaims{
		"sub":  email,
		"role": middleware.RoleAdmin,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.creds.JWTSecret))
	return signed, exp, err
}
