package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/robinoyako/sips/internal/service/auth"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	svc          *auth.Service
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter. secureCookie marks the
// session cookie HTTPS-only and should be set everywhere except plain-HTTP
// local setups.
func NewAuthHandler(svc *auth.Service, secureCookie bool, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, secureCookie: secureCookie, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and sets the signed session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username dan password wajib diisi"})
		return
	}

	token, role, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.logger, err, "login gagal")
		return
	}

	maxAge := int(h.svc.SessionTTL().Seconds())
	c.SetCookie(auth.SessionCookie, token, maxAge, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "role": role})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
