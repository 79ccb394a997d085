package handlers

import (
	"errors"
	"net/http"
	"time"

	"dairyfront/config"
	"dairyfront/middleware"
	"dairyfront/models"
	"dairyfront/services/session"
	"dairyfront/upstream"
	"dairyfront/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler signs users and admins in and out. Credentials are verified by
// the backend; this layer only binds the result to the storefront session.
type AuthHandler struct {
	Backend  *upstream.Client
	Sessions session.Store
}

func NewAuthHandler(backend *upstream.Client, sessions session.Store) *AuthHandler {
	return &AuthHandler{Backend: backend, Sessions: sessions}
}

// bindAuth stores an upstream auth result on the session and mints the
// session token handed to the browser.
func (h *AuthHandler) bindAuth(c *gin.Context, res *upstream.AuthResult, admin bool) {
	sess := middleware.GetSession(c)
	sess.User = &res.User
	sess.Admin = admin
	sess.UpstreamToken = res.Token

	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		getLogger(c).Error("Failed to persist session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed, please try again", "")
		return
	}

	ttl := time.Duration(config.AppConfig.SessionTTLHours) * time.Hour
	token, err := utils.GenerateSessionToken(sess.ID, ttl)
	if err != nil {
		getLogger(c).Error("Failed to generate session token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Login failed, please try again", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": res.User, "token": token})
}

func surfaceAuthError(c *gin.Context, err error, fallback string) {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		utils.JSONError(c, apiErr.Status, apiErr.Error(), "")
		return
	}
	utils.JSONError(c, http.StatusBadGateway, fallback, "")
}

func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	res, err := h.Backend.Login(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		surfaceAuthError(c, err, "Login failed, please try again")
		return
	}
	h.bindAuth(c, res, false)
}

func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	res, err := h.Backend.Register(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		surfaceAuthError(c, err, "Registration failed, please try again")
		return
	}
	h.bindAuth(c, res, false)
}

func (h *AuthHandler) SendOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		utils.JSONError(c, http.StatusBadRequest, "Email is required", "")
		return
	}

	if err := h.Backend.SendOTP(c.Request.Context(), req.Email); err != nil {
		surfaceAuthError(c, err, "Could not send OTP, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

func (h *AuthHandler) AdminLoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	res, err := h.Backend.AdminLogin(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("Admin login failed", zap.String("email", req.Email), zap.Error(err))
		surfaceAuthError(c, err, "Login failed, please try again")
		return
	}
	h.bindAuth(c, res, true)
}

func (h *AuthHandler) AdminRegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request: "+err.Error(), "")
		return
	}

	res, err := h.Backend.AdminRegister(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Warn("Admin registration failed", zap.String("email", req.Email), zap.Error(err))
		surfaceAuthError(c, err, "Registration failed, please try again")
		return
	}
	h.bindAuth(c, res, true)
}

// LogoutHandler revokes the upstream token and drops the session.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.UpstreamToken != "" {
		if err := h.Backend.Logout(c.Request.Context(), sess.UpstreamToken); err != nil {
			// The local session is dropped regardless.
			getLogger(c).Warn("Upstream logout failed", zap.Error(err))
		}
	}
	if err := h.Sessions.Delete(c.Request.Context(), sess.ID); err != nil {
		getLogger(c).Error("Failed to delete session", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler returns the signed-in user from the session.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	sess := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"user": sess.User, "admin": sess.Admin})
}
