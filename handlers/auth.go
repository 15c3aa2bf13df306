package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/services/auth"
	"gebedsrooster/utils"
)

// TokenForgetter evicts a cached ID token.
type TokenForgetter interface {
	Forget(ctx context.Context, idToken string) error
}

type AuthHandler struct {
	Service auth.AuthService
	// Tokens, when set, is told about signed-out tokens.
	Tokens TokenForgetter
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// SignInHandler handles POST /api/auth/signin.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.Service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SignUpHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignUpHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.AccountSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.Service.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Account created", zap.String("uid", session.User.UID))
	c.JSON(http.StatusCreated, session)
}

// SignOutHandler handles POST /api/auth/signout.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.Service.SignOut(c.Request.Context(), uid); err != nil {
		respondError(c, err)
		return
	}
	if h.Tokens != nil {
		if err := h.Tokens.Forget(c.Request.Context(), c.GetString("idToken")); err != nil {
			getLogger(c).Warn("failed to evict signed-out token", zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// RequestPasswordResetHandler handles POST /api/auth/password/reset.
func (h *AuthHandler) RequestPasswordResetHandler(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.SendPasswordResetEmail(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

// ConfirmPasswordResetHandler handles POST /api/auth/password/confirm.
func (h *AuthHandler) ConfirmPasswordResetHandler(c *gin.Context) {
	var req models.ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.Service.ConfirmPasswordReset(c.Request.Context(), req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// UpdateProfileHandler handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	user, err := h.Service.UpdateProfile(c.Request.Context(), uid, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.Service.CurrentUser(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// requireUserID reads the id set by the auth middleware.
func requireUserID(c *gin.Context) (string, bool) {
	uid := c.GetString("userID")
	if uid == "" {
		utils.JSONError(c, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return "", false
	}
	return uid, true
}
