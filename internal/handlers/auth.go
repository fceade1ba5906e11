package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/studentlife/taskboard/internal/constants"
	"github.com/studentlife/taskboard/internal/dto"
	apierrors "github.com/studentlife/taskboard/internal/errors"
	"github.com/studentlife/taskboard/internal/middleware"
	"github.com/studentlife/taskboard/internal/models"
	"github.com/studentlife/taskboard/internal/services"
)

// AuthHandler coordinates sign-in, sign-out and account self-management.
type AuthHandler struct {
	identity *services.IdentityService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type sessionUserResponse struct {
	User    dto.UserDTO     `json:"user"`
	Profile *dto.ProfileDTO `json:"profile"`
}

func toSessionUserResponse(user *models.User, profile *models.Profile) sessionUserResponse {
	resp := sessionUserResponse{User: dto.ToUserDTO(*user)}
	if profile != nil {
		p := dto.ToProfileDTO(*profile)
		resp.Profile = &p
	}
	return resp
}

// Login authenticates and stores the email in the session for restoration
// across reloads.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	user, profile, err := h.identity.SignIn(req.Email, req.Password)
	if err != nil {
		respondIdentityError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyEmail, user.Email)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, toSessionUserResponse(user, profile))
}

// Logout clears the session and its durable email key.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the restored session identity.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	session := sessions.Default(c)
	email, _ := session.Get(constants.SessionKeyEmail).(string)
	user, profile, err := h.identity.RestoreSession(email)
	if err != nil || user.ID != userID {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, toSessionUserResponse(user, profile))
}

// UpdateEmail changes the caller's email and refreshes the session key.
func (h *AuthHandler) UpdateEmail(c *gin.Context) {
	type UpdateEmailRequest struct {
		Email string `json:"email" binding:"required"`
	}

	userID, _ := middleware.GetUserID(c)

	var req UpdateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	profile, err := h.identity.UpdateEmail(userID, req.Email)
	if err != nil {
		respondIdentityError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyEmail, profile.Email)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// UpdatePassword replaces the caller's password.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	type UpdatePasswordRequest struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}

	userID, _ := middleware.GetUserID(c)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	if err := h.identity.UpdatePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondIdentityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated",
	})
}

// UpdateProfile shallow-merges optional fields into the caller's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	type UpdateProfileRequest struct {
		FullName     *string `json:"full_name"`
		AvatarURL    *string `json:"avatar_url"`
		DepartmentID *string `json:"department_id"`
	}

	userID, _ := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Validation(c, "Invalid request body")
		return
	}

	profile, err := h.identity.UpdateProfile(userID, services.ProfilePatch{
		FullName:     req.FullName,
		AvatarURL:    req.AvatarURL,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		respondIdentityError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

func respondIdentityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrWrongPassword):
		apierrors.InvalidCredentials(c, err.Error())
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Validation(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProfileNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
