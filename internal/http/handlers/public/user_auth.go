package public

import (
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// accountView is the private shape of the caller's own account.
type accountView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newAccountView(user *models.User) accountView {
	return accountView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// UserRegisterRequest carries the registration form.
type UserRegisterRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Email          string                       `json:"email" binding:"required"`
	FirstName      string                       `json:"first_name"`
	LastName       string                       `json:"last_name"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// UserRegister creates a reader account.
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaSceneRegister, req.CaptchaPayload); err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "captcha verify failed")
		return
	}

	user, err := h.UserAuthService.Register(service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "register failed")
		return
	}
	response.Success(c, newAccountView(user))
}

// UserLoginRequest carries the login form.
type UserLoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	CaptchaPayload service.CaptchaVerifyPayload `json:"captcha_payload"`
}

// UserLogin verifies credentials and issues a token.
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.CaptchaService.Verify(service.CaptchaSceneLogin, req.CaptchaPayload); err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "captcha verify failed")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "login failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       newAccountView(user),
	})
}

// GetMe serves the caller's own account.
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserAuthService.GetByID(userID)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "get account failed")
		return
	}
	response.Success(c, newAccountView(user))
}

// UpdateProfileRequest carries the profile edit form.
type UpdateProfileRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateMyProfile edits the caller's own profile.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdateInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "update profile failed")
		return
	}
	response.Success(c, newAccountView(user))
}

// ChangePasswordRequest carries the password change form.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeMyPassword rotates the caller's password and revokes old
// tokens.
func (h *Handler) ChangeMyPassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.UserAuthService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "change password failed")
		return
	}
	response.Success(c, gin.H{"changed": true})
}
