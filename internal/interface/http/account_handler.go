package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/supgamedex/gamedex-api/internal/application"
	"github.com/supgamedex/gamedex-api/internal/interface/middleware"
	"github.com/supgamedex/gamedex-api/pkg/response"
	"github.com/supgamedex/gamedex-api/pkg/validation"
)

type AccountHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAccountHandler(svc *application.AccountService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,strongpwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register - POST /api/cadastro
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.FirstName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEmailTaken):
			response.Error(c, http.StatusBadRequest, "email already registered")
		case errors.Is(err, application.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			h.Logger.WithError(err).Error("register failed")
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"first_name": u.FirstName, "email": u.Email})
}

// ConfirmEmail - GET /api/confirm-email?token=
func (h *AccountHandler) ConfirmEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusBadRequest, "token is required")
		return
	}
	if err := h.Svc.Confirm(c.Request.Context(), token); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidToken):
			response.Error(c, http.StatusBadRequest, "invalid or expired token")
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found")
		default:
			h.Logger.WithError(err).Error("confirm email failed")
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	response.Message(c, "email confirmed")
}

// Login - POST /api/login
func (h *AccountHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.ToDetails(err))
		return
	}
	token, u, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, application.ErrAccountInactive):
			response.Error(c, http.StatusForbidden, "account not confirmed")
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"email":      u.Email,
			"first_name": u.FirstName,
			"id":         u.ID,
		},
	})
}

// ForgotPassword - POST /api/forgot-password?email=
func (h *AccountHandler) ForgotPassword(c *gin.Context) {
	email := c.Query("email")
	if err := h.Svc.RequestPasswordReset(c.Request.Context(), email); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, "invalid email address")
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found")
		case errors.Is(err, application.ErrMailDispatch):
			response.Error(c, http.StatusInternalServerError, "failed to send reset email")
		default:
			h.Logger.WithError(err).Error("forgot password failed")
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	response.Message(c, "reset email sent")
}

// ResetPassword - POST /api/reset-password?token=&new_password=
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	newPassword := c.Query("new_password")
	if token == "" || newPassword == "" {
		response.Error(c, http.StatusBadRequest, "token and new_password are required")
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), token, newPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidToken):
			response.Error(c, http.StatusBadRequest, "invalid or expired token")
		case errors.Is(err, application.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user not found")
		default:
			h.Logger.WithError(err).Error("reset password failed")
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	response.Message(c, "password updated")
}

// Me - GET /api/me (bearer token required)
func (h *AccountHandler) Me(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	if email == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"email": email})
}
