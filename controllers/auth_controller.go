package controllers

import (
	"storerating/pkg/resp"
	"storerating/services"
	"storerating/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
}
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=16,password_policy"`
}

type AuthController struct {
	Auth *services.AuthService
	Log  logrus.FieldLogger
}

func NewAuthController(auth *services.AuthService, log logrus.FieldLogger) *AuthController {
	return &AuthController{Auth: auth, Log: log}
}

// POST /api/auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, a.Log, &req) {
		return
	}

	token, user, err := a.Auth.Register(c.Request.Context(), services.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		resp.Error(c, a.Log, err)
		return
	}

	resp.Created(c, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    userJSON(user),
	})
}

// POST /api/auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, a.Log, &req) {
		return
	}

	token, user, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, a.Log, err)
		return
	}

	resp.OK(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    userJSON(user),
	})
}

// PUT /api/auth/update-password (ต้อง login)
func (a *AuthController) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if !bindJSON(c, a.Log, &req) {
		return
	}

	if err := a.Auth.UpdatePassword(c.Request.Context(), utils.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		resp.Error(c, a.Log, err)
		return
	}
	resp.OK(c, gin.H{"message": "Password updated successfully"})
}

// GET /api/auth/me (ต้อง login)
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Auth.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, a.Log, err)
		return
	}
	resp.OK(c, gin.H{"user": userJSON(user)})
}
