package handlers

import (
	"errors"
	"fmt"

	"leadroll/internal/services"
	"leadroll/pkg/jwt"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.Manager
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwt.GetManager(),
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, registrationErrorMessage(err))
		return
	}

	user, err := h.userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to create account")
		return
	}

	response.SuccessWithMessage(c, "Account created", user)
}

// registrationErrorMessage turns the first field validation failure into a
// message the caller can act on
func registrationErrorMessage(err error) string {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		for _, fieldErr := range validationErr {
			switch fieldErr.Field() {
			case "Username":
				return "Username must be 3-50 characters"
			case "Email":
				return "A valid email address is required"
			case "Password":
				return "Password must be at least 8 characters"
			default:
				return fmt.Sprintf("Field %s failed validation", fieldErr.Field())
			}
		}
	}
	return "Invalid registration payload"
}

// Login verifies credentials and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid login payload")
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.ServerError(c, "Login failed")
		return
	}

	if !h.userService.IsActive(user) {
		response.Unauthorized(c, "Account disabled")
		return
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		response.ServerError(c, "Failed to issue token")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_in": int(h.jwtManager.GetTokenDuration().Seconds()),
		"user":       user,
	})
}

// Me returns the authenticated caller
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		response.Unauthorized(c, "No authenticated user")
		return
	}
	response.Success(c, user)
}
