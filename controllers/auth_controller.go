package controllers

import (
	"net/http"

	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users *services.UserService
	JWT   *utils.JWTService
}

func NewAuthController(users *services.UserService, jwt *utils.JWTService) *AuthController {
	return &AuthController{Users: users, JWT: jwt}
}

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a guest account and returns a token for it.
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := ac.Users.Register(payload.Name, payload.Email, payload.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	token, err := ac.JWT.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{"token": token, "user": user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := ac.Users.Authenticate(payload.Email, payload.Password)
	if err != nil {
		// same message whether the email or the password was wrong
		utils.JSONError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := ac.JWT.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"token": token, "user": user})
}
