package controllers

import (
	"net/http"
	"time"

	"hotel-reservation/middleware"
	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

// UserController exposes account management. Every route is superadmin-only;
// the service enforces that on the actor, the controller just forwards it.
type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) List(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	users, err := uc.Users.List(*actor, services.UserFilter{
		Role:   models.Role(c.Query("role")),
		Search: c.Query("search"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"users": users,
		"filters": gin.H{
			"roles": []models.Role{
				models.RoleSuperadmin,
				models.RoleAdmin,
				models.RoleStaff,
				models.RoleGuest,
			},
		},
	})
}

func (uc *UserController) Show(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := uc.Users.Get(*actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

type updateUserPayload struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

func (uc *UserController) Update(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload updateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := uc.Users.Update(*actor, id, payload.Name, payload.Email, models.Role(payload.Role))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := uc.Users.Delete(*actor, id, time.Now()); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "User deleted successfully."})
}
