package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// UserController exposes the admin user registry.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Create handles POST /admin/users.
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.NewUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	user, err := c.users.CreateUser(req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// List handles GET /admin/users.
func (c *UserController) List(ctx *gin.Context) {
	ids, err := queryUintList(ctx, "ids")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	users, err := c.users.GetUsers(ids, from, size)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Delete handles DELETE /admin/users/:userId.
func (c *UserController) Delete(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	if err := c.users.DeleteUser(userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
