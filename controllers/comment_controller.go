package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// CommentController exposes comments on the public, private and admin
// surfaces.
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a CommentController.
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// Create handles POST /users/:userId/comments?eventId=.
func (c *CommentController) Create(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	eventID, err := queryEventID(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.NewCommentDto
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	comment, err := c.comments.CreateComment(userID, eventID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, comment)
}

// Update handles PATCH /users/:userId/comments/:commentId.
func (c *CommentController) Update(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	commentID, err := pathID(ctx, "commentId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.NewCommentDto
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	comment, err := c.comments.UpdateComment(userID, commentID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /users/:userId/comments/:commentId.
func (c *CommentController) Delete(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	commentID, err := pathID(ctx, "commentId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	if err := c.comments.DeleteComment(userID, commentID); err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListOwn handles GET /users/:userId/comments.
func (c *CommentController) ListOwn(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	comments, err := c.comments.GetUserComments(userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// ListForEvent handles GET /events/:eventId/comments.
func (c *CommentController) ListForEvent(ctx *gin.Context) {
	eventID, err := pathID(ctx, "eventId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	comments, err := c.comments.GetEventComments(eventID, from, size)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// Get handles GET /comments/:commentId.
func (c *CommentController) Get(ctx *gin.Context) {
	commentID, err := pathID(ctx, "commentId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	comment, err := c.comments.GetComment(commentID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// SearchAdmin handles GET /admin/comments.
func (c *CommentController) SearchAdmin(ctx *gin.Context) {
	events, err := queryUintList(ctx, "events")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	authors, err := queryUintList(ctx, "authors")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	comments, err := c.comments.SearchComments(services.CommentQuery{
		Events:  events,
		Authors: authors,
		Status:  models.CommentStatus(strings.ToUpper(ctx.Query("status"))),
		From:    from,
		Size:    size,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comments)
}

// Moderate handles PATCH /admin/comments/:commentId?status=.
func (c *CommentController) Moderate(ctx *gin.Context) {
	commentID, err := pathID(ctx, "commentId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	status := models.CommentStatus(strings.ToUpper(ctx.Query("status")))

	comment, err := c.comments.ModerateComment(commentID, status)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

func queryEventID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Query("eventId"), 10, 64)
	if err != nil || id == 0 {
		return 0, models.Validationf("eventId must be a positive number")
	}
	return uint(id), nil
}
