package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// RequestController exposes the participation-request lifecycle.
type RequestController struct {
	requests *services.RequestService
}

// NewRequestController creates a RequestController.
func NewRequestController(requests *services.RequestService) *RequestController {
	return &RequestController{requests: requests}
}

// Create handles POST /users/:userId/requests?eventId=.
func (c *RequestController) Create(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	eventID, err := strconv.ParseUint(ctx.Query("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		utils.RespondError(ctx, models.Validationf("eventId must be a positive number"))
		return
	}

	request, err := c.requests.CreateRequest(userID, uint(eventID))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, request)
}

// ListOwn handles GET /users/:userId/requests.
func (c *RequestController) ListOwn(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	requests, err := c.requests.GetUserRequests(userID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// Cancel handles PATCH /users/:userId/requests/:requestId/cancel.
func (c *RequestController) Cancel(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	requestID, err := pathID(ctx, "requestId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	request, err := c.requests.CancelRequest(userID, requestID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, request)
}

// ListForEvent handles GET /users/:userId/events/:eventId/requests.
func (c *RequestController) ListForEvent(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	eventID, err := pathID(ctx, "eventId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	requests, err := c.requests.GetEventRequests(userID, eventID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}

// UpdateStatus handles PATCH /users/:userId/events/:eventId/requests.
func (c *RequestController) UpdateStatus(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	eventID, err := pathID(ctx, "eventId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.RequestStatusUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	result, err := c.requests.UpdateRequestStatus(userID, eventID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
