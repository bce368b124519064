package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/services"
	"github.com/dchirkov/eventum/utils"
)

// EventController exposes events on the private, admin and public surfaces.
type EventController struct {
	events *services.EventService
}

// NewEventController creates an EventController.
func NewEventController(events *services.EventService) *EventController {
	return &EventController{events: events}
}

// Create handles POST /users/:userId/events.
func (c *EventController) Create(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.NewEventDto
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	event, err := c.events.CreateEvent(userID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, event)
}

// ListOwn handles GET /users/:userId/events.
func (c *EventController) ListOwn(ctx *gin.Context) {
	userID, err := pathID(ctx, "userId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	events, err := c.events.GetUserEvents(userID, from, size)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, events)
}

// GetOwn handles GET /users/:userId/events/:eventId.
func (c *EventController) GetOwn(ctx *gin.Context) {
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

	event, err := c.events.GetUserEvent(userID, eventID)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// UpdateOwn handles PATCH /users/:userId/events/:eventId.
func (c *EventController) UpdateOwn(ctx *gin.Context) {
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
	var req dto.UpdateEventUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	event, err := c.events.UpdateEventByUser(userID, eventID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// SearchAdmin handles GET /admin/events.
func (c *EventController) SearchAdmin(ctx *gin.Context) {
	users, err := queryUintList(ctx, "users")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	categories, err := queryUintList(ctx, "categories")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	rangeStart, err := queryTime(ctx, "rangeStart")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	rangeEnd, err := queryTime(ctx, "rangeEnd")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	var states []models.EventState
	for _, s := range queryStringList(ctx, "states") {
		states = append(states, models.EventState(strings.ToUpper(s)))
	}

	events, err := c.events.SearchEventsAdmin(services.AdminEventQuery{
		Users:      users,
		States:     states,
		Categories: categories,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		From:       from,
		Size:       size,
	})
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, events)
}

// UpdateAdmin handles PATCH /admin/events/:eventId.
func (c *EventController) UpdateAdmin(ctx *gin.Context) {
	eventID, err := pathID(ctx, "eventId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	var req dto.UpdateEventAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBadRequest(ctx, err.Error())
		return
	}

	event, err := c.events.UpdateEventByAdmin(eventID, req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, event)
}

// ListPublic handles GET /events.
func (c *EventController) ListPublic(ctx *gin.Context) {
	categories, err := queryUintList(ctx, "categories")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	paid, err := queryBool(ctx, "paid")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	rangeStart, err := queryTime(ctx, "rangeStart")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	rangeEnd, err := queryTime(ctx, "rangeEnd")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	onlyAvailable, err := queryBool(ctx, "onlyAvailable")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	from, size, err := pageParams(ctx)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	sortKey := strings.ToUpper(ctx.DefaultQuery("sort", "EVENT_DATE"))
	if sortKey != "EVENT_DATE" && sortKey != "VIEWS" {
		utils.RespondError(ctx, models.Validationf("sort must be EVENT_DATE or VIEWS"))
		return
	}

	q := services.PublicEventQuery{
		Text:       ctx.Query("text"),
		Categories: categories,
		Paid:       paid,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Sort:       sortKey,
		From:       from,
		Size:       size,
	}
	if onlyAvailable != nil {
		q.OnlyAvailable = *onlyAvailable
	}

	events, err := c.events.GetPublicEvents(q, ctx.ClientIP())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, events)
}

// GetPublic handles GET /events/:eventId.
func (c *EventController) GetPublic(ctx *gin.Context) {
	eventID, err := pathID(ctx, "eventId")
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	event, err := c.events.GetPublicEvent(eventID, ctx.ClientIP())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, event)
}
