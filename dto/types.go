package dto

import "github.com/dchirkov/eventum/models"

// UserDto is the full admin view of a user.
type UserDto struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserShortDto identifies an initiator or author inside event payloads.
type UserShortDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewUserRequest is the admin user-creation payload.
type NewUserRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=250"`
	Email string `json:"email" binding:"required,email,max=254"`
}

// CategoryDto is the wire form of a category.
type CategoryDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewCategoryDto is the category creation/update payload.
type NewCategoryDto struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// LocationDto carries event coordinates.
type LocationDto struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewEventDto is the payload for creating an event.
type NewEventDto struct {
	Title             string      `json:"title" binding:"required,min=3,max=120"`
	Annotation        string      `json:"annotation" binding:"required,min=20,max=2000"`
	Description       string      `json:"description" binding:"required,min=20,max=7000"`
	Category          uint        `json:"category" binding:"required"`
	EventDate         DateTime    `json:"eventDate" binding:"required"`
	Location          LocationDto `json:"location" binding:"required"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  *int        `json:"participantLimit"`
	RequestModeration *bool       `json:"requestModeration"`
}

// UpdateEventUserRequest carries an initiator's partial event update.
// Nil fields are left untouched.
type UpdateEventUserRequest struct {
	Title             *string      `json:"title" binding:"omitempty,min=3,max=120"`
	Annotation        *string      `json:"annotation" binding:"omitempty,min=20,max=2000"`
	Description       *string      `json:"description" binding:"omitempty,min=20,max=7000"`
	Category          *uint        `json:"category"`
	EventDate         *DateTime    `json:"eventDate"`
	Location          *LocationDto `json:"location"`
	Paid              *bool        `json:"paid"`
	ParticipantLimit  *int         `json:"participantLimit"`
	RequestModeration *bool        `json:"requestModeration"`
	StateAction       string       `json:"stateAction" binding:"omitempty,oneof=SEND_TO_REVIEW CANCEL_REVIEW"`
}

// UpdateEventAdminRequest carries an administrator's partial event update.
type UpdateEventAdminRequest struct {
	Title             *string      `json:"title" binding:"omitempty,min=3,max=120"`
	Annotation        *string      `json:"annotation" binding:"omitempty,min=20,max=2000"`
	Description       *string      `json:"description" binding:"omitempty,min=20,max=7000"`
	Category          *uint        `json:"category"`
	EventDate         *DateTime    `json:"eventDate"`
	Location          *LocationDto `json:"location"`
	Paid              *bool        `json:"paid"`
	ParticipantLimit  *int         `json:"participantLimit"`
	RequestModeration *bool        `json:"requestModeration"`
	StateAction       string       `json:"stateAction" binding:"omitempty,oneof=PUBLISH_EVENT REJECT_EVENT"`
}

// EventFullDto is the complete wire form of an event, enriched with derived
// confirmed-request and view counts.
type EventFullDto struct {
	ID                uint              `json:"id"`
	Title             string            `json:"title"`
	Annotation        string            `json:"annotation"`
	Description       string            `json:"description"`
	Category          CategoryDto       `json:"category"`
	Initiator         UserShortDto      `json:"initiator"`
	CreatedOn         DateTime          `json:"createdOn"`
	EventDate         DateTime          `json:"eventDate"`
	PublishedOn       *DateTime         `json:"publishedOn,omitempty"`
	Location          LocationDto       `json:"location"`
	Paid              bool              `json:"paid"`
	ParticipantLimit  int               `json:"participantLimit"`
	RequestModeration bool              `json:"requestModeration"`
	State             models.EventState `json:"state"`
	ConfirmedRequests int64             `json:"confirmedRequests"`
	Views             int64             `json:"views"`
}

// EventShortDto is the condensed listing form of an event.
type EventShortDto struct {
	ID                uint         `json:"id"`
	Title             string       `json:"title"`
	Annotation        string       `json:"annotation"`
	Category          CategoryDto  `json:"category"`
	Initiator         UserShortDto `json:"initiator"`
	EventDate         DateTime     `json:"eventDate"`
	Paid              bool         `json:"paid"`
	ConfirmedRequests int64        `json:"confirmedRequests"`
	Views             int64        `json:"views"`
}

// ParticipationRequestDto is the wire form of a participation request.
type ParticipationRequestDto struct {
	ID        uint                 `json:"id"`
	Created   DateTime             `json:"created"`
	Event     uint                 `json:"event"`
	Requester uint                 `json:"requester"`
	Status    models.RequestStatus `json:"status"`
}

// RequestStatusUpdateRequest asks to confirm or reject a batch of pending
// requests for one event.
type RequestStatusUpdateRequest struct {
	RequestIDs []uint               `json:"requestIds" binding:"required,min=1"`
	Status     models.RequestStatus `json:"status" binding:"required,oneof=CONFIRMED REJECTED"`
}

// RequestStatusUpdateResult partitions the batch by its final status.
type RequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestDto `json:"confirmedRequests"`
	RejectedRequests  []ParticipationRequestDto `json:"rejectedRequests"`
}

// NewCompilationDto is the compilation creation payload.
type NewCompilationDto struct {
	Title  string `json:"title" binding:"required,min=1,max=50"`
	Pinned bool   `json:"pinned"`
	Events []uint `json:"events"`
}

// UpdateCompilationRequest carries a partial compilation update.
type UpdateCompilationRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=50"`
	Pinned *bool   `json:"pinned"`
	Events []uint  `json:"events"`
}

// CompilationDto is the wire form of a compilation with its events.
type CompilationDto struct {
	ID     uint            `json:"id"`
	Title  string          `json:"title"`
	Pinned bool            `json:"pinned"`
	Events []EventShortDto `json:"events"`
}

// NewCommentDto is the comment creation/update payload.
type NewCommentDto struct {
	Text string `json:"text" binding:"required,min=1,max=1000"`
}

// CommentDto is the full wire form of a comment.
type CommentDto struct {
	ID        uint                 `json:"id"`
	Text      string               `json:"text"`
	Event     uint                 `json:"event"`
	Author    uint                 `json:"author"`
	Status    models.CommentStatus `json:"status"`
	CreatedOn DateTime             `json:"createdOn"`
	UpdatedOn *DateTime            `json:"updatedOn,omitempty"`
}

// CommentShortDto is the public listing form of an approved comment.
type CommentShortDto struct {
	ID        uint     `json:"id"`
	Text      string   `json:"text"`
	Author    uint     `json:"author"`
	CreatedOn DateTime `json:"createdOn"`
}

// EndpointHit is the stats-service hit recording payload.
type EndpointHit struct {
	App       string    `json:"app" binding:"required"`
	URI       string    `json:"uri" binding:"required"`
	IP        string    `json:"ip" binding:"required"`
	Timestamp *DateTime `json:"timestamp"`
}

// ViewStats is one aggregated view-count row, never stored.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
