package models

import "time"

// EventState is the moderation lifecycle of an event.
type EventState string

const (
	EventPending   EventState = "PENDING"
	EventPublished EventState = "PUBLISHED"
	EventCanceled  EventState = "CANCELED"
)

// Event is a happening users can request to participate in.
// Relations are stored as id references and resolved with explicit lookups;
// there is no lazy association loading.
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:120;not null" json:"title"`
	Annotation  string `gorm:"size:2000;not null" json:"annotation"`
	Description string `gorm:"size:7000;not null" json:"description"`
	CategoryID  uint   `gorm:"index;not null" json:"category_id"`
	InitiatorID uint   `gorm:"index;not null" json:"initiator_id"`
	LocationID  uint   `gorm:"not null" json:"location_id"`
	CreatedOn   time.Time
	EventDate   time.Time `gorm:"index;not null"`
	PublishedOn *time.Time
	Paid        bool `gorm:"not null"`
	// ParticipantLimit caps CONFIRMED requests; 0 means unlimited.
	ParticipantLimit  int        `gorm:"not null;default:0"`
	RequestModeration bool       `gorm:"not null;default:true"`
	State             EventState `gorm:"size:20;not null;index" json:"state"`
}
