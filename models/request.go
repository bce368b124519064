package models

import "time"

// RequestStatus is the lifecycle of a participation request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

// ParticipationRequest records one user's intent to attend one event.
// At most one non-canceled request may exist per (event, requester) pair.
type ParticipationRequest struct {
	ID          uint          `gorm:"primaryKey"`
	EventID     uint          `gorm:"index:idx_requests_event;not null"`
	RequesterID uint          `gorm:"index;not null"`
	Created     time.Time     `gorm:"not null"`
	Status      RequestStatus `gorm:"size:20;not null;index:idx_requests_event"`
}
