package services

import "github.com/dchirkov/eventum/models"

// Allocate resolves a batch of pending requests against remaining capacity.
// Requests are processed in input order: while confirmed < limit the request
// is confirmed, after that every remaining request is rejected. Overflow is
// rejected rather than left pending. The caller supplies the event's current
// confirmed count and must run the whole decision inside one transaction
// holding the event row lock, so confirmed never exceeds limit under
// concurrent allocation.
func Allocate(requests []models.ParticipationRequest, confirmed int64, limit int) (toConfirm, toReject []models.ParticipationRequest) {
	toConfirm = make([]models.ParticipationRequest, 0, len(requests))
	toReject = make([]models.ParticipationRequest, 0)

	for _, r := range requests {
		if confirmed < int64(limit) {
			r.Status = models.RequestConfirmed
			confirmed++
			toConfirm = append(toConfirm, r)
		} else {
			r.Status = models.RequestRejected
			toReject = append(toReject, r)
		}
	}
	return toConfirm, toReject
}

// RejectAll marks every request in the batch rejected, preserving order.
func RejectAll(requests []models.ParticipationRequest) []models.ParticipationRequest {
	out := make([]models.ParticipationRequest, 0, len(requests))
	for _, r := range requests {
		r.Status = models.RequestRejected
		out = append(out, r)
	}
	return out
}

// InitialStatus decides the status a freshly created request starts in.
// Moderation only matters while there is a finite capacity to guard; with
// moderation off or an unlimited event the request is confirmed immediately.
func InitialStatus(event *models.Event) models.RequestStatus {
	if event.RequestModeration && event.ParticipantLimit > 0 {
		return models.RequestPending
	}
	return models.RequestConfirmed
}
