package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// RequestService owns the participation-request lifecycle, including the
// capacity allocation that keeps confirmed requests within an event's
// participant limit.
type RequestService struct {
	db *gorm.DB
}

// NewRequestService creates a RequestService.
func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// CreateRequest files a participation request for the given user and event.
// The confirmed-count check and the insert run in one transaction holding
// the event row lock, so two near-simultaneous requests cannot both squeeze
// past a nearly full limit.
func (s *RequestService) CreateRequest(userID, eventID uint) (dto.ParticipationRequestDto, error) {
	var created models.ParticipationRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &models.User{}, userID, "user with id=%d not found"); err != nil {
			return err
		}

		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return models.NotFoundf("event with id=%d not found", eventID)
			}
			return err
		}

		if event.InitiatorID == userID {
			return models.Conflictf("event initiator cannot request participation in own event")
		}
		if event.State != models.EventPublished {
			return models.Conflictf("cannot participate in an unpublished event")
		}

		var duplicates int64
		if err := tx.Model(&models.ParticipationRequest{}).
			Where("event_id = ? AND requester_id = ? AND status <> ?", eventID, userID, models.RequestCanceled).
			Count(&duplicates).Error; err != nil {
			return err
		}
		if duplicates > 0 {
			return models.Conflictf("participation request for this event already exists")
		}

		confirmed, err := countConfirmed(tx, eventID)
		if err != nil {
			return err
		}
		if event.ParticipantLimit > 0 && confirmed >= int64(event.ParticipantLimit) {
			return models.Conflictf("the participant limit has been reached")
		}

		created = models.ParticipationRequest{
			EventID:     eventID,
			RequesterID: userID,
			Created:     time.Now(),
			Status:      InitialStatus(&event),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return dto.ParticipationRequestDto{}, err
	}

	utils.Sugar.Infof("created participation request id=%d event=%d requester=%d status=%s",
		created.ID, created.EventID, created.RequesterID, created.Status)
	return dto.ToParticipationRequestDto(created), nil
}

// GetUserRequests lists all requests filed by the user.
func (s *RequestService) GetUserRequests(userID uint) ([]dto.ParticipationRequestDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return nil, err
	}

	var requests []models.ParticipationRequest
	if err := s.db.Where("requester_id = ?", userID).Order("id").Find(&requests).Error; err != nil {
		return nil, err
	}
	return dto.ToParticipationRequestDtos(requests), nil
}

// CancelRequest moves the caller's own request to CANCELED. Only ownership
// is checked; cancelling an already canceled or rejected request overwrites
// the status again, which keeps the operation idempotent.
func (s *RequestService) CancelRequest(userID, requestID uint) (dto.ParticipationRequestDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return dto.ParticipationRequestDto{}, err
	}

	var request models.ParticipationRequest
	if err := s.db.First(&request, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.ParticipationRequestDto{}, models.NotFoundf("request with id=%d not found", requestID)
		}
		return dto.ParticipationRequestDto{}, err
	}
	if request.RequesterID != userID {
		return dto.ParticipationRequestDto{}, models.NotFoundf(
			"request with id=%d does not belong to user with id=%d", requestID, userID)
	}

	request.Status = models.RequestCanceled
	if err := s.db.Save(&request).Error; err != nil {
		return dto.ParticipationRequestDto{}, err
	}
	return dto.ToParticipationRequestDto(request), nil
}

// GetEventRequests lists requests for an event; only its initiator may look.
func (s *RequestService) GetEventRequests(userID, eventID uint) ([]dto.ParticipationRequestDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return nil, err
	}

	event, err := s.getOwnedEvent(s.db, userID, eventID)
	if err != nil {
		return nil, err
	}

	var requests []models.ParticipationRequest
	if err := s.db.Where("event_id = ?", event.ID).Order("id").Find(&requests).Error; err != nil {
		return nil, err
	}
	return dto.ToParticipationRequestDtos(requests), nil
}

// UpdateRequestStatus bulk-confirms or bulk-rejects pending requests for an
// event owned by the caller. Preconditions are verified before anything is
// mutated; the allocation itself runs in one transaction holding the event
// row lock so partial results are never visible.
func (s *RequestService) UpdateRequestStatus(userID, eventID uint, upd dto.RequestStatusUpdateRequest) (dto.RequestStatusUpdateResult, error) {
	var result dto.RequestStatusUpdateResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &models.User{}, userID, "user with id=%d not found"); err != nil {
			return err
		}

		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return models.NotFoundf("event with id=%d not found", eventID)
			}
			return err
		}
		if event.InitiatorID != userID {
			return models.NotFoundf("user with id=%d is not the initiator of event with id=%d", userID, eventID)
		}

		if !event.RequestModeration || event.ParticipantLimit == 0 {
			return models.Conflictf("request confirmation is not required for this event")
		}

		confirmed, err := countConfirmed(tx, eventID)
		if err != nil {
			return err
		}
		if confirmed >= int64(event.ParticipantLimit) {
			return models.Conflictf("the participant limit has been reached")
		}

		requests, err := s.loadBatch(tx, eventID, upd.RequestIDs)
		if err != nil {
			return err
		}

		var toConfirm, toReject []models.ParticipationRequest
		if upd.Status == models.RequestConfirmed {
			toConfirm, toReject = Allocate(requests, confirmed, event.ParticipantLimit)
		} else {
			toReject = RejectAll(requests)
		}

		for i := range toConfirm {
			if err := tx.Save(&toConfirm[i]).Error; err != nil {
				return err
			}
		}
		for i := range toReject {
			if err := tx.Save(&toReject[i]).Error; err != nil {
				return err
			}
		}

		result = dto.RequestStatusUpdateResult{
			ConfirmedRequests: dto.ToParticipationRequestDtos(toConfirm),
			RejectedRequests:  dto.ToParticipationRequestDtos(toReject),
		}
		return nil
	})
	if err != nil {
		return dto.RequestStatusUpdateResult{}, err
	}

	utils.Sugar.Infof("bulk status update event=%d confirmed=%d rejected=%d",
		eventID, len(result.ConfirmedRequests), len(result.RejectedRequests))
	return result, nil
}

// loadBatch fetches the targeted requests in the order the caller listed
// them and verifies existence, event membership and pending status before
// anything is written.
func (s *RequestService) loadBatch(tx *gorm.DB, eventID uint, ids []uint) ([]models.ParticipationRequest, error) {
	var found []models.ParticipationRequest
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, models.NotFoundf("some requests were not found")
	}

	byID := make(map[uint]models.ParticipationRequest, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	ordered := make([]models.ParticipationRequest, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, models.NotFoundf("some requests were not found")
		}
		if r.EventID != eventID {
			return nil, models.Validationf("request with id=%d does not belong to event with id=%d", r.ID, eventID)
		}
		if r.Status != models.RequestPending {
			return nil, models.Conflictf("only pending requests can change status")
		}
		ordered = append(ordered, r)
	}
	return ordered, nil
}

func (s *RequestService) getOwnedEvent(tx *gorm.DB, userID, eventID uint) (models.Event, error) {
	var event models.Event
	if err := tx.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return event, models.NotFoundf("event with id=%d not found", eventID)
		}
		return event, err
	}
	if event.InitiatorID != userID {
		return event, models.NotFoundf("user with id=%d is not the initiator of event with id=%d", userID, eventID)
	}
	return event, nil
}

func countConfirmed(tx *gorm.DB, eventID uint) (int64, error) {
	var confirmed int64
	err := tx.Model(&models.ParticipationRequest{}).
		Where("event_id = ? AND status = ?", eventID, models.RequestConfirmed).
		Count(&confirmed).Error
	return confirmed, err
}

// findByID asserts existence of an entity by primary key, translating a
// missing row into the service NotFound error.
func findByID(tx *gorm.DB, model interface{}, id uint, notFoundFmt string) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return models.NotFoundf(notFoundFmt, id)
	}
	return nil
}
