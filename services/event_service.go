package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// StatsProvider is the slice of the stats client the event service needs.
type StatsProvider interface {
	SaveHit(uri, ip string)
	GetStats(start, end time.Time, uris []string, unique bool) []dto.ViewStats
}

// PublicEventQuery carries the public search filters.
type PublicEventQuery struct {
	Text          string
	Categories    []uint
	Paid          *bool
	RangeStart    *time.Time
	RangeEnd      *time.Time
	OnlyAvailable bool
	Sort          string
	From          int
	Size          int
}

// AdminEventQuery carries the admin search filters.
type AdminEventQuery struct {
	Users      []uint
	States     []models.EventState
	Categories []uint
	RangeStart *time.Time
	RangeEnd   *time.Time
	From       int
	Size       int
}

// EventService covers the event lifecycle across the private, admin and
// public surfaces, enriching payloads with confirmed-request counts from the
// database and view counts from the stats service.
type EventService struct {
	db    *gorm.DB
	stats StatsProvider
}

// NewEventService creates an EventService.
func NewEventService(db *gorm.DB, stats StatsProvider) *EventService {
	return &EventService{db: db, stats: stats}
}

// CreateEvent registers a new event for the initiator. The event starts in
// PENDING and its date must be at least two hours away.
func (s *EventService) CreateEvent(userID uint, req dto.NewEventDto) (dto.EventFullDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return dto.EventFullDto{}, err
	}
	if err := findByID(s.db, &models.Category{}, req.Category, "category with id=%d not found"); err != nil {
		return dto.EventFullDto{}, err
	}
	if req.EventDate.Time().Before(time.Now().Add(2 * time.Hour)) {
		return dto.EventFullDto{}, models.Validationf("event date must be at least two hours from now")
	}

	limit := 0
	if req.ParticipantLimit != nil {
		limit = *req.ParticipantLimit
	}
	if limit < 0 {
		return dto.EventFullDto{}, models.Validationf("participant limit cannot be negative")
	}
	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}

	event := models.Event{
		Title:             utils.Sanitize(req.Title),
		Annotation:        utils.Sanitize(req.Annotation),
		Description:       utils.Sanitize(req.Description),
		CategoryID:        req.Category,
		InitiatorID:       userID,
		CreatedOn:         time.Now(),
		EventDate:         req.EventDate.Time(),
		Paid:              req.Paid,
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             models.EventPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		loc := models.Location{Lat: req.Location.Lat, Lon: req.Location.Lon}
		if err := tx.Create(&loc).Error; err != nil {
			return err
		}
		event.LocationID = loc.ID
		return tx.Create(&event).Error
	})
	if err != nil {
		return dto.EventFullDto{}, err
	}

	utils.Sugar.Infof("created event id=%d initiator=%d", event.ID, userID)
	return s.toFullDto(event)
}

// GetUserEvents lists the initiator's own events with the page window.
func (s *EventService) GetUserEvents(userID uint, from, size int) ([]dto.EventShortDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return nil, err
	}

	var events []models.Event
	if err := s.db.Where("initiator_id = ?", userID).Order("id").
		Offset(from).Limit(size).Find(&events).Error; err != nil {
		return nil, err
	}
	return s.toShortDtos(events)
}

// GetUserEvent fetches one of the initiator's own events in full form.
func (s *EventService) GetUserEvent(userID, eventID uint) (dto.EventFullDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return dto.EventFullDto{}, err
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
		}
		return dto.EventFullDto{}, err
	}
	if event.InitiatorID != userID {
		return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
	}
	return s.toFullDto(event)
}

// UpdateEventByUser applies the initiator's partial update. Published events
// cannot be changed.
func (s *EventService) UpdateEventByUser(userID, eventID uint, req dto.UpdateEventUserRequest) (dto.EventFullDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return dto.EventFullDto{}, err
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
		}
		return dto.EventFullDto{}, err
	}
	if event.InitiatorID != userID {
		return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
	}
	if event.State == models.EventPublished {
		return dto.EventFullDto{}, models.Conflictf("only pending or canceled events can be changed")
	}

	if err := s.applyPatch(&event, req.Title, req.Annotation, req.Description,
		req.Category, req.EventDate, req.Location, req.Paid,
		req.ParticipantLimit, req.RequestModeration, 2*time.Hour); err != nil {
		return dto.EventFullDto{}, err
	}

	switch req.StateAction {
	case "SEND_TO_REVIEW":
		event.State = models.EventPending
	case "CANCEL_REVIEW":
		event.State = models.EventCanceled
	}

	if err := s.db.Save(&event).Error; err != nil {
		return dto.EventFullDto{}, err
	}
	return s.toFullDto(event)
}

// SearchEventsAdmin answers the admin search. Filters are applied in memory
// and the page window is sliced manually.
func (s *EventService) SearchEventsAdmin(q AdminEventQuery) ([]dto.EventFullDto, error) {
	var events []models.Event
	if err := s.db.Order("id").Find(&events).Error; err != nil {
		return nil, err
	}

	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if len(q.Users) > 0 && !containsUint(q.Users, e.InitiatorID) {
			continue
		}
		if len(q.States) > 0 && !containsState(q.States, e.State) {
			continue
		}
		if len(q.Categories) > 0 && !containsUint(q.Categories, e.CategoryID) {
			continue
		}
		if q.RangeStart != nil && e.EventDate.Before(*q.RangeStart) {
			continue
		}
		if q.RangeEnd != nil && e.EventDate.After(*q.RangeEnd) {
			continue
		}
		filtered = append(filtered, e)
	}

	page := paginate(filtered, q.From, q.Size)

	out := make([]dto.EventFullDto, 0, len(page))
	for _, e := range page {
		full, err := s.toFullDto(e)
		if err != nil {
			return nil, err
		}
		out = append(out, full)
	}
	return out, nil
}

// UpdateEventByAdmin publishes or rejects an event and applies the admin's
// field patch.
func (s *EventService) UpdateEventByAdmin(eventID uint, req dto.UpdateEventAdminRequest) (dto.EventFullDto, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
		}
		return dto.EventFullDto{}, err
	}

	if err := s.applyPatch(&event, req.Title, req.Annotation, req.Description,
		req.Category, req.EventDate, req.Location, req.Paid,
		req.ParticipantLimit, req.RequestModeration, time.Hour); err != nil {
		return dto.EventFullDto{}, err
	}

	switch req.StateAction {
	case "PUBLISH_EVENT":
		if event.State != models.EventPending {
			return dto.EventFullDto{}, models.Conflictf(
				"cannot publish the event because it's not in the right state: %s", event.State)
		}
		now := time.Now()
		event.State = models.EventPublished
		event.PublishedOn = &now
	case "REJECT_EVENT":
		if event.State == models.EventPublished {
			return dto.EventFullDto{}, models.Conflictf("cannot reject a published event")
		}
		event.State = models.EventCanceled
	}

	if err := s.db.Save(&event).Error; err != nil {
		return dto.EventFullDto{}, err
	}
	utils.Sugar.Infof("admin updated event id=%d state=%s", event.ID, event.State)
	return s.toFullDto(event)
}

// GetPublicEvents answers the public search over published events and
// records a hit for the listing endpoint.
func (s *EventService) GetPublicEvents(q PublicEventQuery, clientIP string) ([]dto.EventShortDto, error) {
	start := time.Now()
	if q.RangeStart != nil {
		start = *q.RangeStart
	}
	end := start.AddDate(100, 0, 0)
	if q.RangeEnd != nil {
		end = *q.RangeEnd
	}
	if end.Before(start) {
		return nil, models.Validationf("range end cannot be before range start")
	}

	var events []models.Event
	if err := s.db.Where("state = ?", models.EventPublished).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}

	text := strings.ToLower(q.Text)
	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if text != "" &&
			!strings.Contains(strings.ToLower(e.Annotation), text) &&
			!strings.Contains(strings.ToLower(e.Description), text) {
			continue
		}
		if len(q.Categories) > 0 && !containsUint(q.Categories, e.CategoryID) {
			continue
		}
		if q.Paid != nil && e.Paid != *q.Paid {
			continue
		}
		if e.EventDate.Before(start) || e.EventDate.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}

	if q.OnlyAvailable && len(filtered) > 0 {
		confirmed, err := s.confirmedCounts(eventIDs(filtered))
		if err != nil {
			return nil, err
		}
		available := filtered[:0]
		for _, e := range filtered {
			if e.ParticipantLimit == 0 || confirmed[e.ID] < int64(e.ParticipantLimit) {
				available = append(available, e)
			}
		}
		filtered = available
	}

	shorts, err := s.toShortDtos(filtered)
	if err != nil {
		return nil, err
	}

	switch q.Sort {
	case "VIEWS":
		sort.SliceStable(shorts, func(i, j int) bool { return shorts[i].Views > shorts[j].Views })
	default:
		sort.SliceStable(shorts, func(i, j int) bool {
			return shorts[i].EventDate.Time().Before(shorts[j].EventDate.Time())
		})
	}

	s.stats.SaveHit("/events", clientIP)
	return paginate(shorts, q.From, q.Size), nil
}

// GetPublicEvent fetches one published event and records a hit for its
// detail endpoint. Unpublished events are reported as missing.
func (s *EventService) GetPublicEvent(eventID uint, clientIP string) (dto.EventFullDto, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
		}
		return dto.EventFullDto{}, err
	}
	if event.State != models.EventPublished {
		return dto.EventFullDto{}, models.NotFoundf("event with id=%d not found", eventID)
	}

	s.stats.SaveHit(fmt.Sprintf("/events/%d", eventID), clientIP)
	return s.toFullDto(event)
}

// applyPatch copies the non-nil fields of a partial update onto the event.
// minLead is the minimum distance a new event date must keep from now.
func (s *EventService) applyPatch(event *models.Event,
	title, annotation, description *string, category *uint, eventDate *dto.DateTime,
	location *dto.LocationDto, paid *bool, limit *int, moderation *bool,
	minLead time.Duration) error {

	if title != nil {
		event.Title = utils.Sanitize(*title)
	}
	if annotation != nil {
		event.Annotation = utils.Sanitize(*annotation)
	}
	if description != nil {
		event.Description = utils.Sanitize(*description)
	}
	if category != nil {
		if err := findByID(s.db, &models.Category{}, *category, "category with id=%d not found"); err != nil {
			return err
		}
		event.CategoryID = *category
	}
	if eventDate != nil {
		if eventDate.Time().Before(time.Now().Add(minLead)) {
			return models.Validationf("event date is too soon")
		}
		event.EventDate = eventDate.Time()
	}
	if location != nil {
		loc := models.Location{Lat: location.Lat, Lon: location.Lon}
		if err := s.db.Create(&loc).Error; err != nil {
			return err
		}
		event.LocationID = loc.ID
	}
	if paid != nil {
		event.Paid = *paid
	}
	if limit != nil {
		if *limit < 0 {
			return models.Validationf("participant limit cannot be negative")
		}
		event.ParticipantLimit = *limit
	}
	if moderation != nil {
		event.RequestModeration = *moderation
	}
	return nil
}

func (s *EventService) toFullDto(event models.Event) (dto.EventFullDto, error) {
	full, err := s.toFullDtos([]models.Event{event})
	if err != nil {
		return dto.EventFullDto{}, err
	}
	return full[0], nil
}

func (s *EventService) toFullDtos(events []models.Event) ([]dto.EventFullDto, error) {
	cats, users, locs, confirmed, views, err := s.resolveRelations(events)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EventFullDto, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventFullDto(e, cats[e.CategoryID], users[e.InitiatorID],
			locs[e.LocationID], confirmed[e.ID], views[e.ID]))
	}
	return out, nil
}

func (s *EventService) toShortDtos(events []models.Event) ([]dto.EventShortDto, error) {
	cats, users, _, confirmed, views, err := s.resolveRelations(events)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EventShortDto, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventShortDto(e, cats[e.CategoryID], users[e.InitiatorID],
			confirmed[e.ID], views[e.ID]))
	}
	return out, nil
}

// resolveRelations batch-loads the categories, initiators and locations the
// events reference and the derived confirmed and view counts.
func (s *EventService) resolveRelations(events []models.Event) (
	map[uint]models.Category, map[uint]models.User, map[uint]models.Location,
	map[uint]int64, map[uint]int64, error) {

	catIDs := make([]uint, 0, len(events))
	userIDs := make([]uint, 0, len(events))
	locIDs := make([]uint, 0, len(events))
	for _, e := range events {
		catIDs = append(catIDs, e.CategoryID)
		userIDs = append(userIDs, e.InitiatorID)
		locIDs = append(locIDs, e.LocationID)
	}

	cats := map[uint]models.Category{}
	users := map[uint]models.User{}
	locs := map[uint]models.Location{}
	if len(events) > 0 {
		var catRows []models.Category
		if err := s.db.Where("id IN ?", catIDs).Find(&catRows).Error; err != nil {
			return nil, nil, nil, nil, nil, err
		}
		for _, c := range catRows {
			cats[c.ID] = c
		}

		var userRows []models.User
		if err := s.db.Where("id IN ?", userIDs).Find(&userRows).Error; err != nil {
			return nil, nil, nil, nil, nil, err
		}
		for _, u := range userRows {
			users[u.ID] = u
		}

		var locRows []models.Location
		if err := s.db.Where("id IN ?", locIDs).Find(&locRows).Error; err != nil {
			return nil, nil, nil, nil, nil, err
		}
		for _, l := range locRows {
			locs[l.ID] = l
		}
	}

	confirmed, err := s.confirmedCounts(eventIDs(events))
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	views := s.viewCounts(events)

	return cats, users, locs, confirmed, views, nil
}

// confirmedCounts returns the confirmed-request count per event id.
func (s *EventService) confirmedCounts(ids []uint) (map[uint]int64, error) {
	counts := map[uint]int64{}
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID uint
		Total   int64
	}
	err := s.db.Model(&models.ParticipationRequest{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ? AND status = ?", ids, models.RequestConfirmed).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.EventID] = r.Total
	}
	return counts, nil
}

// viewCounts asks the stats service for unique views per event detail uri.
// A stats failure yields zero counts.
func (s *EventService) viewCounts(events []models.Event) map[uint]int64 {
	views := map[uint]int64{}
	if len(events) == 0 {
		return views
	}

	earliest := time.Now()
	uris := make([]string, 0, len(events))
	for _, e := range events {
		uris = append(uris, fmt.Sprintf("/events/%d", e.ID))
		from := e.CreatedOn
		if e.PublishedOn != nil {
			from = *e.PublishedOn
		}
		if from.Before(earliest) {
			earliest = from
		}
	}

	for _, row := range s.stats.GetStats(earliest, time.Now(), uris, true) {
		if id, ok := ExtractEventID(row.URI); ok {
			views[id] = row.Hits
		}
	}
	return views
}

// ExtractEventID parses the numeric event id from the trailing segment of an
// event detail uri. Uris that do not fit the shape are dropped.
func ExtractEventID(uri string) (uint, bool) {
	idx := strings.LastIndex(uri, "/")
	if idx < 0 || idx == len(uri)-1 {
		return 0, false
	}
	id, err := strconv.ParseUint(uri[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func eventIDs(events []models.Event) []uint {
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func paginate[T any](items []T, from, size int) []T {
	if from >= len(items) {
		return []T{}
	}
	end := from + size
	if end > len(items) {
		end = len(items)
	}
	return items[from:end]
}

func containsUint(xs []uint, x uint) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsState(xs []models.EventState, x models.EventState) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
