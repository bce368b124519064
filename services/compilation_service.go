package services

import (
	"gorm.io/gorm"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// CompilationService covers curated event selections shown on the front page.
type CompilationService struct {
	db     *gorm.DB
	events *EventService
}

// NewCompilationService creates a CompilationService. The event service is
// used to enrich the embedded event listings with derived counts.
func NewCompilationService(db *gorm.DB, events *EventService) *CompilationService {
	return &CompilationService{db: db, events: events}
}

// CreateCompilation adds a compilation. Every listed event must exist.
func (s *CompilationService) CreateCompilation(req dto.NewCompilationDto) (dto.CompilationDto, error) {
	events, err := s.loadEvents(req.Events)
	if err != nil {
		return dto.CompilationDto{}, err
	}

	comp := models.Compilation{
		Title:  utils.Sanitize(req.Title),
		Pinned: req.Pinned,
		Events: events,
	}
	if err := s.db.Create(&comp).Error; err != nil {
		return dto.CompilationDto{}, err
	}
	utils.Sugar.Infof("created compilation id=%d events=%d", comp.ID, len(events))
	return s.toDto(comp)
}

// UpdateCompilation applies a partial update. A non-nil events list replaces
// the current selection wholesale.
func (s *CompilationService) UpdateCompilation(compID uint, req dto.UpdateCompilationRequest) (dto.CompilationDto, error) {
	comp, err := s.getCompilation(compID)
	if err != nil {
		return dto.CompilationDto{}, err
	}

	if req.Title != nil {
		comp.Title = utils.Sanitize(*req.Title)
	}
	if req.Pinned != nil {
		comp.Pinned = *req.Pinned
	}
	if req.Events != nil {
		events, err := s.loadEvents(req.Events)
		if err != nil {
			return dto.CompilationDto{}, err
		}
		if err := s.db.Model(&comp).Association("Events").Replace(events); err != nil {
			return dto.CompilationDto{}, err
		}
		comp.Events = events
	}

	if err := s.db.Save(&comp).Error; err != nil {
		return dto.CompilationDto{}, err
	}
	return s.toDto(comp)
}

// DeleteCompilation removes a compilation and its event links.
func (s *CompilationService) DeleteCompilation(compID uint) error {
	comp, err := s.getCompilation(compID)
	if err != nil {
		return err
	}
	if err := s.db.Model(&comp).Association("Events").Clear(); err != nil {
		return err
	}
	if err := s.db.Delete(&comp).Error; err != nil {
		return err
	}
	utils.Sugar.Infof("deleted compilation id=%d", compID)
	return nil
}

// GetCompilations lists compilations, optionally only pinned ones.
func (s *CompilationService) GetCompilations(pinned *bool, from, size int) ([]dto.CompilationDto, error) {
	q := s.db.Preload("Events").Order("id").Offset(from).Limit(size)
	if pinned != nil {
		q = q.Where("pinned = ?", *pinned)
	}

	var comps []models.Compilation
	if err := q.Find(&comps).Error; err != nil {
		return nil, err
	}

	out := make([]dto.CompilationDto, 0, len(comps))
	for _, c := range comps {
		d, err := s.toDto(c)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// GetCompilation fetches one compilation with its events.
func (s *CompilationService) GetCompilation(compID uint) (dto.CompilationDto, error) {
	comp, err := s.getCompilation(compID)
	if err != nil {
		return dto.CompilationDto{}, err
	}
	return s.toDto(comp)
}

func (s *CompilationService) getCompilation(compID uint) (models.Compilation, error) {
	var comp models.Compilation
	if err := s.db.Preload("Events").First(&comp, compID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return comp, models.NotFoundf("compilation with id=%d not found", compID)
		}
		return comp, err
	}
	return comp, nil
}

func (s *CompilationService) loadEvents(ids []uint) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	var events []models.Event
	if err := s.db.Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, err
	}
	if len(events) != len(uniqueIDs(ids)) {
		return nil, models.NotFoundf("some events were not found")
	}
	return events, nil
}

func (s *CompilationService) toDto(comp models.Compilation) (dto.CompilationDto, error) {
	shorts, err := s.events.toShortDtos(comp.Events)
	if err != nil {
		return dto.CompilationDto{}, err
	}
	return dto.CompilationDto{
		ID:     comp.ID,
		Title:  comp.Title,
		Pinned: comp.Pinned,
		Events: shorts,
	}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
