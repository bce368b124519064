package services

import (
	"gorm.io/gorm"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// CategoryService covers the category dictionary used to classify events.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CreateCategory adds a category. Name must be unique.
func (s *CategoryService) CreateCategory(req dto.NewCategoryDto) (dto.CategoryDto, error) {
	if err := s.checkNameFree(req.Name, 0); err != nil {
		return dto.CategoryDto{}, err
	}

	cat := models.Category{Name: utils.Sanitize(req.Name)}
	if err := s.db.Create(&cat).Error; err != nil {
		return dto.CategoryDto{}, err
	}
	utils.Sugar.Infof("created category id=%d name=%s", cat.ID, cat.Name)
	return dto.ToCategoryDto(cat), nil
}

// UpdateCategory renames a category. Keeping the current name is allowed,
// taking another category's name is not.
func (s *CategoryService) UpdateCategory(catID uint, req dto.NewCategoryDto) (dto.CategoryDto, error) {
	var cat models.Category
	if err := s.db.First(&cat, catID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.CategoryDto{}, models.NotFoundf("category with id=%d not found", catID)
		}
		return dto.CategoryDto{}, err
	}

	if err := s.checkNameFree(req.Name, catID); err != nil {
		return dto.CategoryDto{}, err
	}

	cat.Name = utils.Sanitize(req.Name)
	if err := s.db.Save(&cat).Error; err != nil {
		return dto.CategoryDto{}, err
	}
	return dto.ToCategoryDto(cat), nil
}

// DeleteCategory removes a category unless events still reference it.
func (s *CategoryService) DeleteCategory(catID uint) error {
	if err := findByID(s.db, &models.Category{}, catID, "category with id=%d not found"); err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Event{}).Where("category_id = ?", catID).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return models.Conflictf("the category is not empty")
	}

	if err := s.db.Delete(&models.Category{}, catID).Error; err != nil {
		return err
	}
	utils.Sugar.Infof("deleted category id=%d", catID)
	return nil
}

// GetCategories lists categories with the page window from/size.
func (s *CategoryService) GetCategories(from, size int) ([]dto.CategoryDto, error) {
	var cats []models.Category
	if err := s.db.Order("id DESC").Offset(from).Limit(size).Find(&cats).Error; err != nil {
		return nil, err
	}

	out := make([]dto.CategoryDto, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.ToCategoryDto(c))
	}
	return out, nil
}

// GetCategory fetches one category by id.
func (s *CategoryService) GetCategory(catID uint) (dto.CategoryDto, error) {
	var cat models.Category
	if err := s.db.First(&cat, catID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.CategoryDto{}, models.NotFoundf("category with id=%d not found", catID)
		}
		return dto.CategoryDto{}, err
	}
	return dto.ToCategoryDto(cat), nil
}

func (s *CategoryService) checkNameFree(name string, selfID uint) error {
	var taken int64
	q := s.db.Model(&models.Category{}).Where("name = ?", name)
	if selfID > 0 {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return models.Conflictf("category with name=%s already exists", name)
	}
	return nil
}
