package services

import (
	"gorm.io/gorm"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// UserService covers the admin user registry.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers a new user. Email must be unique.
func (s *UserService) CreateUser(req dto.NewUserRequest) (dto.UserDto, error) {
	var existing int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return dto.UserDto{}, err
	}
	if existing > 0 {
		return dto.UserDto{}, models.Conflictf("user with email=%s already exists", req.Email)
	}

	user := models.User{
		Name:  utils.Sanitize(req.Name),
		Email: req.Email,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return dto.UserDto{}, err
	}
	utils.Sugar.Infof("created user id=%d email=%s", user.ID, user.Email)
	return dto.ToUserDto(user), nil
}

// GetUsers lists users. A non-empty ids filter restricts the result to those
// ids; otherwise the page window from/size applies.
func (s *UserService) GetUsers(ids []uint, from, size int) ([]dto.UserDto, error) {
	q := s.db.Model(&models.User{}).Order("id")
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	} else {
		q = q.Offset(from).Limit(size)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	out := make([]dto.UserDto, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserDto(u))
	}
	return out, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(userID uint) error {
	res := s.db.Delete(&models.User{}, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NotFoundf("user with id=%d not found", userID)
	}
	utils.Sugar.Infof("deleted user id=%d", userID)
	return nil
}
