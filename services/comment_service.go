package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
	"github.com/dchirkov/eventum/utils"
)

// CommentQuery carries the admin comment-moderation filters.
type CommentQuery struct {
	Events  []uint
	Authors []uint
	Status  models.CommentStatus
	From    int
	Size    int
}

// CommentService covers user comments on events. New and edited comments go
// through admin moderation before they appear publicly.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// CreateComment files a comment on a published event. One comment per
// author and event.
func (s *CommentService) CreateComment(userID, eventID uint, req dto.NewCommentDto) (dto.CommentDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return dto.CommentDto{}, err
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.CommentDto{}, models.NotFoundf("event with id=%d not found", eventID)
		}
		return dto.CommentDto{}, err
	}
	if event.State != models.EventPublished {
		return dto.CommentDto{}, models.Conflictf("comments are only allowed on published events")
	}

	var existing int64
	if err := s.db.Model(&models.Comment{}).
		Where("event_id = ? AND author_id = ?", eventID, userID).
		Count(&existing).Error; err != nil {
		return dto.CommentDto{}, err
	}
	if existing > 0 {
		return dto.CommentDto{}, models.Conflictf("user already commented on this event")
	}

	comment := models.Comment{
		Text:      utils.Sanitize(req.Text),
		EventID:   eventID,
		AuthorID:  userID,
		Status:    models.CommentPending,
		CreatedOn: time.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return dto.CommentDto{}, err
	}
	return dto.ToCommentDto(comment), nil
}

// UpdateComment lets the author rewrite their comment. The edit resets the
// comment to PENDING for fresh moderation.
func (s *CommentService) UpdateComment(userID, commentID uint, req dto.NewCommentDto) (dto.CommentDto, error) {
	comment, err := s.getOwnComment(userID, commentID)
	if err != nil {
		return dto.CommentDto{}, err
	}

	now := time.Now()
	comment.Text = utils.Sanitize(req.Text)
	comment.Status = models.CommentPending
	comment.UpdatedOn = &now
	if err := s.db.Save(&comment).Error; err != nil {
		return dto.CommentDto{}, err
	}
	return dto.ToCommentDto(comment), nil
}

// DeleteComment removes the author's own comment.
func (s *CommentService) DeleteComment(userID, commentID uint) error {
	comment, err := s.getOwnComment(userID, commentID)
	if err != nil {
		return err
	}
	return s.db.Delete(&comment).Error
}

// GetUserComments lists all of the author's comments in any status.
func (s *CommentService) GetUserComments(userID uint) ([]dto.CommentDto, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.Where("author_id = ?", userID).Order("id").Find(&comments).Error; err != nil {
		return nil, err
	}

	out := make([]dto.CommentDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToCommentDto(c))
	}
	return out, nil
}

// GetEventComments lists approved comments on a published event.
func (s *CommentService) GetEventComments(eventID uint, from, size int) ([]dto.CommentShortDto, error) {
	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NotFoundf("event with id=%d not found", eventID)
		}
		return nil, err
	}
	if event.State != models.EventPublished {
		return nil, models.NotFoundf("event with id=%d not found", eventID)
	}

	var comments []models.Comment
	if err := s.db.Where("event_id = ? AND status = ?", eventID, models.CommentApproved).
		Order("id").Offset(from).Limit(size).Find(&comments).Error; err != nil {
		return nil, err
	}

	out := make([]dto.CommentShortDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToCommentShortDto(c))
	}
	return out, nil
}

// GetComment fetches one approved comment by id.
func (s *CommentService) GetComment(commentID uint) (dto.CommentShortDto, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.CommentShortDto{}, models.NotFoundf("comment with id=%d not found", commentID)
		}
		return dto.CommentShortDto{}, err
	}
	if comment.Status != models.CommentApproved {
		return dto.CommentShortDto{}, models.NotFoundf("comment with id=%d not found", commentID)
	}
	return dto.ToCommentShortDto(comment), nil
}

// SearchComments answers the admin moderation listing.
func (s *CommentService) SearchComments(q CommentQuery) ([]dto.CommentDto, error) {
	query := s.db.Model(&models.Comment{}).Order("id").Offset(q.From).Limit(q.Size)
	if len(q.Events) > 0 {
		query = query.Where("event_id IN ?", q.Events)
	}
	if len(q.Authors) > 0 {
		query = query.Where("author_id IN ?", q.Authors)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var comments []models.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}

	out := make([]dto.CommentDto, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToCommentDto(c))
	}
	return out, nil
}

// ModerateComment sets a comment's moderation verdict.
func (s *CommentService) ModerateComment(commentID uint, status models.CommentStatus) (dto.CommentDto, error) {
	if status != models.CommentApproved && status != models.CommentRejected {
		return dto.CommentDto{}, models.Validationf("moderation status must be APPROVED or REJECTED")
	}

	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return dto.CommentDto{}, models.NotFoundf("comment with id=%d not found", commentID)
		}
		return dto.CommentDto{}, err
	}

	comment.Status = status
	if err := s.db.Save(&comment).Error; err != nil {
		return dto.CommentDto{}, err
	}
	utils.Sugar.Infof("moderated comment id=%d status=%s", commentID, status)
	return dto.ToCommentDto(comment), nil
}

func (s *CommentService) getOwnComment(userID, commentID uint) (models.Comment, error) {
	if err := findByID(s.db, &models.User{}, userID, "user with id=%d not found"); err != nil {
		return models.Comment{}, err
	}

	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return comment, models.NotFoundf("comment with id=%d not found", commentID)
		}
		return comment, err
	}
	if comment.AuthorID != userID {
		return comment, models.NotFoundf("comment with id=%d not found", commentID)
	}
	return comment, nil
}
