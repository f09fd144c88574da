package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

type CommentService struct {
	repo        *repository.CommentRepository
	contentRepo *repository.ContentRepository
}

func NewCommentService(repo *repository.CommentRepository, contentRepo *repository.ContentRepository) *CommentService {
	return &CommentService{repo: repo, contentRepo: contentRepo}
}

// Create adds a comment in pending state; it stays invisible to other
// readers until a moderator approves it.
func (s *CommentService) Create(comment *models.Comment) error {
	if strings.TrimSpace(comment.Content) == "" {
		return apperr.BadRequest("текст комментария обязателен")
	}
	if _, err := s.contentRepo.FindByID(comment.DocumentID); errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("документ")
	} else if err != nil {
		return err
	}
	if comment.ParentID != nil && *comment.ParentID != "" {
		parent, err := s.repo.FindByID(*comment.ParentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("родительский комментарий")
		}
		if err != nil {
			return err
		}
		if parent.DocumentID != comment.DocumentID {
			return apperr.BadRequest("ответ должен относиться к тому же документу")
		}
	}

	comment.ID = uuid.NewString()
	comment.Status = models.CommentPending
	return s.repo.Create(comment)
}

func (s *CommentService) Get(id string) (*models.Comment, error) {
	comment, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("комментарий")
	}
	return comment, err
}

func (s *CommentService) ListForDocument(documentID, status string) ([]models.Comment, error) {
	return s.repo.FindByDocument(documentID, status)
}

// Queue lists comments for moderation, filtered by status.
func (s *CommentService) Queue(status string, skip, limit int) (utils.ListResult, error) {
	skip, limit = utils.ClampPage(skip, limit)
	comments, err := s.repo.FindByStatus(status, skip, limit)
	if err != nil {
		return utils.ListResult{}, err
	}
	total, err := s.repo.CountByStatus(status)
	if err != nil {
		return utils.ListResult{}, err
	}
	return utils.NewListResult(comments, total, skip, limit), nil
}

func (s *CommentService) SetStatus(id, status string) (*models.Comment, error) {
	switch status {
	case models.CommentPending, models.CommentApproved, models.CommentRejected:
	default:
		return nil, apperr.BadRequest("неизвестный статус: " + status)
	}
	comment, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(id, status); err != nil {
		return nil, err
	}
	comment.Status = status
	return comment, nil
}

func (s *CommentService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
