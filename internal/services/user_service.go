package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"humorpedia/internal/apperr"
	"humorpedia/internal/models"
	"humorpedia/internal/repository"
	"humorpedia/internal/utils"
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("пользователь")
	}
	return user, err
}

func (s *UserService) List(skip, limit int) (utils.ListResult, error) {
	skip, limit = utils.ClampPage(skip, limit)
	users, err := s.repo.FindAll(skip, limit)
	if err != nil {
		return utils.ListResult{}, err
	}
	public := make([]models.PublicUser, len(users))
	for i := range users {
		public[i] = users[i].Public()
	}
	total, err := s.repo.Count()
	if err != nil {
		return utils.ListResult{}, err
	}
	return utils.NewListResult(public, total, skip, limit), nil
}

func validRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleEditor, models.RoleAdmin:
		return true
	}
	return false
}

// SetRole changes a user's role. An admin cannot demote themselves, so the
// site always keeps at least one admin.
func (s *UserService) SetRole(id, role, actorID string) (*models.User, error) {
	if !validRole(role) {
		return nil, apperr.BadRequest("неизвестная роль: " + role)
	}
	if id == actorID {
		return nil, apperr.BadRequest("нельзя изменить собственную роль")
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetBanned(id string, banned bool, actorID string) (*models.User, error) {
	if id == actorID {
		return nil, apperr.BadRequest("нельзя заблокировать самого себя")
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Banned = banned
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(id string, profile *models.UserProfile) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(id, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.BadRequest("пароль должен быть не короче 8 символов")
	}
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.Unauthorized("неверный текущий пароль")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdateFields(id, map[string]interface{}{"password_hash": string(hash)})
}

func (s *UserService) Delete(id, actorID string) error {
	if id == actorID {
		return apperr.BadRequest("нельзя удалить самого себя")
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
