package services

import (
	"context"

	"github.com/wangyukai585/BioAlgoDB/database"
	"github.com/wangyukai585/BioAlgoDB/models"
)

// UserService manages accounts once they exist; creation goes through AuthService
type UserService struct {
	store
}

type UserFilter struct {
	Keyword string
	Role    string
}

func (s *UserService) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	if filter.Role != "" && !validRole(filter.Role) {
		return nil, invalid("role must be %q or %q", models.RoleAdmin, models.RoleUser)
	}

	db, cancel := s.session(ctx)
	defer cancel()

	q := database.Contains(db.Model(&models.User{}), filter.Keyword, "username", "email")
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	users := []models.User{}
	if err := q.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	db, cancel := s.session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, lookupError(err, entityUser, id)
	}
	return &user, nil
}

// SetRole changes the role of another account. actorID is the admin making
// the change; admins cannot demote themselves so one admin always remains.
func (s *UserService) SetRole(ctx context.Context, actorID, id uint, role string) (*models.User, error) {
	if !validRole(role) {
		return nil, invalid("role must be %q or %q", models.RoleAdmin, models.RoleUser)
	}
	if actorID == id && role != models.RoleAdmin {
		return nil, invalid("admins cannot remove their own admin role")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, lookupError(err, entityUser, id)
	}
	if user.Role == role {
		return &user, nil
	}
	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return nil, writeError(err, entityUser)
	}
	s.log.WithField("user_id", id).WithField("role", role).Info("user role changed")
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return invalid("admins cannot delete their own account")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return lookupError(err, entityUser, id)
	}
	return db.Delete(&user).Error
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleUser
}
