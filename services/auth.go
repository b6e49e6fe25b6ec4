package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wangyukai585/BioAlgoDB/database"
	"github.com/wangyukai585/BioAlgoDB/models"
	"github.com/wangyukai585/BioAlgoDB/utils"

	"gorm.io/gorm"
)

const entityUser = "user"

type AuthService struct {
	store
	secret []byte
	ttl    time.Duration
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned to the client after a successful login
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	Username    string `json:"username"`
}

// Register creates a regular user account
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, invalid("username, email and password are required")
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	db, cancel := s.session(ctx)
	defer cancel()

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", in.Username, in.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("username or email already exists")
		}
		return tx.Create(&user).Error
	})
	if database.IsUniqueViolation(err) {
		return nil, conflict("username or email already exists")
	}
	if err != nil {
		return nil, writeError(err, entityUser)
	}
	return &user, nil
}

// Login checks the credentials and issues an access token.
// Unknown users and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	db, cancel := s.session(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, legacy, err := utils.CheckPassword(user.PasswordHash, password)
	if errors.Is(err, utils.ErrUnsupportedHash) {
		return nil, &Error{Kind: ErrUnsupportedHash, Message: "stored password hash format is not supported, reset the account password"}
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if legacy {
		s.rehash(db, &user, password)
	}

	token, err := utils.GenerateToken(s.secret, s.ttl, user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, Role: user.Role, Username: user.Username}, nil
}

// rehash replaces a legacy hash with bcrypt; failures only cost the migration
func (s *AuthService) rehash(db *gorm.DB, user *models.User, password string) {
	hashed, err := utils.HashPassword(password)
	if err == nil {
		err = db.Model(user).Update("password_hash", hashed).Error
	}
	if err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("failed to migrate legacy password hash")
		return
	}
	s.log.WithField("user_id", user.ID).Info("legacy password hash migrated to bcrypt")
}
