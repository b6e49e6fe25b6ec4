package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is an account allowed to log in; only admins may change the catalog
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_user_username" json:"username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_user_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         string    `gorm:"type:varchar(10);not null;default:user;index:idx_user_role" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (User) TableName() string {
	return "user"
}

// IsAdmin reports whether the user carries the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
