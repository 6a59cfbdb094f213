package models

import "gorm.io/gorm"

// Authentication provider tags stored on User.AuthProvider.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User represents an account in the credential store.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name         string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"` // Empty for OAuth-only accounts
	GoogleID     string `json:"-" gorm:"type:varchar(255)"`
	Picture      string `json:"picture,omitempty" gorm:"type:varchar(512)"`
	AuthProvider string `json:"auth_provider" gorm:"type:varchar(20)"`
	gorm.Model   `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// UserSummary is the public projection of a User returned by auth endpoints.
type UserSummary struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
}

// Summary returns the public profile for the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
	}
}
