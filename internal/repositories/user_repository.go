package repositories

import "stockpro/internal/models"

// UserRepository defines the interface for credential store access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
