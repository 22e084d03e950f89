package repositories

import "github.com/YassineBouzid/phsyckatre-clinick/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	Count() (int64, error)
}
