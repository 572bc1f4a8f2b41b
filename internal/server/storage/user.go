package storage

import (
	"context"
	"time"

	"github.com/iudanet/lifetracker/internal/models"
)

//go:generate moq -out user_mock.go . UserStorage

// UserStorage хранит учётные записи. Имена пользователей уникальны без учёта регистра.
type UserStorage interface {
	// CreateUser возвращает ErrUserAlreadyExists, если имя занято
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByUsername возвращает ErrUserNotFound, если записи нет
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByID возвращает ErrUserNotFound, если записи нет
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
