package repository

import (
	"context"

	"github.com/lunitaval/ventas-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (autenticación).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
