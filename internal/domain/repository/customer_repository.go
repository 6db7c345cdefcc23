package repository

import (
	"context"

	"github.com/lunitaval/ventas-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	// List devuelve una página ordenada por creación descendente y el total.
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, int, error)
	// Search busca por subcadena de nombre o apellido, sin distinguir mayúsculas.
	Search(ctx context.Context, query string, limit int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id int64) error
}
