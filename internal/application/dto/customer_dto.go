package dto

import (
	"time"

	"github.com/lunitaval/ventas-api/internal/domain/entity"
)

// CustomerInput campos de alta/actualización de cliente.
// En actualización los punteros nil significan "no tocar" (allow-list explícita).
type CustomerInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
}

// CustomerResponse representación HTTP de un cliente.
type CustomerResponse struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Phone       string    `json:"phone"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerToResponse convierte la entidad a su representación HTTP.
func CustomerToResponse(c *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Address:     c.Address,
		City:        c.City,
		Phone:       c.Phone,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// CustomerListResponse página de clientes.
type CustomerListResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Page      PageResponse        `json:"page"`
}
