package customers

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/lunitaval/ventas-api/internal/application/dto"
	"github.com/lunitaval/ventas-api/internal/domain"
	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

const searchLimit = 10

// TxRunner ejecuta el callback con repos atados a una misma transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(sales repository.SaleRepository, customers repository.CustomerRepository) error) error
}

// UseCase casos de uso de clientes.
type UseCase struct {
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	tx        TxRunner
	loc       *time.Location
	pageSize  int
}

// NewUseCase construye el caso de uso.
func NewUseCase(customers repository.CustomerRepository, sales repository.SaleRepository, tx TxRunner, loc *time.Location, pageSize int) *UseCase {
	return &UseCase{customers: customers, sales: sales, tx: tx, loc: loc, pageSize: pageSize}
}

// Create valida y persiste un cliente nuevo. El teléfono es único.
func (uc *UseCase) Create(ctx context.Context, in dto.CustomerInput) (*dto.CustomerResponse, error) {
	customer := &entity.Customer{CreatedAt: time.Now().In(uc.loc)}
	if err := applyInput(customer, in); err != nil {
		return nil, err
	}

	existing, err := uc.customers.GetByPhone(ctx, customer.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.CustomerToResponse(customer), nil
}

// Get devuelve un cliente por id.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return dto.CustomerToResponse(customer), nil
}

// Update aplica una actualización parcial con allow-list explícita de campos
// (id y created_at nunca se tocan).
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.CustomerInput) (*dto.CustomerResponse, error) {
	customer, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyInput(customer, in); err != nil {
		return nil, err
	}
	if in.Phone != nil {
		other, err := uc.customers.GetByPhone(ctx, customer.Phone)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return dto.CustomerToResponse(customer), nil
}

// Delete elimina un cliente solo si no tiene ventas asociadas. La regla se
// verifica explícitamente para responder "tiene ventas" y no un error
// genérico de clave foránea.
func (uc *UseCase) Delete(ctx context.Context, id int64) error {
	return uc.tx.Run(ctx, func(sales repository.SaleRepository, customers repository.CustomerRepository) error {
		customer, err := customers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		count, err := sales.CountByCustomer(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasDependents
		}
		return customers.Delete(ctx, id)
	})
}

// List devuelve una página de clientes ordenada por creación descendente.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.Normalize(uc.pageSize)
	list, total, err := uc.customers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CustomerToResponse(c))
	}
	return &dto.CustomerListResponse{
		Customers: out,
		Page:      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Search busca clientes por subcadena de nombre o apellido, sin distinguir
// mayúsculas, acotado a un tamaño fijo.
func (uc *UseCase) Search(ctx context.Context, query string) ([]*dto.CustomerResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*dto.CustomerResponse{}, nil
	}
	list, err := uc.customers.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CustomerToResponse(c))
	}
	return out, nil
}

// applyInput mezcla el input sobre la entidad y valida los campos requeridos.
func applyInput(c *entity.Customer, in dto.CustomerInput) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&c.FirstName, in.FirstName)
	set(&c.LastName, in.LastName)
	set(&c.Address, in.Address)
	set(&c.City, in.City)
	set(&c.Description, in.Description)

	if in.Phone != nil {
		c.Phone = normalizePhone(*in.Phone)
	}

	if c.FirstName == "" || c.LastName == "" {
		return domain.Validationf("first_name y last_name son obligatorios")
	}
	if c.Address == "" || c.City == "" {
		return domain.Validationf("address y city son obligatorios")
	}
	if !validPhone(c.Phone) {
		return domain.Validationf("phone debe tener entre 10 y 12 dígitos")
	}
	return nil
}

// normalizePhone descarta separadores comunes y deja solo dígitos.
func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validPhone(s string) bool {
	return len(s) >= 10 && len(s) <= 12
}
