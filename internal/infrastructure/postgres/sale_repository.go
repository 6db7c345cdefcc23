package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lunitaval/ventas-api/internal/domain/entity"
	"github.com/lunitaval/ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `
	s.id, s.customer_id, s.amount, s.payment_method, s.paid, COALESCE(s.notes, ''),
	s.delivery_type, s.has_shipping, s.shipping_date, s.sales_channel, s.is_cash,
	s.has_change, s.sale_date, s.created_at, s.delivered_at, s.shipped_at, s.completed_at`

const saleWithCustomerColumns = saleColumns + `,
	c.id, c.first_name, c.last_name, c.address, c.city, c.phone, COALESCE(c.description, ''), c.created_at`

const saleJoin = ` FROM sales s JOIN customers c ON c.id = s.customer_id`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta nueva y completa su ID.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (
			customer_id, amount, payment_method, paid, notes, delivery_type,
			has_shipping, shipping_date, sales_channel, is_cash, has_change,
			sale_date, created_at
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.CustomerID, s.Amount, s.PaymentMethod, s.Paid, s.Notes, string(s.DeliveryType),
		s.HasShipping, s.ShippingDate, s.SalesChannel, s.IsCash, s.HasChange,
		s.SaleDate, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales s WHERE s.id = $1`
	var s entity.Sale
	err := scanSale(r.q.QueryRow(ctx, query, id), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetWithCustomer obtiene una venta con su cliente. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetWithCustomer(ctx context.Context, id int64) (*repository.SaleWithCustomer, error) {
	query := `SELECT ` + saleWithCustomerColumns + saleJoin + ` WHERE s.id = $1`
	var sc repository.SaleWithCustomer
	err := scanSaleWithCustomer(r.q.QueryRow(ctx, query, id), &sc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale with customer: %w", err)
	}
	return &sc, nil
}

// Update reescribe los campos mutables de la venta (id y created_at nunca cambian).
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET
			customer_id = $2, amount = $3, payment_method = $4, paid = $5,
			notes = NULLIF($6, ''), delivery_type = $7, has_shipping = $8,
			shipping_date = $9, sales_channel = $10, is_cash = $11, has_change = $12,
			sale_date = $13, delivered_at = $14, shipped_at = $15, completed_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CustomerID, s.Amount, s.PaymentMethod, s.Paid, s.Notes,
		string(s.DeliveryType), s.HasShipping, s.ShippingDate, s.SalesChannel,
		s.IsCash, s.HasChange, s.SaleDate, s.DeliveredAt, s.ShippedAt, s.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List devuelve ventas filtradas por creación descendente más el total sin paginar.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]repository.SaleWithCustomer, int, error) {
	where, args := buildSaleFilter(f)

	var total int
	countQuery := `SELECT COUNT(*)` + saleJoin + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `SELECT ` + saleWithCustomerColumns + saleJoin + where +
		fmt.Sprintf(` ORDER BY s.created_at DESC, s.id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	list, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	return list, total, nil
}

func buildSaleFilter(f repository.SaleFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.SalesChannel != "" {
		add("s.sales_channel = $%d", f.SalesChannel)
	}
	if f.PaymentMethod != "" {
		add("s.payment_method = $%d", f.PaymentMethod)
	}
	if f.CustomerName != "" {
		add("(c.first_name ILIKE '%%' || $%d || '%%' OR c.last_name ILIKE '%%' || $%[1]d || '%%')", escapeLike(f.CustomerName))
	}
	if f.Paid != nil {
		add("s.paid = $%d", *f.Paid)
	}
	if f.HasShipping != nil {
		add("s.has_shipping = $%d", *f.HasShipping)
	}
	if f.DateFrom != nil {
		add("s.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("s.created_at <= $%d", *f.DateTo)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListPendingByType ventas pagadas y no entregadas del tipo dado, por creación ascendente.
func (r *SaleRepo) ListPendingByType(ctx context.Context, dt entity.DeliveryType) ([]repository.SaleWithCustomer, error) {
	query := `SELECT ` + saleWithCustomerColumns + saleJoin + `
		WHERE s.delivery_type = $1 AND s.delivered_at IS NULL AND s.paid
		ORDER BY s.created_at ASC`
	return r.queryMany(ctx, query, string(dt))
}

// ListPendingChanges cambios no entregados, por creación ascendente.
func (r *SaleRepo) ListPendingChanges(ctx context.Context) ([]repository.SaleWithCustomer, error) {
	query := `SELECT ` + saleWithCustomerColumns + saleJoin + `
		WHERE s.has_change AND s.delivered_at IS NULL
		ORDER BY s.created_at ASC`
	return r.queryMany(ctx, query)
}

// CountChanges total histórico de cambios.
func (r *SaleRepo) CountChanges(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE has_change`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count changes: %w", err)
	}
	return n, nil
}

// CountChangesBetween cambios creados en [from, to].
func (r *SaleRepo) CountChangesBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE has_change AND created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count changes between: %w", err)
	}
	return n, nil
}

// ListByShippingRange envíos de cadetería con shipping_date en [from, to].
// La columna es DATE: los límites viajan como fecha de calendario, no como
// instante (un timestamptz se promovería en la zona de la sesión y correría
// el día).
func (r *SaleRepo) ListByShippingRange(ctx context.Context, from, to time.Time) ([]repository.SaleWithCustomer, error) {
	query := `SELECT ` + saleWithCustomerColumns + saleJoin + `
		WHERE s.has_shipping AND s.shipping_date BETWEEN $1::date AND $2::date
		ORDER BY s.shipping_date ASC, s.id ASC`
	return r.queryMany(ctx, query, sqlDate(from), sqlDate(to))
}

// ListByShippingDate envíos programados para el día exacto, por id ascendente.
func (r *SaleRepo) ListByShippingDate(ctx context.Context, date time.Time) ([]repository.SaleWithCustomer, error) {
	query := `SELECT ` + saleWithCustomerColumns + saleJoin + `
		WHERE s.has_shipping AND s.shipping_date = $1::date
		ORDER BY s.id ASC`
	return r.queryMany(ctx, query, sqlDate(date))
}

// ListByIDs ventas del lote, por id ascendente.
func (r *SaleRepo) ListByIDs(ctx context.Context, ids []int64) ([]repository.SaleWithCustomer, error) {
	query := `SELECT ` + saleWithCustomerColumns + saleJoin + `
		WHERE s.id = ANY($1)
		ORDER BY s.id ASC`
	return r.queryMany(ctx, query, ids)
}

// CountByCustomer cantidad de ventas del cliente (regla de borrado).
func (r *SaleRepo) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales WHERE customer_id = $1`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales by customer: %w", err)
	}
	return n, nil
}

func (r *SaleRepo) queryMany(ctx context.Context, query string, args ...any) ([]repository.SaleWithCustomer, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()
	var list []repository.SaleWithCustomer
	for rows.Next() {
		var sc repository.SaleWithCustomer
		if err := scanSaleWithCustomer(rows, &sc); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, sc)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row, s *entity.Sale) error {
	var deliveryType string
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.Amount, &s.PaymentMethod, &s.Paid, &s.Notes,
		&deliveryType, &s.HasShipping, &s.ShippingDate, &s.SalesChannel, &s.IsCash,
		&s.HasChange, &s.SaleDate, &s.CreatedAt, &s.DeliveredAt, &s.ShippedAt, &s.CompletedAt,
	)
	if err != nil {
		return err
	}
	s.DeliveryType = entity.DeliveryType(deliveryType)
	return nil
}

func scanSaleWithCustomer(row pgx.Row, sc *repository.SaleWithCustomer) error {
	s, c := &sc.Sale, &sc.Customer
	var deliveryType string
	err := row.Scan(
		&s.ID, &s.CustomerID, &s.Amount, &s.PaymentMethod, &s.Paid, &s.Notes,
		&deliveryType, &s.HasShipping, &s.ShippingDate, &s.SalesChannel, &s.IsCash,
		&s.HasChange, &s.SaleDate, &s.CreatedAt, &s.DeliveredAt, &s.ShippedAt, &s.CompletedAt,
		&c.ID, &c.FirstName, &c.LastName, &c.Address, &c.City, &c.Phone, &c.Description, &c.CreatedAt,
	)
	if err != nil {
		return err
	}
	s.DeliveryType = entity.DeliveryType(deliveryType)
	return nil
}
