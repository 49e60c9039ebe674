package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/optimus-erp/procure-api/internal/domain/supplier"
)

const (
	supplierColumns = `id, name, email, phone, address, is_active, is_approved, created_at, updated_at`

	listSuppliersSQL = `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY id`

	getSupplierByIDSQL = `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`

	insertSupplierSQL = `INSERT INTO suppliers (id, name, email, phone, address, is_active, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateSupplierSQL = `UPDATE suppliers
		SET name = $2, email = $3, phone = $4, address = $5, is_active = $6, is_approved = $7, updated_at = $8
		WHERE id = $1`

	nextSupplierIDSQL = `SELECT nextval(pg_get_serial_sequence('suppliers', 'id'))`
)

var _ supplier.Repository = (*SupplierRepository)(nil)

// SupplierRepository implements supplier.Repository backed by PostgreSQL.
type SupplierRepository struct {
	pool *pgxpool.Pool
}

// NewSupplierRepository returns a SupplierRepository that uses the given pool.
func NewSupplierRepository(pool *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{pool: pool}
}

// NextID allocates a fresh supplier identifier from the table sequence.
func (r *SupplierRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, nextSupplierIDSQL).Scan(&id); err != nil {
		return 0, fmt.Errorf("allocating supplier id: %w", err)
	}
	return id, nil
}

// List returns all suppliers ordered by ID.
func (r *SupplierRepository) List(ctx context.Context) ([]*supplier.Supplier, error) {
	rows, err := r.pool.Query(ctx, listSuppliersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing suppliers: %w", err)
	}
	return pgx.CollectRows(rows, scanSupplier)
}

// GetByID returns a single supplier by its identifier.
func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*supplier.Supplier, error) {
	rows, err := r.pool.Query(ctx, getSupplierByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting supplier %d: %w", id, err)
	}

	s, err := pgx.CollectExactlyOneRow(rows, scanSupplier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, supplier.ErrNotFound
		}
		return nil, fmt.Errorf("getting supplier %d: %w", id, err)
	}
	return s, nil
}

// Create persists a new supplier.
func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	_, err := r.pool.Exec(ctx, insertSupplierSQL,
		s.ID(), s.Name(), s.Email(), s.Phone(), s.Address(),
		s.IsActive(), s.IsApproved(), s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("creating supplier %d: %w", s.ID(), err)
	}
	return nil
}

// Update persists the current state of an existing supplier.
func (r *SupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	tag, err := r.pool.Exec(ctx, updateSupplierSQL,
		s.ID(), s.Name(), s.Email(), s.Phone(), s.Address(),
		s.IsActive(), s.IsApproved(), s.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("updating supplier %d: %w", s.ID(), err)
	}
	if tag.RowsAffected() == 0 {
		return supplier.ErrNotFound
	}
	return nil
}

func scanSupplier(row pgx.CollectableRow) (*supplier.Supplier, error) {
	var (
		id         int64
		name       string
		email      string
		phone      string
		address    string
		isActive   bool
		isApproved bool
		createdAt  time.Time
		updatedAt  time.Time
	)
	if err := row.Scan(&id, &name, &email, &phone, &address,
		&isActive, &isApproved, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return supplier.Rehydrate(supplier.Props{
		ID:         id,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Address:    address,
		IsActive:   isActive,
		IsApproved: isApproved,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}), nil
}
