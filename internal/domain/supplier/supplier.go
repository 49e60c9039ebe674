// Package supplier holds the supplier entity and its activation/approval
// gate for order eligibility.
package supplier

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by repositories when a supplier does not exist.
var ErrNotFound = errors.New("supplier not found")

// Supplier is an immutable supplier record. New suppliers always start
// active but unapproved: approval is a deliberate gate that cannot be set
// at creation.
type Supplier struct {
	id        int64
	name      string
	email     string
	phone     string
	address   string
	active    bool
	approved  bool
	createdAt time.Time
	updatedAt time.Time
}

// CreateParams holds the raw input for creating a Supplier. Email, phone and
// address are optional.
type CreateParams struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// New creates a Supplier with isActive=true and isApproved=false, regardless
// of input.
func New(params CreateParams) *Supplier {
	now := time.Now()
	return &Supplier{
		id:        params.ID,
		name:      params.Name,
		email:     params.Email,
		phone:     params.Phone,
		address:   params.Address,
		active:    true,
		approved:  false,
		createdAt: now,
		updatedAt: now,
	}
}

// Props is the full internal state of a Supplier, used for rehydration from
// storage.
type Props struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Address    string
	IsActive   bool
	IsApproved bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Rehydrate reconstructs a Supplier from previously valid stored state.
func Rehydrate(props Props) *Supplier {
	return &Supplier{
		id:        props.ID,
		name:      props.Name,
		email:     props.Email,
		phone:     props.Phone,
		address:   props.Address,
		active:    props.IsActive,
		approved:  props.IsApproved,
		createdAt: props.CreatedAt,
		updatedAt: props.UpdatedAt,
	}
}

func (s *Supplier) ID() int64            { return s.id }
func (s *Supplier) Name() string         { return s.name }
func (s *Supplier) Email() string        { return s.email }
func (s *Supplier) Phone() string        { return s.phone }
func (s *Supplier) Address() string      { return s.address }
func (s *Supplier) IsActive() bool       { return s.active }
func (s *Supplier) IsApproved() bool     { return s.approved }
func (s *Supplier) CreatedAt() time.Time { return s.createdAt }
func (s *Supplier) UpdatedAt() time.Time { return s.updatedAt }

// Approve returns a copy of the supplier with approval granted.
func (s *Supplier) Approve() *Supplier {
	next := *s
	next.approved = true
	next.updatedAt = time.Now()
	return &next
}

// Deactivate returns a copy of the supplier marked inactive.
func (s *Supplier) Deactivate() *Supplier {
	next := *s
	next.active = false
	next.updatedAt = time.Now()
	return &next
}

// Reactivate returns a copy of the supplier marked active.
func (s *Supplier) Reactivate() *Supplier {
	next := *s
	next.active = true
	next.updatedAt = time.Now()
	return &next
}

// CanReceiveOrders reports whether the supplier is both active and approved.
func (s *Supplier) CanReceiveOrders() bool {
	return s.active && s.approved
}

// Equal compares by identity only.
func (s *Supplier) Equal(other *Supplier) bool {
	return other != nil && s.id == other.id
}

// Repository defines persistence operations for suppliers.
type Repository interface {
	NextID(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*Supplier, error)
	GetByID(ctx context.Context, id int64) (*Supplier, error)
	Create(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
}
