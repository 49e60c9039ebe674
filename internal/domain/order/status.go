package order

// Status is the lifecycle state of an order.
//
// The legal transitions are one-directional:
//
//	DRAFT -> PENDING -> CONFIRMED -> DELIVERED
//
// with CANCELLED reachable from any state except DELIVERED.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusDelivered
}

func (s Status) String() string { return string(s) }
