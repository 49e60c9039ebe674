package product

import "strconv"

// DefaultLowStockThreshold is the stock level below which a product is
// considered low on stock.
const DefaultLowStockThreshold = 10

// Quantity is an immutable non-negative integer amount of product units.
type Quantity struct {
	amount int
}

// NewQuantity creates a Quantity. Negative amounts fail with
// *InvalidQuantityError.
func NewQuantity(amount int) (Quantity, error) {
	if amount < 0 {
		return Quantity{}, &InvalidQuantityError{Amount: amount}
	}
	return Quantity{amount: amount}, nil
}

// Value returns the raw amount.
func (q Quantity) Value() int { return q.amount }

// Add returns q + other.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.amount + other.amount)
}

// Sub returns q - other. A negative result fails with *InvalidQuantityError,
// which is how stock reservation rejects overselling.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	return NewQuantity(q.amount - other.amount)
}

// IsSufficientFor reports whether q covers the requested amount.
func (q Quantity) IsSufficientFor(requested Quantity) bool {
	return q.amount >= requested.amount
}

// IsLowStock reports whether the amount is strictly below threshold.
// A threshold of zero or less uses DefaultLowStockThreshold.
func (q Quantity) IsLowStock(threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return q.amount < threshold
}

// Equal reports value equality.
func (q Quantity) Equal(other Quantity) bool { return q.amount == other.amount }

func (q Quantity) String() string { return strconv.Itoa(q.amount) }
