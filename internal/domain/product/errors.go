package product

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/optimus-erp/procure-api/internal/domain/domainerr"
)

// CodeOutOfStock is carried by OutOfStockError.
const CodeOutOfStock = "OUT_OF_STOCK"

// ErrNotFound is returned by repositories when a product does not exist.
var ErrNotFound = errors.New("product not found")

var (
	_ domainerr.Error = (*InvalidQuantityError)(nil)
	_ domainerr.Error = (*InvalidNameError)(nil)
	_ domainerr.Error = (*OutOfStockError)(nil)
)

// InvalidQuantityError indicates a negative quantity passed to a constructor
// or produced by subtraction.
type InvalidQuantityError struct {
	Amount int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity: %d, must be zero or positive", e.Amount)
}

func (e *InvalidQuantityError) Code() string         { return domainerr.CodeValidation }
func (e *InvalidQuantityError) Kind() domainerr.Kind { return domainerr.KindValidation }

// InvalidNameError indicates an empty or over-long product name.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid product name: %q, must be non-empty and at most %d characters", e.Name, MaxNameLength)
}

func (e *InvalidNameError) Code() string         { return domainerr.CodeValidation }
func (e *InvalidNameError) Kind() domainerr.Kind { return domainerr.KindValidation }

// OutOfStockError indicates a reservation for more units than are available.
type OutOfStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *OutOfStockError) Code() string         { return CodeOutOfStock }
func (e *OutOfStockError) Kind() domainerr.Kind { return domainerr.KindBusinessRule }
