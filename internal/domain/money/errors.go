package money

import (
	"fmt"

	"github.com/optimus-erp/procure-api/internal/domain/domainerr"
)

// CodeCurrencyMismatch is carried by CurrencyMismatchError.
const CodeCurrencyMismatch = "CURRENCY_MISMATCH"

var (
	_ domainerr.Error = (*InvalidPriceError)(nil)
	_ domainerr.Error = (*CurrencyMismatchError)(nil)
)

// InvalidPriceError indicates a negative amount passed to a Money constructor
// or produced by subtraction.
type InvalidPriceError struct {
	Cents int64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price: %d cents, must be zero or positive", e.Cents)
}

func (e *InvalidPriceError) Code() string         { return domainerr.CodeValidation }
func (e *InvalidPriceError) Kind() domainerr.Kind { return domainerr.KindValidation }

// CurrencyMismatchError indicates arithmetic between two different currencies.
type CurrencyMismatchError struct {
	Left, Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("cannot operate on different currencies: %s and %s", e.Left, e.Right)
}

func (e *CurrencyMismatchError) Code() string         { return CodeCurrencyMismatch }
func (e *CurrencyMismatchError) Kind() domainerr.Kind { return domainerr.KindBusinessRule }
