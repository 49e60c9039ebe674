package order

import (
	"github.com/go-faster/errors"

	"github.com/optimus-erp/procure-api/internal/domain/domainerr"
)

// CodeStatusTransition is carried by StatusTransitionError.
const CodeStatusTransition = "INVALID_STATUS_TRANSITION"

// ErrNotFound is returned by repositories when an order does not exist.
var ErrNotFound = errors.New("order not found")

var _ domainerr.Error = (*StatusTransitionError)(nil)

// StatusTransitionError indicates an illegal order status transition.
type StatusTransitionError struct {
	From    Status
	Message string
}

func (e *StatusTransitionError) Error() string        { return e.Message }
func (e *StatusTransitionError) Code() string         { return CodeStatusTransition }
func (e *StatusTransitionError) Kind() domainerr.Kind { return domainerr.KindBusinessRule }
