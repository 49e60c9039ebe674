// Package domainerr defines the shared taxonomy for typed domain errors.
//
// Two kinds of failures exist in the domain layer: validation errors
// (malformed scalar input to a value object) and business rule errors
// (well-formed data that violates a domain policy, such as insufficient
// stock or an illegal status transition). Every typed domain error carries
// a machine-readable code alongside its message.
package domainerr

import "github.com/go-faster/errors"

// Kind classifies a domain error.
type Kind string

const (
	// KindValidation marks malformed value-object input.
	KindValidation Kind = "validation"
	// KindBusinessRule marks a policy violation on otherwise valid data.
	KindBusinessRule Kind = "business_rule"
)

// CodeValidation is the shared code carried by all validation errors.
// Business rule errors carry a code specific to the violated rule.
const CodeValidation = "DOMAIN_VALIDATION_ERROR"

// Error is implemented by every typed domain error.
type Error interface {
	error
	Code() string
	Kind() Kind
}

// As unwraps err to a domain Error if one is present in its chain.
func As(err error) (Error, bool) {
	var de Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsValidation reports whether err is (or wraps) a validation error.
func IsValidation(err error) bool {
	de, ok := As(err)
	return ok && de.Kind() == KindValidation
}

// IsBusinessRule reports whether err is (or wraps) a business rule error.
func IsBusinessRule(err error) bool {
	de, ok := As(err)
	return ok && de.Kind() == KindBusinessRule
}
