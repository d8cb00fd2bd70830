package httperr

import (
	"errors"
	"fmt"
)

// Kind classifies a BusinessError so callers can decide whether to retry.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindUnavailable
	KindInfrastructure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	case KindInfrastructure:
		return "infrastructure"
	}
	return "unknown"
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Err
}

// Retryable is true only for conflicts: the caller should refresh the
// available slots and pick again.
func (e BusinessError) Retryable() bool {
	return e.Kind == KindConflict
}

// ErrBusiness keeps the plain code-only form used for state checks.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrValidation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func ErrConflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

func ErrUnavailable(code, message string) error {
	return BusinessError{Kind: KindUnavailable, Code: code, Message: message}
}

func ErrInfrastructure(code string, err error) error {
	return BusinessError{
		Kind:    KindInfrastructure,
		Code:    code,
		Message: "Service temporarily unavailable.",
		Err:     err,
	}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the kind of err; anything that is not a BusinessError is
// an infrastructure failure.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInfrastructure
}

func IsConflict(err error) bool {
	return err != nil && KindOf(err) == KindConflict
}
