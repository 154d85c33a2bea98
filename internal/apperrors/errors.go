package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the operator is not allowed to perform the action.
var ErrForbidden = errors.New("operation not permitted")

// Ledger errors. Each one wraps the generic category it belongs to so callers
// can match either the precise failure or its class.
var (
	ErrInvalidAmount          = wrap(ErrValidation, "amount must be a positive whole number")
	ErrInsufficientCollateral = wrap(ErrValidation, "loan amount cannot be greater than the savings balance")
	ErrBelowMinimumThreshold  = wrap(ErrValidation, "savings balance is below the minimum required for a loan")

	ErrAccountNotFound   = wrap(ErrNotFound, "savings account not found")
	ErrLoanNotFound      = wrap(ErrNotFound, "loan not found")
	ErrRepaymentNotFound = wrap(ErrNotFound, "repayment not found")
	ErrMemberNotFound    = wrap(ErrNotFound, "member not found")

	ErrOverRepayment   = errors.New("repayment amount exceeds loan balance")
	ErrDuplicateMember = wrap(ErrDuplicate, "member already has a savings account")
	ErrStorageConflict = errors.New("concurrent update detected")
)

type categorized struct {
	msg    string
	parent error
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() error { return e.parent }

func wrap(parent error, msg string) error {
	return &categorized{msg: msg, parent: parent}
}

// HTTPStatus maps an error from the ledger to the status code returned to callers.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrOverRepayment),
		errors.Is(err, ErrStorageConflict),
		errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
