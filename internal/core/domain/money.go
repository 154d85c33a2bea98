package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/coop_savings_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ValidateWholeAmount rejects amounts that are zero, negative or fractional.
func ValidateWholeAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.IsInteger() {
		return fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	return nil
}

// ParseWholeAmount parses user input into a validated ledger amount.
func ParseWholeAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidAmount, raw)
	}
	if err := ValidateWholeAmount(amount); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// ValidateUnits rejects non-positive unit deltas.
func ValidateUnits(units int64) error {
	if units <= 0 {
		return fmt.Errorf("%w: units must be positive, got %d", apperrors.ErrInvalidAmount, units)
	}
	return nil
}
