package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells whether an entry adds to or takes from the wallet.
type EntryType string

const (
	EntryDeposit    EntryType = "deposit"
	EntryWithdrawal EntryType = "withdrawal"
)

// AmountPlaces is the fixed number of fractional digits kept for every amount.
const AmountPlaces = 2

// Bounds of an amount as received, checked before coercion. MaxAmountDigits is
// the precision of the Decimal128 ledger column.
const (
	MaxAmountDigits        = 34
	MaxAmountIntegerDigits = 15
)

// DateLayout renders the day/month stamp stored with each entry.
const DateLayout = "02/01"

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case EntryDeposit, EntryWithdrawal:
		return true
	}
	return false
}

// Entry is one immutable line of a user's ledger.
type Entry struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Description string
	Type        EntryType
	Date        string
	CreatedAt   time.Time
}

// AmountInRange reports whether amount is small enough to be coerced and
// stored. It only inspects the coefficient length and the exponent, so inputs
// such as 1e5000000 are rejected without being expanded.
func AmountInRange(amount decimal.Decimal) bool {
	exp := int64(amount.Exponent())
	if exp < -MaxAmountDigits {
		return false
	}
	digits := int64(amount.NumDigits())
	return digits <= MaxAmountDigits && digits+exp <= MaxAmountIntegerDigits
}

// CoerceAmount rounds amount half away from zero to AmountPlaces digits.
func CoerceAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountPlaces)
}

// StampDate formats t as the day/month stamp of an entry.
func StampDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
