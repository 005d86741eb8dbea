package shared

import "errors"

var (
	// ErrCurrencyMismatch arithmetic on two Money values with different currencies
	ErrCurrencyMismatch = errors.New("cannot combine money with different currencies")

	// ErrMoneyOverflow arithmetic result does not fit into int64
	ErrMoneyOverflow = errors.New("money amount overflow")
)

// Money value object. Amounts are stored in the smallest currency unit
// (tiyin, kopecks, cents) to keep arithmetic exact.
type Money struct {
	amount   int64
	currency string
}

// NewMoney creates a Money value object.
func NewMoney(amount int64, currency string) *Money {
	return &Money{
		amount:   amount,
		currency: currency,
	}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() int64 {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// Add returns the sum as a new Money value object.
func (m Money) Add(other Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, ErrCurrencyMismatch
	}

	sum := m.amount + other.amount
	// Same-sign operands producing an opposite-sign result means overflow
	if (m.amount > 0 && other.amount > 0 && sum < 0) ||
		(m.amount < 0 && other.amount < 0 && sum > 0) {
		return nil, ErrMoneyOverflow
	}

	return &Money{amount: sum, currency: m.currency}, nil
}

// Multiply returns the amount multiplied by a quantity as a new Money value object.
func (m Money) Multiply(quantity int) (*Money, error) {
	q := int64(quantity)
	if q == 0 || m.amount == 0 {
		return &Money{amount: 0, currency: m.currency}, nil
	}

	product := m.amount * q
	if product/q != m.amount {
		return nil, ErrMoneyOverflow
	}
	return &Money{amount: product, currency: m.currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// Equals compares two Money value objects by amount and currency.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}
