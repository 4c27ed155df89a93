package kernel

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxScale is the number of decimal places a Money amount may carry.
const MaxScale = 4

var (
	ErrNegativeAmount      = errors.New("money amount cannot be negative")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrMoneyNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney")
)

// Currency is an ISO 4217 code from the supported set.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
)

// ParseCurrency accepts a currency code in any letter case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Validate() error {
	switch c {
	case EUR, USD, GBP:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("unsupported currency %q", string(c)))
	}
}

// Money is an immutable non-negative decimal amount in a single currency.
// Arithmetic between two values requires them to share a currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if err := currency.Validate(); err != nil {
		return Money{}, err
	}
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, amount)
	}
	if !amount.Equal(amount.Truncate(MaxScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s has more than %d decimal places", amount, MaxScale))
	}
	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ZeroMoney returns a zero amount in currency.
func ZeroMoney(currency Currency) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports numeric equality in the same currency, so 1.5 EUR equals 1.50 EUR.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, m.mismatch(other)
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Subtract fails with ErrNegativeAmount when other is larger than m.
func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, m.mismatch(other)
	}
	return NewMoney(m.amount.Sub(other.amount), m.currency)
}

func (m Money) Multiply(quantity uint) Money {
	return Money{
		amount:   m.amount.Mul(decimal.NewFromUint64(uint64(quantity))),
		currency: m.currency,
		guard:    m.guard,
	}
}

// Compare returns -1, 0 or +1. Amounts in different currencies are not comparable.
func (m Money) Compare(other Money) (int, error) {
	if m.currency != other.currency {
		return 0, m.mismatch(other)
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) Validate() error {
	if err := m.guard.Validate(ErrMoneyNotConstructed); err != nil {
		return err
	}
	return m.currency.Validate()
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + string(m.currency)
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.String(), Currency: string(m.currency)})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	currency, err := ParseCurrency(raw.Currency)
	if err != nil {
		return err
	}
	parsed, err := NewMoney(amount, currency)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) mismatch(other Money) error {
	return fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
}
