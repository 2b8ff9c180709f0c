package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is a fixed-point amount with two fractional digits. It marshals to
// JSON as a quoted string ("10.00") and to BSON as Decimal128 so Mongo sorts
// it numerically.
type Money struct {
	d decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	if d.Exponent() < -2 {
		return Money{}, fmt.Errorf("no more than 2 decimal places allowed")
	}
	return Money{d: d}, nil
}

func (m Money) String() string {
	return m.d.StringFixed(2)
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// Digits reports the number of digits left of the decimal point, used to
// enforce the max_digits limits on price fields.
func (m Money) Digits() int {
	abs := m.d.Abs().Truncate(0)
	s := abs.String()
	if s == "0" {
		return 0
	}
	return len(s)
}

func (m Money) MulInt(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n)).Round(2)}
}

func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		m.d = decimal.Zero
		return nil
	}
	parsed, err := MoneyFromString(s)
	if err != nil {
		return fmt.Errorf("invalid decimal value %q", s)
	}
	m.d = parsed.d
	return nil
}

func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	dec, err := primitive.ParseDecimal128(m.String())
	if err != nil {
		return 0, nil, err
	}
	return bson.MarshalValue(dec)
}

func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeDecimal128:
		var dec primitive.Decimal128
		if err := bson.UnmarshalValue(t, data, &dec); err != nil {
			return err
		}
		d, err := decimal.NewFromString(dec.String())
		if err != nil {
			return err
		}
		m.d = d
		return nil
	case bson.TypeDouble:
		var f float64
		if err := bson.UnmarshalValue(t, data, &f); err != nil {
			return err
		}
		m.d = decimal.NewFromFloat(f).Round(2)
		return nil
	default:
		return fmt.Errorf("cannot decode %v into Money", t)
	}
}
