package storage

import (
	"fmt"
	"math"
	"strconv"
)

// Cents holds a BRL amount in centavos. The reference data keeps money as
// floating point, which drifts on sums; all arithmetic here stays integral
// and only the JSON/CSV boundary shows two-decimal numbers.
type Cents int64

func CentsFromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// String renders the amount with exactly two decimals, e.g. "1500.00".
func (c Cents) String() string {
	return strconv.FormatFloat(c.Float64(), 'f', 2, 64)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*c = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cents: %w", err)
	}
	*c = CentsFromFloat(v)
	return nil
}
