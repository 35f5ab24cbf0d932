package currency

import (
	"github.com/shopspring/decimal"
)

// Amount is integer counting lowest currency unit, e.g. $1.20 = 120
type Amount uint32

// Format100I renders amount in major units with two decimal places, 47 = "0.47".
func (a Amount) Format100I() string { return decimal.New(int64(a), -2).StringFixed(2) }
func (a Amount) String() string     { return a.Format100I() }

// Sub returns a-b, or zero when b is greater.
func (a Amount) Sub(b Amount) Amount {
	if b >= a {
		return 0
	}
	return a - b
}

// Nominal is value of one coin
type Nominal Amount

func (n Nominal) Amount() Amount  { return Amount(n) }
func (n Nominal) String() string { return Amount(n).Format100I() }
