// Package catalog holds static reference data: coin denominations and products.
// Entries are plain values compared by identity, catalogs are fixed at compile time.
package catalog

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/vendcore/currency"
)

// Denomination is a coin kind with fixed face value.
type Denomination struct {
	Name  string
	Value currency.Nominal
}

func (d Denomination) String() string { return d.Name }

// Product is a catalog item with fixed price.
type Product struct {
	Code  string
	Name  string
	Price currency.Amount
}

func (p Product) String() string { return fmt.Sprintf("%s(%s)", p.Code, p.Price.Format100I()) }

var (
	Quarter = Denomination{Name: "quarter", Value: 25}
	Dime    = Denomination{Name: "dime", Value: 10}
	Nickel  = Denomination{Name: "nickel", Value: 5}
	Penny   = Denomination{Name: "penny", Value: 1}

	Coke  = Product{Code: "coke", Name: "Coke", Price: 25}
	Pepsi = Product{Code: "pepsi", Name: "Pepsi", Price: 37}
	Soda  = Product{Code: "soda", Name: "Soda", Price: 47}
)

// strictly descending by value, change making depends on this order
var denominations = [...]Denomination{Quarter, Dime, Nickel, Penny}

var products = [...]Product{Coke, Pepsi, Soda}

// Denominations returns coin kinds ordered by value, highest first.
func Denominations() []Denomination {
	result := make([]Denomination, len(denominations))
	copy(result, denominations[:])
	return result
}

func Products() []Product {
	result := make([]Product, len(products))
	copy(result, products[:])
	return result
}

func DenominationByName(name string) (Denomination, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, d := range denominations {
		if d.Name == key {
			return d, nil
		}
	}
	return Denomination{}, errors.NotFoundf("coin=%s", name)
}

func ProductByCode(code string) (Product, error) {
	key := strings.ToLower(strings.TrimSpace(code))
	for _, p := range products {
		if p.Code == key {
			return p, nil
		}
	}
	return Product{}, errors.NotFoundf("product=%s", code)
}

// Validate checks that values are positive and strictly descending, which implies distinct.
func Validate(ds []Denomination) error {
	if len(ds) == 0 {
		return errors.NotValidf("empty denomination list")
	}
	for i, d := range ds {
		if d.Value == 0 {
			return errors.NotValidf("coin=%s value=0", d.Name)
		}
		if i > 0 && ds[i-1].Value <= d.Value {
			return errors.NotValidf("coin=%s value=%d after coin=%s value=%d, order must be strictly descending",
				d.Name, d.Value, ds[i-1].Name, ds[i-1].Value)
		}
	}
	return nil
}
