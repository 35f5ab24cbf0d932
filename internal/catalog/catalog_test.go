package catalog

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/vendcore/currency"
)

func TestDenominations(t *testing.T) {
	t.Parallel()

	ds := Denominations()
	require.NoError(t, Validate(ds))
	assert.Equal(t, []Denomination{Quarter, Dime, Nickel, Penny}, ds)

	// returned slice is a copy
	ds[0] = Penny
	assert.Equal(t, Quarter, Denominations()[0])
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input []Denomination
		ok    bool
	}{
		{"empty", nil, false},
		{"single", []Denomination{Penny}, true},
		{"zero", []Denomination{Dime, {Name: "void", Value: 0}}, false},
		{"ascending", []Denomination{Penny, Nickel}, false},
		{"duplicate", []Denomination{Dime, {Name: "ten", Value: 10}}, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.input)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.IsNotValid(err), "err=%v", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	d, err := DenominationByName(" Quarter ")
	require.NoError(t, err)
	assert.Equal(t, Quarter, d)
	_, err = DenominationByName("dollar")
	assert.True(t, errors.IsNotFound(err), "err=%v", err)

	p, err := ProductByCode("SODA")
	require.NoError(t, err)
	assert.Equal(t, Soda, p)
	assert.Equal(t, currency.Amount(47), p.Price)
	_, err = ProductByCode("water")
	assert.True(t, errors.IsNotFound(err), "err=%v", err)

	assert.Equal(t, "pepsi(0.37)", Pepsi.String())
	assert.Equal(t, []Product{Coke, Pepsi, Soda}, Products())
}
