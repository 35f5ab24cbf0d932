// Package money plans and commits coin payouts.
package money

import (
	"fmt"
	"sort"

	"github.com/juju/errors"
	"github.com/temoto/vendcore/currency"
	"github.com/temoto/vendcore/internal/catalog"
	"github.com/temoto/vendcore/internal/inventory"
)

type Cash = inventory.Inventory[catalog.Denomination]

var ErrInsufficientChange = errors.New("not sufficient change")

// Strategy takes one coin not exceeding max from working copy of cash.
// Change() calls it in loop until amount is covered.
type Strategy interface {
	ExpendOne(from *Cash, max currency.Amount) (catalog.Denomination, error)
}

// LargestFirst is greedy: highest value coin that fits and is on hand.
// Not optimal under constrained supply, e.g. 30 from {25:1, 10:3} fails
// because quarter is taken first.
type LargestFirst struct {
	order []catalog.Denomination
}

// NewLargestFirst panics when ds has zero or duplicate values.
func NewLargestFirst(ds []catalog.Denomination) *LargestFirst {
	order := make([]catalog.Denomination, len(ds))
	copy(order, ds)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Value > order[j].Value })
	if err := catalog.Validate(order); err != nil {
		panic("code error payout order: " + err.Error())
	}
	return &LargestFirst{order: order}
}

func (s *LargestFirst) ExpendOne(from *Cash, max currency.Amount) (catalog.Denomination, error) {
	return expendOneOrdered(from, s.order, max)
}

func expendOneOrdered(from *Cash, order []catalog.Denomination, max currency.Amount) (catalog.Denomination, error) {
	for _, d := range order {
		if d.Value.Amount() <= max && from.Has(d) {
			if err := from.Deduct(d); err != nil {
				return catalog.Denomination{}, errors.Trace(err)
			}
			return d, nil
		}
	}
	return catalog.Denomination{}, ErrInsufficientChange
}

// Change returns coins summing exactly to amount, cash is not modified.
// Availability is counted per planned coin on a working copy, so result never
// holds more coins of one kind than cash has.
// Safe to call as feasibility probe. On error partial result is discarded.
func Change(cash *Cash, amount currency.Amount, strategy Strategy) ([]catalog.Denomination, error) {
	result := []catalog.Denomination{}
	if amount == 0 {
		return result, nil
	}
	work := cash.Copy()
	for remain := amount; remain > 0; {
		d, err := strategy.ExpendOne(work, remain)
		if err != nil {
			return nil, errors.Annotatef(err, "change amount=%s remain=%s", amount.Format100I(), remain.Format100I())
		}
		if d.Value == 0 || d.Value.Amount() > remain {
			panic(fmt.Sprintf("code error Strategy returned coin=%v value=%d for remain=%d", d, d.Value, remain))
		}
		result = append(result, d)
		remain -= d.Value.Amount()
	}
	return result, nil
}

// Commit deducts planned coins from cash, all or nothing.
func Commit(cash *Cash, coins []catalog.Denomination) error {
	for i, d := range coins {
		if err := cash.Deduct(d); err != nil {
			for _, back := range coins[:i] {
				cash.Add(back)
			}
			return errors.Annotatef(err, "commit coin #%d", i)
		}
	}
	return nil
}

func Sum(coins []catalog.Denomination) currency.Amount {
	sum := currency.Amount(0)
	for _, d := range coins {
		sum += d.Value.Amount()
	}
	return sum
}
