// Package inventory is a counted multiset keyed by catalog entry.
// Machine uses one for coins and one for products.
package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/vendcore/currency"
)

var ErrOutOfStock = errors.New("out of stock")

// Inventory is not safe for concurrent use, owner serializes access.
// Zero value is ready to use.
type Inventory[K comparable] struct {
	counts map[K]uint
}

func New[K comparable]() *Inventory[K] {
	return &Inventory[K]{counts: make(map[K]uint)}
}

func (self *Inventory[K]) Has(k K) bool { return self.counts[k] > 0 }

func (self *Inventory[K]) Count(k K) uint { return self.counts[k] }

func (self *Inventory[K]) Add(k K) {
	if self.counts == nil {
		self.counts = make(map[K]uint)
	}
	self.counts[k]++
}

// Put overwrites count, used for seeding.
func (self *Inventory[K]) Put(k K, count uint) {
	if self.counts == nil {
		self.counts = make(map[K]uint)
	}
	self.counts[k] = count
}

func (self *Inventory[K]) Deduct(k K) error {
	if self.counts[k] == 0 {
		return errors.Annotatef(ErrOutOfStock, "deduct %v", k)
	}
	self.counts[k]--
	return nil
}

func (self *Inventory[K]) Clear() {
	self.counts = make(map[K]uint)
}

// Snapshot returns a copy with zero counts omitted.
func (self *Inventory[K]) Snapshot() map[K]uint {
	result := make(map[K]uint, len(self.counts))
	for k, c := range self.counts {
		if c > 0 {
			result[k] = c
		}
	}
	return result
}

func (self *Inventory[K]) Copy() *Inventory[K] {
	return &Inventory[K]{counts: self.Snapshot()}
}

// Total sums weight(k)*count, e.g. cash value of coins on hand.
func (self *Inventory[K]) Total(weight func(K) currency.Amount) currency.Amount {
	sum := currency.Amount(0)
	for k, c := range self.counts {
		sum += weight(k) * currency.Amount(c)
	}
	return sum
}

func (self *Inventory[K]) String() string {
	parts := make([]string, 0, len(self.counts))
	for k, c := range self.counts {
		if c > 0 {
			parts = append(parts, fmt.Sprintf("%v:%d", k, c))
		}
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
