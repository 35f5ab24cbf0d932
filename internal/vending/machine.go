// Package vending is the transaction controller of single coin vending machine.
//
// Flow: SelectItem -> InsertCoin (repeat) -> CollectItemAndChange or Refund.
// Coins may be inserted before selection, balance is carried over when
// selection changes. Machine is not safe for concurrent use, caller must
// serialize whole select..collect sequence.
package vending

import (
	"github.com/juju/errors"
	"github.com/temoto/vendcore/currency"
	"github.com/temoto/vendcore/internal/catalog"
	"github.com/temoto/vendcore/internal/inventory"
	"github.com/temoto/vendcore/internal/money"
	"github.com/temoto/vendcore/internal/state"
	"github.com/temoto/vendcore/log2"
)

type Machine struct {
	Log *log2.Log

	strategy   money.Strategy
	cash       *money.Cash
	items      *inventory.Inventory[catalog.Product]
	tx         *Transaction
	totalSales currency.Amount
}

// Purchase is what customer takes away after successful collect.
type Purchase struct {
	Product catalog.Product
	Change  []catalog.Denomination
}

type Option func(*Machine)

func WithLog(log *log2.Log) Option { return func(m *Machine) { m.Log = log } }

func WithStrategy(s money.Strategy) Option { return func(m *Machine) { m.strategy = s } }

func WithSeed(seed state.Seed) Option {
	return func(m *Machine) {
		for d, count := range seed.Cash {
			m.cash.Put(d, count)
		}
		for p, count := range seed.Items {
			m.items.Put(p, count)
		}
	}
}

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		strategy: money.NewLargestFirst(catalog.Denominations()),
		cash:     inventory.New[catalog.Denomination](),
		items:    inventory.New[catalog.Product](),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func NewFromConfig(log *log2.Log, c *state.Config) (*Machine, error) {
	seed, err := c.Seed()
	if err != nil {
		return nil, errors.Annotate(err, "machine seed")
	}
	m := NewMachine(WithLog(log), WithSeed(seed))
	log.Debugf("machine init items=%s cash=%s", m.items.String(), m.cash.String())
	return m, nil
}

func (m *Machine) State() State { return m.tx.state() }
func (m *Machine) TotalSales() currency.Amount { return m.totalSales }

func (m *Machine) Balance() currency.Amount {
	if m.tx == nil {
		return 0
	}
	return m.tx.Balance
}

// Transaction returns copy of pending transaction.
func (m *Machine) Transaction() (Transaction, bool) {
	if m.tx == nil {
		return Transaction{}, false
	}
	return *m.tx, true
}

// SelectItem returns price of available product, otherwise ErrSoldOut and
// state is unchanged. Balance from earlier inserted coins is kept.
func (m *Machine) SelectItem(p catalog.Product) (currency.Amount, error) {
	const tag = "vending.select"
	if !m.items.Has(p) {
		m.Log.Debugf("%s product=%s sold out", tag, p.Code)
		return 0, errors.Annotatef(ErrSoldOut, "product=%s", p.Code)
	}
	if m.tx == nil {
		m.tx = newTransaction()
	}
	m.tx.Product = p
	m.tx.Selected = true
	m.Log.Debugf("%s %s price=%s", tag, m.tx.String(), p.Price.Format100I())
	return p.Price, nil
}

func (m *Machine) InsertCoin(d catalog.Denomination) {
	if m.tx == nil {
		m.tx = newTransaction()
	}
	m.tx.Balance += d.Value.Amount()
	m.cash.Add(d)
	m.Log.Debugf("vending.insert coin=%s %s", d.Name, m.tx.String())
}

// CollectItemAndChange completes sale. Possible errors leave state unchanged:
// ErrNoSelection, *NotFullyPaidError, ErrInsufficientChange (caller should Refund),
// ErrSoldOut.
func (m *Machine) CollectItemAndChange() (Purchase, error) {
	const tag = "vending.collect"
	tx := m.tx
	if tx.state() != StateItemSelected {
		return Purchase{}, errors.Annotate(ErrNoSelection, tag)
	}

	price := tx.Product.Price
	if tx.Balance < price {
		err := &NotFullyPaidError{Remaining: price.Sub(tx.Balance)}
		m.Log.Debugf("%s %s remaining=%s", tag, tx.String(), err.Remaining.Format100I())
		return Purchase{}, errors.Trace(err)
	}

	changeAmount := tx.Balance.Sub(price)
	change, err := money.Change(m.cash, changeAmount, m.strategy)
	if err != nil {
		m.Log.Infof("%s %s change=%s cash=%s err=%v", tag, tx.String(), changeAmount.Format100I(), m.cash.String(), err)
		return Purchase{}, errors.Annotatef(err, "%s %s", tag, tx.String())
	}

	// Select checked stock and change plan was made on this cash, so both
	// failures below mean broken Strategy or stock changed behind machine.
	if err := m.items.Deduct(tx.Product); err != nil {
		m.Log.Errorf("%s %s item deduct err=%v", tag, tx.String(), err)
		return Purchase{}, errors.Annotatef(ErrSoldOut, "%s %s", tag, tx.String())
	}
	if err := money.Commit(m.cash, change); err != nil {
		m.items.Add(tx.Product)
		m.Log.Errorf("%s CRITICAL %s change commit err=%v", tag, tx.String(), err)
		return Purchase{}, errors.Annotate(err, tag)
	}

	m.totalSales += price
	m.tx = nil
	m.Log.Infof("%s %s sold change=%v total_sales=%s", tag, tx.String(), change, m.totalSales.Format100I())
	return Purchase{Product: tx.Product, Change: change}, nil
}

// Refund returns whole balance as coins and drops selection.
// On ErrInsufficientChange balance and selection stay, there is no other way
// to return money until cash is replenished or machine is reset.
func (m *Machine) Refund() ([]catalog.Denomination, error) {
	const tag = "vending.refund"
	tx := m.tx
	if tx == nil {
		return []catalog.Denomination{}, nil
	}

	coins, err := money.Change(m.cash, tx.Balance, m.strategy)
	if err != nil {
		m.Log.Errorf("%s %s cash=%s err=%v", tag, tx.String(), m.cash.String(), err)
		return nil, errors.Annotatef(err, "%s %s", tag, tx.String())
	}
	if err := money.Commit(m.cash, coins); err != nil {
		m.Log.Errorf("%s CRITICAL %s commit err=%v", tag, tx.String(), err)
		return nil, errors.Annotate(err, tag)
	}

	m.tx = nil
	m.Log.Infof("%s %s coins=%v", tag, tx.String(), coins)
	return coins, nil
}

// Reset empties both inventories, sales counter and pending transaction.
func (m *Machine) Reset() {
	m.cash.Clear()
	m.items.Clear()
	m.totalSales = 0
	m.tx = nil
	m.Log.Infof("vending.reset")
}
