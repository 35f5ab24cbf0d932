package vending

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/temoto/vendcore/currency"
	"github.com/temoto/vendcore/internal/catalog"
)

type State uint8

const (
	StateIdle         State = iota // no pending transaction, balance 0
	StateCredit                    // coins inserted before selection
	StateItemSelected              // product selected, balance may be 0
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateCredit:
		return "Credit"
	case StateItemSelected:
		return "ItemSelected"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Transaction is pending sale. Machine holds *Transaction, nil means idle.
type Transaction struct {
	ID       uuid.UUID
	Balance  currency.Amount
	Product  catalog.Product
	Selected bool
}

func newTransaction() *Transaction {
	return &Transaction{ID: uuid.New()}
}

func (tx *Transaction) state() State {
	switch {
	case tx == nil:
		return StateIdle
	case tx.Selected:
		return StateItemSelected
	default:
		return StateCredit
	}
}

func (tx *Transaction) String() string {
	if tx == nil {
		return "tx=none"
	}
	if !tx.Selected {
		return fmt.Sprintf("tx=%s balance=%s", tx.ID, tx.Balance.Format100I())
	}
	return fmt.Sprintf("tx=%s product=%s balance=%s", tx.ID, tx.Product.Code, tx.Balance.Format100I())
}
