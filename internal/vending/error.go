package vending

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/vendcore/currency"
	"github.com/temoto/vendcore/internal/money"
)

var (
	ErrSoldOut     = errors.New("sold out, please buy another item")
	ErrNoSelection = errors.New("no product selected")
	// ErrInsufficientChange means cash on hand can't make exact change or refund.
	ErrInsufficientChange = money.ErrInsufficientChange
)

// NotFullyPaidError carries amount still owed for selected product.
type NotFullyPaidError struct {
	Remaining currency.Amount
}

func (e *NotFullyPaidError) Error() string {
	return fmt.Sprintf("price not fully paid, remaining: %s", e.Remaining.Format100I())
}

// IsNotFullyPaid returns remaining amount if err is caused by NotFullyPaidError.
func IsNotFullyPaid(err error) (currency.Amount, bool) {
	if e, ok := errors.Cause(err).(*NotFullyPaidError); ok {
		return e.Remaining, true
	}
	return 0, false
}
