package vending

import (
	"fmt"
	"strings"

	"github.com/temoto/vendcore/currency"
	"github.com/temoto/vendcore/internal/catalog"
)

// Stats is read-only snapshot, zero counts are omitted from maps.
type Stats struct {
	TotalSales currency.Amount
	CashTotal  currency.Amount
	Items      map[catalog.Product]uint
	Cash       map[catalog.Denomination]uint
}

func (m *Machine) Stats() Stats {
	return Stats{
		TotalSales: m.totalSales,
		CashTotal:  m.cash.Total(func(d catalog.Denomination) currency.Amount { return d.Value.Amount() }),
		Items:      m.items.Snapshot(),
		Cash:       m.cash.Snapshot(),
	}
}

// String lists every catalog entry in catalog order, including zero counts.
func (s Stats) String() string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "total sales: %s\n", s.TotalSales.Format100I())
	b.WriteString("items:")
	for _, p := range catalog.Products() {
		fmt.Fprintf(&b, " %s=%d", p.Code, s.Items[p])
	}
	b.WriteString("\ncash:")
	for _, d := range catalog.Denominations() {
		fmt.Fprintf(&b, " %s=%d", d.Name, s.Cash[d])
	}
	fmt.Fprintf(&b, " (total %s)", s.CashTotal.Format100I())
	return b.String()
}
