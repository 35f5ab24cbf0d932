package main

import (
	"fmt"
	"io"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/vendcore/internal/catalog"
	"github.com/temoto/vendcore/internal/vending"
	"github.com/temoto/vendcore/log2"
)

const usage = `commands:
- select CODE        select product, prints price
- insert COIN...     insert one or more coins
- collect            take product and change
- refund             return balance as coins
- reset              empty machine
- stats              total sales and inventories
- state              pending transaction
- help
`

type console struct {
	m   *vending.Machine
	log *log2.Log
	out io.Writer
}

func newConsole(m *vending.Machine, log *log2.Log, out io.Writer) *console {
	return &console{m: m, log: log, out: out}
}

// execute is prompt.Executor, errors are reported and don't stop the loop.
func (c *console) execute(line string) {
	if err := c.run(line); err != nil {
		c.log.Debugf("command=%q err=%s", line, errors.ErrorStack(err))
		fmt.Fprintf(c.out, "error: %s\n", describe(err))
	}
}

func (c *console) run(line string) error {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(words[0]), words[1:]
	switch cmd {
	case "help", "?":
		fmt.Fprint(c.out, usage)

	case "select":
		if len(args) != 1 {
			return errors.Errorf("select expects one product code")
		}
		p, err := catalog.ProductByCode(args[0])
		if err != nil {
			return err
		}
		price, err := c.m.SelectItem(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s price %s, balance %s\n", p.Name, price.Format100I(), c.m.Balance().Format100I())

	case "insert":
		if len(args) == 0 {
			return errors.Errorf("insert expects coin names")
		}
		coins := make([]catalog.Denomination, 0, len(args))
		for _, a := range args {
			d, err := catalog.DenominationByName(a)
			if err != nil {
				return err
			}
			coins = append(coins, d)
		}
		for _, d := range coins {
			c.m.InsertCoin(d)
		}
		fmt.Fprintf(c.out, "balance %s\n", c.m.Balance().Format100I())

	case "collect":
		purchase, err := c.m.CollectItemAndChange()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s is collected, change: %s\n", purchase.Product.Name, formatCoins(purchase.Change))

	case "refund":
		coins, err := c.m.Refund()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "refund: %s\n", formatCoins(coins))

	case "reset":
		c.m.Reset()
		fmt.Fprintln(c.out, "machine is empty")

	case "stats":
		fmt.Fprintln(c.out, c.m.Stats().String())

	case "state":
		tx, ok := c.m.Transaction()
		if !ok {
			fmt.Fprintln(c.out, vending.StateIdle.String())
			break
		}
		fmt.Fprintf(c.out, "%s %s\n", c.m.State().String(), tx.String())

	default:
		return errors.Errorf("unknown command=%s, try help", cmd)
	}
	return nil
}

func (c *console) complete(d prompt.Document) []prompt.Suggest {
	words := strings.Fields(d.TextBeforeCursor())
	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(d.TextBeforeCursor(), " ")) {
		return prompt.FilterHasPrefix(commandSuggests, d.GetWordBeforeCursor(), true)
	}
	switch strings.ToLower(words[0]) {
	case "select":
		return prompt.FilterHasPrefix(productSuggests(), d.GetWordBeforeCursor(), true)
	case "insert":
		return prompt.FilterHasPrefix(coinSuggests(), d.GetWordBeforeCursor(), true)
	}
	return nil
}

var commandSuggests = []prompt.Suggest{
	{Text: "select", Description: "select product"},
	{Text: "insert", Description: "insert coins"},
	{Text: "collect", Description: "take product and change"},
	{Text: "refund", Description: "return balance"},
	{Text: "reset", Description: "empty machine"},
	{Text: "stats", Description: "sales and inventory"},
	{Text: "state", Description: "pending transaction"},
	{Text: "help"},
}

func productSuggests() []prompt.Suggest {
	ps := catalog.Products()
	result := make([]prompt.Suggest, 0, len(ps))
	for _, p := range ps {
		result = append(result, prompt.Suggest{Text: p.Code, Description: p.Price.Format100I()})
	}
	return result
}

func coinSuggests() []prompt.Suggest {
	ds := catalog.Denominations()
	result := make([]prompt.Suggest, 0, len(ds))
	for _, d := range ds {
		result = append(result, prompt.Suggest{Text: d.Name, Description: d.Value.String()})
	}
	return result
}

func formatCoins(coins []catalog.Denomination) string {
	if len(coins) == 0 {
		return "none"
	}
	parts := make([]string, len(coins))
	for i, d := range coins {
		parts[i] = d.Name
	}
	return strings.Join(parts, " ")
}

// describe turns machine errors into customer message.
func describe(err error) string {
	if remaining, ok := vending.IsNotFullyPaid(err); ok {
		return fmt.Sprintf("price not fully paid, insert %s more", remaining.Format100I())
	}
	switch errors.Cause(err) {
	case vending.ErrSoldOut:
		return "sold out, please buy another item"
	case vending.ErrInsufficientChange:
		return "not sufficient change, please try another product or refund"
	case vending.ErrNoSelection:
		return "select product first"
	}
	return err.Error()
}
