package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

const totalsCurrency = "EUR"

// Lines renders the text block of one customer, ending with a blank line.
func (c CustomerReport) Lines() []string {
	lines := []string{
		fmt.Sprintf("Customer: %s (%s)", c.Name, c.CustomerID),
		fmt.Sprintf("Level: %s | Zone: %s | Currency: %s", c.Level, c.Zone, c.Currency),
		fmt.Sprintf("Subtotal: %.2f", c.Subtotal),
		fmt.Sprintf("Discount: %.2f", c.TotalDiscount),
		fmt.Sprintf("  - Volume discount: %.2f", c.VolumeDiscount),
		fmt.Sprintf("  - Loyalty discount: %.2f", c.LoyaltyDiscount),
	}
	if c.MorningBonus > 0 {
		lines = append(lines, fmt.Sprintf("  - Morning bonus: %.2f", c.MorningBonus))
	}
	lines = append(lines,
		fmt.Sprintf("Tax: %.2f", c.Tax),
		fmt.Sprintf("Shipping (%s, %.1fkg): %.2f", c.Zone, c.Weight, c.Shipping),
	)
	if c.Handling > 0 {
		lines = append(lines, fmt.Sprintf("Handling (%d items): %.2f", c.ItemCount, c.Handling))
	}
	return append(lines,
		fmt.Sprintf("Total: %.2f %s", c.Total, c.Currency),
		fmt.Sprintf("Loyalty Points: %d", c.FlooredPoints()),
		"",
	)
}

func (c CustomerReport) FlooredPoints() int {
	return int(math.Floor(c.LoyaltyPoints))
}

// Lines renders the whole report: one block per customer then the two totals.
func (r *Report) Lines() []string {
	lines := lo.FlatMap(r.Customers, func(c CustomerReport, _ int) []string {
		return c.Lines()
	})
	return append(lines,
		fmt.Sprintf("Grand Total: %.2f %s", r.GrandTotal, totalsCurrency),
		fmt.Sprintf("Total Tax Collected: %.2f %s", r.TotalTaxCollected, totalsCurrency),
	)
}

// Text joins the report lines without a trailing newline.
func (r *Report) Text() string {
	return strings.Join(r.Lines(), "\n")
}
