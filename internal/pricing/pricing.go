package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Amounts are Chilean pesos, an integer currency with no subunits.
const (
	IVARate               = 19 // percent
	FreeShippingThreshold = 50000
	StandardShippingCost  = 5990
	ExpressShippingCost   = 9990
)

type LineItem struct {
	Quantity  uint
	UnitPrice int64
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}

// CalculateTotals derives subtotal, 19% IVA (rounded half-up) and shipping for
// a set of order lines. Shipping is free once the subtotal reaches the
// threshold; below it the express flag selects the express rate.
func CalculateTotals(items []LineItem, expressShipping bool) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += int64(item.Quantity) * item.UnitPrice
	}

	tax := (subtotal*IVARate + 50) / 100

	var shipping int64
	if subtotal < FreeShippingThreshold {
		if expressShipping {
			shipping = ExpressShippingCost
		} else {
			shipping = StandardShippingCost
		}
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}

const orderNumberPrefix = "ANT"

// NextOrderNumber returns the next ANT-YYYYMMDD-NNNN order number for the given
// day, continuing after the highest sequence present in existing. Numbers for
// other days and unparsable entries are ignored. Uniqueness under concurrent
// writers is backed by the unique constraint on orders.order_number.
func NextOrderNumber(existing []string, day time.Time) string {
	dateStr := day.Format("20060102")
	prefix := fmt.Sprintf("%s-%s-", orderNumberPrefix, dateStr)

	highest := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		seq, err := strconv.Atoi(number[len(prefix):])
		if err != nil {
			continue
		}
		if seq > highest {
			highest = seq
		}
	}

	return fmt.Sprintf("%s%04d", prefix, highest+1)
}

// OrderNumberDayPattern is the SQL LIKE pattern matching every order number
// generated for the given day.
func OrderNumberDayPattern(day time.Time) string {
	return fmt.Sprintf("%s-%s-%%", orderNumberPrefix, day.Format("20060102"))
}
