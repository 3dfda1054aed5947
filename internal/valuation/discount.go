package valuation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Remarks attached to every quote.
const (
	RemarkNoDiscount = "No discount applied"
	RemarkApplied    = "Discount applied"
	RemarkBelowCost  = "Discounted price less than original price"
)

var hundred = decimal.NewFromInt(100)

// Quote is the sale price of an item at a given instant.
type Quote struct {
	DiscountedPrice float64 `json:"discountedPrice"`
	Remark          string  `json:"remark"`
}

// PriceFor applies discountDay1 when exactly one day is left before expiry
// and discountDay2 when two are left. Percentages are 0-100. A discount that
// takes the price under the purchasing price is still reported, with a
// remark flagging it.
func PriceFor(expiry, now time.Time, sellingPrice, purchasingPrice, discountDay1, discountDay2 float64) Quote {
	sellingPrice = finite(sellingPrice)

	var pct float64
	switch DaysUntil(expiry, now) {
	case 1:
		pct = discountDay1
	case 2:
		pct = discountDay2
	default:
		return Quote{DiscountedPrice: sellingPrice, Remark: RemarkNoDiscount}
	}

	return applyDiscount(finite(pct), sellingPrice, finite(purchasingPrice))
}

func applyDiscount(pct, sellingPrice, purchasingPrice float64) Quote {
	price := decimal.NewFromFloat(sellingPrice)
	reduced := price.Sub(decimal.NewFromFloat(pct).Div(hundred).Mul(price))

	quote := Quote{DiscountedPrice: reduced.InexactFloat64(), Remark: RemarkApplied}
	if reduced.LessThan(decimal.NewFromFloat(purchasingPrice)) {
		quote.Remark = RemarkBelowCost
	}
	return quote
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
