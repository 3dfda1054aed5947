package valuation

import (
	"time"

	"github.com/mamadbah2/freshstock/internal/domain/models"
)

// UnknownExpiryText is shown for items whose expiry date cannot be read.
const UnknownExpiryText = "Expiry date unknown"

// Evaluate derives the display values of an item at now. Items without a
// readable expiry date are treated as fresh and never discounted.
func Evaluate(item models.Item, now time.Time, thresholdDays int) models.ItemView {
	view := models.ItemView{Item: item}

	expiry, err := ParseDate(item.ExpiryDate)
	if err != nil {
		view.Status = models.StatusFresh
		view.ExpiryText = UnknownExpiryText
		view.DiscountedPrice = finite(item.SellingPrice)
		view.Remark = RemarkNoDiscount
		return view
	}

	days := DaysUntilExpiry(expiry, now)
	quote := PriceFor(expiry, now, item.SellingPrice, item.PurchasingPrice, item.DiscountDay1, item.DiscountDay2)

	view.Status = Classify(expiry, now, thresholdDays)
	view.DaysUntilExpiry = &days
	view.ExpiryText = DescribeExpiry(days)
	view.DiscountedPrice = quote.DiscountedPrice
	view.Remark = quote.Remark
	return view
}
