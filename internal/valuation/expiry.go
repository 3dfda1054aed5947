package valuation

import (
	"fmt"
	"time"

	"github.com/mamadbah2/freshstock/internal/domain/models"
)

// Expiring windows used by the two call sites that classify items.
const (
	DashboardThresholdDays = 3
	ListThresholdDays      = 2
)

// Classify maps an expiry date to a status. An item is expired once its
// expiry instant is not after now, and expiring while it falls within
// thresholdDays of now.
func Classify(expiry, now time.Time, thresholdDays int) models.ExpiryStatus {
	if !expiry.After(now) {
		return models.StatusExpired
	}
	if !expiry.After(now.Add(time.Duration(thresholdDays) * day)) {
		return models.StatusExpiring
	}
	return models.StatusFresh
}

// DaysUntilExpiry is the whole number of days left before expiry.
func DaysUntilExpiry(expiry, now time.Time) int {
	return DaysUntil(expiry, now)
}

// DescribeExpiry renders a day count for display.
func DescribeExpiry(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("Expired %d days ago", -days)
	case days == 0:
		return "Expires today"
	case days == 1:
		return "Expires tomorrow"
	case days == 2:
		return "Expires day after tomorrow"
	default:
		return fmt.Sprintf("Expires in %d days", days)
	}
}
