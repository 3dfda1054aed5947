package valuation

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the date-only format items are stored with.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// ErrInvalidDate is returned when a stored date cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate reads a date-only string as midnight UTC. Values carrying a time
// component are truncated to their date part.
func ParseDate(value string) (time.Time, error) {
	str := strings.TrimSpace(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	if len(str) > len(DateLayout) {
		str = str[:len(DateLayout)]
	}

	t, err := time.Parse(DateLayout, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// DaysUntil returns the number of calendar days from now until target,
// rounding partial days up.
func DaysUntil(target, now time.Time) int {
	days := math.Ceil(float64(target.Sub(now)) / float64(day))
	if days == 0 {
		// ceil of a small negative fraction is -0.
		return 0
	}
	return int(days)
}
