package valuation

import (
	"testing"
	"time"

	"github.com/mamadbah2/freshstock/internal/domain/models"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		expiry    time.Time
		threshold int
		want      models.ExpiryStatus
	}{
		{"same instant is expired", now, 2, models.StatusExpired},
		{"past is expired", now.AddDate(0, 0, -3), 2, models.StatusExpired},
		{"one day ahead is expiring", now.AddDate(0, 0, 1), 2, models.StatusExpiring},
		{"threshold boundary is expiring", now.AddDate(0, 0, 2), 2, models.StatusExpiring},
		{"past list threshold is fresh", now.AddDate(0, 0, 3), 2, models.StatusFresh},
		{"dashboard threshold still expiring", now.AddDate(0, 0, 3), 3, models.StatusExpiring},
		{"past dashboard threshold is fresh", now.AddDate(0, 0, 4), 3, models.StatusFresh},
		{"zero threshold never expiring", now.Add(time.Minute), 0, models.StatusFresh},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.expiry, now, tc.threshold); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestClassifyExpiredIffNotAfterNow(t *testing.T) {
	now := time.Date(2024, time.May, 1, 15, 0, 0, 0, time.UTC)
	for offset := -72; offset <= 120; offset += 7 {
		expiry := now.Add(time.Duration(offset) * time.Hour)
		for _, threshold := range []int{ListThresholdDays, DashboardThresholdDays} {
			status := Classify(expiry, now, threshold)
			if !status.Valid() {
				t.Fatalf("unexpected status %q", status)
			}
			if (status == models.StatusExpired) != !expiry.After(now) {
				t.Fatalf("offset %dh threshold %d: got %s", offset, threshold, status)
			}
		}
	}
}

func TestDescribeExpiry(t *testing.T) {
	cases := map[int]string{
		-5: "Expired 5 days ago",
		-1: "Expired 1 days ago",
		0:  "Expires today",
		1:  "Expires tomorrow",
		2:  "Expires day after tomorrow",
		3:  "Expires in 3 days",
		14: "Expires in 14 days",
	}
	for days, want := range cases {
		if got := DescribeExpiry(days); got != want {
			t.Fatalf("DescribeExpiry(%d) = %q, want %q", days, got, want)
		}
	}
}

func TestExpiryOnTheCurrentInstant(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	expiry, err := ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if got := Classify(expiry, now, ListThresholdDays); got != models.StatusExpired {
		t.Fatalf("expected expired, got %s", got)
	}
	days := DaysUntilExpiry(expiry, now)
	if days != 0 {
		t.Fatalf("expected 0 days, got %d", days)
	}
	if got := DescribeExpiry(days); got != "Expires today" {
		t.Fatalf("expected \"Expires today\", got %q", got)
	}
}
