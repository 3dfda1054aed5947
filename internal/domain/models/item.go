package models

import "time"

// Item is one grocery unit tracked at one store location.
type Item struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Quantity        float64    `json:"quantity"`
	Unit            string     `json:"unit"`
	PurchaseDate    string     `json:"purchaseDate"`
	ExpiryDate      string     `json:"expiryDate"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes"`
	DiscountDay1    float64    `json:"discount1"`
	DiscountDay2    float64    `json:"discount2"`
	PurchasingPrice float64    `json:"purchasing_price"`
	SellingPrice    float64    `json:"selling_price"`
	Walmart         string     `json:"walmart"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// ExpiryStatus is the freshness classification of an item.
type ExpiryStatus string

const (
	StatusFresh    ExpiryStatus = "fresh"
	StatusExpiring ExpiryStatus = "expiring"
	StatusExpired  ExpiryStatus = "expired"
)

// Valid reports whether s is one of the known statuses.
func (s ExpiryStatus) Valid() bool {
	switch s {
	case StatusFresh, StatusExpiring, StatusExpired:
		return true
	}
	return false
}

// ItemView is an item decorated with the values derived from its dates and pricing.
type ItemView struct {
	Item
	Status          ExpiryStatus `json:"status"`
	DaysUntilExpiry *int         `json:"daysUntilExpiry"`
	ExpiryText      string       `json:"expiryText"`
	DiscountedPrice float64      `json:"discountedPrice"`
	Remark          string       `json:"remark"`
}

// ItemFilter narrows an item listing. Empty fields match everything.
type ItemFilter struct {
	Search   string       `form:"search"`
	Category string       `form:"category"`
	Status   ExpiryStatus `form:"status"`
}

// Stats aggregates the inventory for the dashboard.
type Stats struct {
	Total        int `json:"total"`
	Fresh        int `json:"fresh"`
	ExpiringSoon int `json:"expiringSoon"`
	Expired      int `json:"expired"`
	OutOfStock   int `json:"outOfStock"`
}

// Dashboard is the overview shown on the landing page.
type Dashboard struct {
	Stats  Stats      `json:"stats"`
	Recent []ItemView `json:"recent"`
}
