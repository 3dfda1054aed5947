package models

// Alert is a text notification pushed to store staff.
type Alert struct {
	To         string `json:"to"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// ValuationRow is one exported line of the daily valuation sheet.
type ValuationRow struct {
	Date            string
	Name            string
	Walmart         string
	Quantity        float64
	Status          ExpiryStatus
	DaysUntilExpiry string
	DiscountedPrice float64
	Remark          string
}

// Values flattens the row for spreadsheet export.
func (r ValuationRow) Values() []interface{} {
	return []interface{}{r.Date, r.Name, r.Walmart, r.Quantity, string(r.Status), r.DaysUntilExpiry, r.DiscountedPrice, r.Remark}
}
