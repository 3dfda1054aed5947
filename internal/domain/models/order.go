package models

// Order is a pending request to move a quantity of a named item between stores.
type Order struct {
	Item     string  `json:"item" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	From     string  `json:"from" binding:"required"`
	To       string  `json:"to" binding:"required"`
}

// OrderView pairs an order with its position in the order document, which is
// the handle used to receive it.
type OrderView struct {
	Order
	Index int `json:"index"`
}

// OrderFilter narrows an order listing. Empty fields match everything.
type OrderFilter struct {
	Search string `form:"search"`
	From   string `form:"from"`
	To     string `form:"to"`
}
