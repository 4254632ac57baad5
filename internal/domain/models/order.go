package models

import "time"

// OrderItemEvent is one line item inside an incoming order event.
type OrderItemEvent struct {
	OrderItemID int64   `json:"order_item_id"`
	ProductID   int64   `json:"product_id"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// OrderEvent is an order as published on the ingest topic. Replaces the
// old CSV batch loads: the shop pushes orders here and the pipeline
// lands them in ClickHouse.
type OrderEvent struct {
	OrderID     int64            `json:"order_id"`
	UserID      int64            `json:"user_id"`
	OrderDate   time.Time        `json:"order_date"`
	Status      string           `json:"status"` // completed, cancelled, returned
	TotalAmount float64          `json:"total_amount"`
	Items       []OrderItemEvent `json:"items"`
}
