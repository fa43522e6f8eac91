package orders

import (
	"net/http"
	"time"
)

// Order status values as delivered by the ECOEATS backend.
const (
	StatusPlaced    = "PLACED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Pickup status values. Pickup is tracked independently of order status.
const (
	PickupPending = "PENDING"
	PickupDone    = "DONE"
)

// OrderLine is one menu-item row of a multi-item order, exactly as the
// backend delivers it: an order with three items arrives as three lines
// sharing the same order number. The Status/Message pair is only populated
// on the backend's single-element "no orders" sentinel response.
type OrderLine struct {
	OrderNumber   string  `json:"ordernumber"`
	TotalPrice    float64 `json:"totalprice"`
	OrderStatus   string  `json:"orderstatus"`
	PickupStatus  string  `json:"pickupstatus"`
	OrderTime     string  `json:"orderTime"`
	CustomerEmail string  `json:"customeremail"`
	MenuName      string  `json:"menuname"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitprice"`

	Status  int    `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// IsNotFoundSentinel reports whether the line is the backend's not-found
// marker rather than a real order row.
func (l OrderLine) IsNotFoundSentinel() bool {
	return l.Status == http.StatusNotFound
}

// OrderItem is one menu line inside an aggregated order.
type OrderItem struct {
	MenuName  string  `json:"menuname"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitprice"`
}

// Order is the aggregated view of all lines sharing an order number.
// Order-level fields are taken from the first-seen line; the backend carries
// them redundantly on every line and is assumed consistent.
type Order struct {
	OrderNumber   string      `json:"ordernumber"`
	TotalPrice    float64     `json:"totalprice"`
	OrderStatus   string      `json:"orderstatus"`
	PickupStatus  string      `json:"pickupstatus"`
	OrderTime     string      `json:"orderTime"`
	CustomerEmail string      `json:"customeremail"`
	Items         []OrderItem `json:"items"`

	placedAt time.Time
}

// CanCancel reports whether the cancel action should be offered. This is a
// presentation guard; the backend remains the authority and may still reject.
func (o Order) CanCancel() bool {
	return o.OrderStatus != StatusCompleted && o.OrderStatus != StatusCancelled
}

// CanCompletePickup reports whether the pickup-complete action should be
// offered.
func (o Order) CanCompletePickup() bool {
	return o.PickupStatus != PickupDone && o.OrderStatus != StatusCancelled
}

var orderTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseOrderTime is tolerant about the backend's timestamp format. A value
// that matches no known layout sorts as the zero time, which keeps the order
// in its arrival position relative to other unparseable rows.
func parseOrderTime(value string) time.Time {
	for _, layout := range orderTimeLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
