package events

import "time"

const (
	// SellerActionsTopic carries every state-changing action a seller takes
	// in the console. Downstream consumers use it for audit trails.
	SellerActionsTopic = "seller.actions"

	EventSellerSignedIn  = "seller.signed_in"
	EventSellerSignedOut = "seller.signed_out"
	EventOrderCancelled  = "order.cancelled"
	EventOrderPickedUp   = "order.picked_up"
	EventMenuChanged     = "menu.changed"
	EventProfileUpdated  = "profile.updated"
)

// SellerActionEvent records one console action against the backend.
type SellerActionEvent struct {
	EventType  string    `json:"event_type"`
	StoreID    string    `json:"store_id"`
	OrderNo    string    `json:"order_no,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
