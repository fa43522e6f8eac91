package orders

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrActionInFlight means a mutating request for the same order number
	// has been issued and has not completed yet.
	ErrActionInFlight = errors.New("an action for this order is already in flight")

	// ErrNotCancellable means the order's status does not admit cancellation.
	ErrNotCancellable = errors.New("order can no longer be cancelled")

	// ErrPickupAlreadyDone means the order is already picked up or cancelled.
	ErrPickupAlreadyDone = errors.New("pickup is already completed for this order")
)

// ActionGateway is the slice of the backend contract the controller needs.
// Both calls return nil only when the backend confirmed the transition.
type ActionGateway interface {
	CancelOrder(ctx context.Context, orderNo string) error
	CompletePickup(ctx context.Context, orderNo string) error
}

// ActionController issues cancel and pickup-complete intents for the orders
// on a board. On backend success it applies the matching local transition so
// the screen does not need a full refetch; on failure it leaves the board
// untouched and propagates the backend's reason.
//
// At most one mutating request per order number may be in flight: repeat
// triggers (double clicks) fail fast with ErrActionInFlight instead of
// racing the first request.
type ActionController struct {
	gateway ActionGateway
	board   *Board

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewActionController creates a controller bound to one board.
func NewActionController(gateway ActionGateway, board *Board) *ActionController {
	return &ActionController{
		gateway:  gateway,
		board:    board,
		inFlight: map[string]struct{}{},
	}
}

// CancelOrder cancels the order with the backend and, on success, moves it to
// the cancelled partition with its status forced to CANCELLED.
//
// The status guard is presentation-level: it only applies when the order is
// known to the board. The backend stays authoritative and may reject a cancel
// the guard would have allowed.
func (c *ActionController) CancelOrder(ctx context.Context, orderNo string) error {
	if order, ok := c.board.Find(orderNo); ok && !order.CanCancel() {
		return ErrNotCancellable
	}

	release, err := c.acquire(orderNo)
	if err != nil {
		return err
	}
	defer release()

	if err := c.gateway.CancelOrder(ctx, orderNo); err != nil {
		return err
	}

	c.board.CancelLocally(orderNo)
	return nil
}

// CompletePickup marks the order as picked up with the backend and, on
// success, patches its pickup status to DONE in place.
func (c *ActionController) CompletePickup(ctx context.Context, orderNo string) error {
	if order, ok := c.board.Find(orderNo); ok && !order.CanCompletePickup() {
		return ErrPickupAlreadyDone
	}

	release, err := c.acquire(orderNo)
	if err != nil {
		return err
	}
	defer release()

	if err := c.gateway.CompletePickup(ctx, orderNo); err != nil {
		return err
	}

	c.board.CompletePickupLocally(orderNo)
	return nil
}

func (c *ActionController) acquire(orderNo string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[orderNo]; busy {
		return nil, ErrActionInFlight
	}
	c.inFlight[orderNo] = struct{}{}

	return func() {
		c.mu.Lock()
		delete(c.inFlight, orderNo)
		c.mu.Unlock()
	}, nil
}
