package console

import (
	"context"

	"github.com/ecoeats/seller-console/internal/gateway"
	"github.com/ecoeats/seller-console/internal/orders"
)

// Workspace holds the view state a session accumulates while browsing:
// the order board, the sales calendar, the in-flight action guard and the
// catalog pager. Each session gets its own; nothing here is shared across
// stores.
type Workspace struct {
	Board     *orders.Board
	Calendar  *orders.SalesCalendar
	Actions   *orders.ActionController
	MenuPager *orders.Pager
}

// boundActions adapts the order data access to the action gateway the
// controller expects, fixing the session token.
type boundActions struct {
	orderData *gateway.OrderDataAccess
	token     string
}

func (b boundActions) CancelOrder(ctx context.Context, orderNo string) error {
	return b.orderData.CancelOrder(ctx, b.token, orderNo)
}

func (b boundActions) CompletePickup(ctx context.Context, orderNo string) error {
	return b.orderData.CompletePickup(ctx, b.token, orderNo)
}

func newWorkspace(orderData *gateway.OrderDataAccess, token string) *Workspace {
	board := orders.NewBoard(orders.OrderPageSize)

	fetch := func(ctx context.Context, month string) (map[string]float64, float64, error) {
		return orderData.MonthlySales(ctx, token, month)
	}

	return &Workspace{
		Board:     board,
		Calendar:  orders.NewSalesCalendar(fetch),
		Actions:   orders.NewActionController(boundActions{orderData: orderData, token: token}, board),
		MenuPager: orders.NewPager(orders.MenuPageSize),
	}
}
