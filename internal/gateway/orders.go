package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/ecoeats/seller-console/internal/orders"
)

// OrderDataAccess wraps the backend order endpoints. It returns raw rows and
// typed errors; grouping and partitioning happen in the orders package.
type OrderDataAccess struct {
	client *Client
}

func NewOrderDataAccess(client *Client) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

// TodayOrders fetches the current day's order rows for the signed-in store.
// The backend answers with either a flat row array or a one-element
// not-found sentinel; both are passed through untouched so the aggregation
// step can apply a single policy.
func (da *OrderDataAccess) TodayOrders(ctx context.Context, token string) ([]orders.OrderLine, error) {
	if da == nil || da.client == nil {
		return nil, errors.New("order data access not configured")
	}

	var lines []orders.OrderLine
	if _, err := da.client.do(ctx, http.MethodGet, "/api/order/today", nil, token, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

type dateStoreResponse struct {
	envelope
	Orders []orders.OrderLine `json:"orders"`
}

// OrdersByDate fetches the order rows for a past day, yyyy-MM-dd.
func (da *OrderDataAccess) OrdersByDate(ctx context.Context, token, date string) ([]orders.OrderLine, error) {
	if da == nil || da.client == nil {
		return nil, errors.New("order data access not configured")
	}

	query := url.Values{"date": []string{date}}
	var resp dateStoreResponse
	if _, err := da.client.do(ctx, http.MethodGet, "/api/orderview/datestore", query, token, nil, &resp); err != nil {
		return nil, err
	}
	if err := checkEnvelope(resp.envelope); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

type monthlySalesResponse struct {
	envelope
	DailySales        map[string]float64 `json:"dailySales"`
	TotalMonthlySales float64            `json:"totalMonthlySales"`
}

// MonthlySales fetches the revenue calendar for a month, yyyy-MM: the
// per-day figures keyed by yyyy-MM-dd plus the month total.
func (da *OrderDataAccess) MonthlySales(ctx context.Context, token, month string) (map[string]float64, float64, error) {
	if da == nil || da.client == nil {
		return nil, 0, errors.New("order data access not configured")
	}

	query := url.Values{"month": []string{month}}
	var resp monthlySalesResponse
	if _, err := da.client.do(ctx, http.MethodGet, "/api/orderview/monthlySales", query, token, nil, &resp); err != nil {
		return nil, 0, err
	}
	if err := checkEnvelope(resp.envelope); err != nil {
		return nil, 0, err
	}
	return resp.DailySales, resp.TotalMonthlySales, nil
}

type cancelOrderRequest struct {
	OrderNo string `json:"orderNo"`
}

// CancelOrder asks the backend to cancel an order. The backend is the
// authority on whether the order may still be cancelled.
func (da *OrderDataAccess) CancelOrder(ctx context.Context, token, orderNo string) error {
	if da == nil || da.client == nil {
		return errors.New("order data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPost, "/api/order/cancel", nil, token, cancelOrderRequest{OrderNo: orderNo}, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}

// CompletePickup marks an order as handed over to the customer.
func (da *OrderDataAccess) CompletePickup(ctx context.Context, token, orderNo string) error {
	if da == nil || da.client == nil {
		return errors.New("order data access not configured")
	}

	var resp envelope
	if _, err := da.client.do(ctx, http.MethodPut, "/api/order/pickup/"+url.PathEscape(orderNo), nil, token, nil, &resp); err != nil {
		return err
	}
	return checkEnvelope(resp)
}
