package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOrderDataAccessNilClient(t *testing.T) {
	var da *OrderDataAccess
	if _, err := da.TodayOrders(context.Background(), "tok"); err == nil {
		t.Error("TodayOrders() on nil data access should return error")
	}
}

func TestTodayOrdersReturnsRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/order/today" {
			t.Errorf("Path = %s, want /api/order/today", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"ordernumber":"A1","totalprice":9000,"orderstatus":"PLACED","pickupstatus":"PENDING","menuname":"Bread","quantity":2,"unitprice":4500,"orderTime":"2025-03-10 11:00:00"},
			{"ordernumber":"A1","totalprice":9000,"orderstatus":"PLACED","pickupstatus":"PENDING","menuname":"Juice","quantity":1,"unitprice":0,"orderTime":"2025-03-10 11:00:00"}
		]`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	lines, err := da.TodayOrders(context.Background(), "tok")
	if err != nil {
		t.Fatalf("TodayOrders() error = %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].OrderNumber != "A1" || lines[0].MenuName != "Bread" {
		t.Errorf("first row = %+v, want A1/Bread", lines[0])
	}
}

func TestTodayOrdersPassesSentinelThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"status":404,"message":"no orders today"}]`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	lines, err := da.TodayOrders(context.Background(), "tok")
	if err != nil {
		t.Fatalf("TodayOrders() error = %v", err)
	}
	if len(lines) != 1 || !lines[0].IsNotFoundSentinel() {
		t.Errorf("sentinel row should survive the gateway untouched, got %+v", lines)
	}
}

func TestOrdersByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("date"); got != "2025-03-09" {
			t.Errorf("date = %q, want 2025-03-09", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"orders":[{"ordernumber":"B2","totalprice":4000,"orderstatus":"PLACED","menuname":"Soup","quantity":1,"unitprice":4000}]}`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	lines, err := da.OrdersByDate(context.Background(), "tok", "2025-03-09")
	if err != nil {
		t.Fatalf("OrdersByDate() error = %v", err)
	}
	if len(lines) != 1 || lines[0].OrderNumber != "B2" {
		t.Errorf("lines = %+v, want one B2 row", lines)
	}
}

func TestOrdersByDateBodyLevelFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":500,"message":"query failed"}`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	_, err := da.OrdersByDate(context.Background(), "tok", "2025-03-09")

	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Kind != KindBackend {
		t.Fatalf("OrdersByDate() error = %v, want KindBackend", err)
	}
	if gwErr.Message != "query failed" {
		t.Errorf("Message = %q, want backend message", gwErr.Message)
	}
}

func TestMonthlySales(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("month"); got != "2025-03" {
			t.Errorf("month = %q, want 2025-03", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"dailySales":{"2025-03-10":13000,"2025-03-11":5000},"totalMonthlySales":18000}`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	daily, total, err := da.MonthlySales(context.Background(), "tok", "2025-03")
	if err != nil {
		t.Fatalf("MonthlySales() error = %v", err)
	}
	if total != 18000 {
		t.Errorf("total = %v, want 18000", total)
	}
	if daily["2025-03-10"] != 13000 {
		t.Errorf("daily[2025-03-10] = %v, want 13000", daily["2025-03-10"])
	}
}

func TestCancelOrderSendsOrderNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var req map[string]string
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request body not JSON: %v", err)
		}
		if req["orderNo"] != "A1" {
			t.Errorf("orderNo = %q, want A1", req["orderNo"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200}`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	if err := da.CancelOrder(context.Background(), "tok", "A1"); err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
}

func TestCancelOrderBackendRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":409,"message":"order already completed"}`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	err := da.CancelOrder(context.Background(), "tok", "A1")
	if got := Reason(err, "fallback"); got != "order already completed" {
		t.Errorf("Reason() = %q, want backend message", got)
	}
}

func TestCompletePickup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Method = %s, want PUT", r.Method)
		}
		if r.URL.Path != "/api/order/pickup/B2" {
			t.Errorf("Path = %s, want /api/order/pickup/B2", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200}`))
	}))
	defer server.Close()

	da := NewOrderDataAccess(NewClient(server.URL, nil))
	if err := da.CompletePickup(context.Background(), "tok", "B2"); err != nil {
		t.Fatalf("CompletePickup() error = %v", err)
	}
}
