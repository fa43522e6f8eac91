package console

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"

	"github.com/ecoeats/seller-console/internal/events"
	"github.com/ecoeats/seller-console/internal/orders"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	return page
}

// TodayBoard returns the current day's order board for the signed-in store.
// The fetch is sequenced so a slow response can never overwrite the result
// of a later refresh.
func (h *Handler) TodayBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.TodayBoard")
	defer finish()

	h.serveBoard(w, r, "today")
}

// DateBoard returns the order board for a past day.
func (h *Handler) DateBoard(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DateBoard")
	defer finish()

	date := chi.URLParam(r, "date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Date must be yyyy-MM-dd")
		return
	}

	h.serveBoard(w, r, date)
}

func (h *Handler) serveBoard(w http.ResponseWriter, r *http.Request, key string) {
	log := h.log(r)
	ctx := r.Context()
	session := sessionFromContext(ctx)
	ws := session.Workspace()

	seq := ws.Board.Begin(key)

	var (
		lines []orders.OrderLine
		err   error
	)
	if key == "today" {
		lines, err = h.orderData.TodayOrders(ctx, session.Token)
	} else {
		lines, err = h.orderData.OrdersByDate(ctx, session.Token, key)
	}
	if err != nil {
		h.respondGatewayError(w, log, err, "Could not load orders")
		return
	}

	ledger := orders.Aggregate(lines)
	if !ws.Board.Complete(key, seq, ledger) {
		log.Debug("discarding stale order fetch", "key", key)
	}

	aqm.RespondSuccess(w, ws.Board.View(pageParam(r)))
}

type monthlySalesResponse struct {
	Month      string             `json:"month"`
	DailySales map[string]float64 `json:"dailySales"`
	Total      float64            `json:"totalMonthlySales"`
}

// MonthlySales returns the revenue calendar for a month. A backend failure
// yields an empty calendar rather than an error; the figures are
// informational and the screen stays usable without them.
func (h *Handler) MonthlySales(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.MonthlySales")
	defer finish()

	month := chi.URLParam(r, "month")
	if _, err := time.Parse(monthLayout, month); err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Month must be yyyy-MM")
		return
	}

	ws := sessionFromContext(r.Context()).Workspace()
	ws.Calendar.ShowMonth(r.Context(), month)

	aqm.RespondSuccess(w, monthlySalesResponse{
		Month:      ws.Calendar.Month(),
		DailySales: ws.Calendar.DailySales(),
		Total:      ws.Calendar.MonthlyTotal(),
	})
}

type orderActionRequest struct {
	Confirm bool `json:"confirm"`
}

// CancelOrder cancels an order on the backend and, on success, applies the
// same transition to the local board. The request must carry an explicit
// confirmation; the console UI asks the seller before sending it.
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CancelOrder")
	defer finish()

	h.serveOrderAction(w, r, events.EventOrderCancelled)
}

// CompletePickup marks an order as handed over to the customer.
func (h *Handler) CompletePickup(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.CompletePickup")
	defer finish()

	h.serveOrderAction(w, r, events.EventOrderPickedUp)
}

func (h *Handler) serveOrderAction(w http.ResponseWriter, r *http.Request, eventType string) {
	log := h.log(r)
	ctx := r.Context()
	session := sessionFromContext(ctx)
	ws := session.Workspace()

	orderNo := chi.URLParam(r, "orderNo")
	if orderNo == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Order number is required")
		return
	}

	var req orderActionRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if !req.Confirm {
		aqm.RespondError(w, http.StatusBadRequest, "Confirmation is required")
		return
	}

	var err error
	if eventType == events.EventOrderCancelled {
		err = ws.Actions.CancelOrder(ctx, orderNo)
	} else {
		err = ws.Actions.CompletePickup(ctx, orderNo)
	}

	if err != nil {
		switch {
		case errors.Is(err, orders.ErrActionInFlight):
			log.Debug("duplicate order action rejected", "order_no", orderNo)
			aqm.RespondError(w, http.StatusConflict, "This order is already being processed")
		case errors.Is(err, orders.ErrNotCancellable):
			aqm.RespondError(w, http.StatusConflict, "This order can no longer be cancelled")
		case errors.Is(err, orders.ErrPickupAlreadyDone):
			aqm.RespondError(w, http.StatusConflict, "Pickup is already completed")
		default:
			h.audit.Record(ctx, session.StoreID, eventType, orderNo, false, err.Error())
			h.respondGatewayError(w, log, err, "Could not update the order")
		}
		return
	}

	h.audit.Record(ctx, session.StoreID, eventType, orderNo, true, "")
	aqm.RespondSuccess(w, ws.Board.View(pageParam(r)))
}
