package console

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/go-chi/chi/v5"

	"github.com/ecoeats/seller-console/internal/events"
	"github.com/ecoeats/seller-console/internal/gateway"
)

type menuListResponse struct {
	Menu       []gateway.MenuItem `json:"menu"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Pages      []int              `json:"pages"`
}

// ListMenu returns one page of the store's catalog, newest entry first.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())
	ws := session.Workspace()

	items, err := h.menuData.List(r.Context(), session.Token)
	if err != nil {
		h.respondGatewayError(w, log, err, "Could not load the menu")
		return
	}

	view := ws.MenuPager.View(len(items), pageParam(r))

	aqm.RespondSuccess(w, menuListResponse{
		Menu:       items[view.Lo:view.Hi],
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Pages:      view.Pages,
	})
}

type menuUpsertRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// AddMenu creates a catalog entry.
func (h *Handler) AddMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var req menuUpsertRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if req.Name == "" || req.Price <= 0 {
		aqm.RespondError(w, http.StatusBadRequest, "Name and a positive price are required")
		return
	}

	if err := h.menuData.Add(r.Context(), session.Token, req.Name, req.Price); err != nil {
		h.respondGatewayError(w, log, err, "Could not add the menu")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventMenuChanged, "menu:"+req.Name, true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "added"})
}

// UpdateMenu replaces the name and price of a catalog entry.
func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	menuNo, err := strconv.Atoi(chi.URLParam(r, "menuNo"))
	if err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid menu number")
		return
	}

	var req menuUpsertRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if req.Name == "" || req.Price <= 0 {
		aqm.RespondError(w, http.StatusBadRequest, "Name and a positive price are required")
		return
	}

	if err := h.menuData.Update(r.Context(), session.Token, menuNo, req.Name, req.Price); err != nil {
		h.respondGatewayError(w, log, err, "Could not update the menu")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventMenuChanged, fmt.Sprintf("menu:%d", menuNo), true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "updated"})
}

// DeleteMenu removes a catalog entry. The backend drops it from the daily
// menu as well.
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	menuNo, err := strconv.Atoi(chi.URLParam(r, "menuNo"))
	if err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Invalid menu number")
		return
	}

	if err := h.menuData.Delete(r.Context(), session.Token, menuNo); err != nil {
		h.respondGatewayError(w, log, err, "Could not delete the menu")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventMenuChanged, fmt.Sprintf("menu:%d", menuNo), true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "deleted"})
}

// ListDailyMenu returns the entries on sale for a day. Without a date
// parameter it defaults to today.
func (h *Handler) ListDailyMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListDailyMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		aqm.RespondError(w, http.StatusBadRequest, "Date must be yyyy-MM-dd")
		return
	}

	items, err := h.menuData.DailyList(r.Context(), session.Token, date)
	if err != nil {
		h.respondGatewayError(w, log, err, "Could not load the daily menu")
		return
	}

	aqm.RespondSuccess(w, items)
}

type dailyMenuAddRequest struct {
	MenuNos []int `json:"menuNos"`
}

// AddDailyMenu puts the selected catalog entries on sale for today.
func (h *Handler) AddDailyMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.AddDailyMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var req dailyMenuAddRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if len(req.MenuNos) == 0 {
		aqm.RespondError(w, http.StatusBadRequest, "Select at least one menu")
		return
	}

	if err := h.menuData.DailyAdd(r.Context(), session.Token, req.MenuNos); err != nil {
		h.respondGatewayError(w, log, err, "Could not add to the daily menu")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventMenuChanged, "daily-menu", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "added"})
}

// UpdateDailyMenu adjusts sale price and quantity for daily entries.
func (h *Handler) UpdateDailyMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateDailyMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var updates []gateway.DailyMenuUpdate
	if !h.decodeJSON(w, r, log, &updates) {
		return
	}
	if len(updates) == 0 {
		aqm.RespondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := h.menuData.DailyUpdate(r.Context(), session.Token, updates); err != nil {
		h.respondGatewayError(w, log, err, "Could not update the daily menu")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventMenuChanged, "daily-menu", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "updated"})
}

type dailyMenuDeleteRequest struct {
	DailyMenuNos []int `json:"dailymenuNos"`
}

// DeleteDailyMenu takes entries off sale.
func (h *Handler) DeleteDailyMenu(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteDailyMenu")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var req dailyMenuDeleteRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if len(req.DailyMenuNos) == 0 {
		aqm.RespondError(w, http.StatusBadRequest, "Select at least one entry")
		return
	}

	if err := h.menuData.DailyDelete(r.Context(), session.Token, req.DailyMenuNos); err != nil {
		h.respondGatewayError(w, log, err, "Could not delete from the daily menu")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventMenuChanged, "daily-menu", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "deleted"})
}
