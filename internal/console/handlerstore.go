package console

import (
	"net/http"

	"github.com/aquamarinepk/aqm"

	"github.com/ecoeats/seller-console/internal/events"
	"github.com/ecoeats/seller-console/internal/gateway"
)

// Profile returns the signed-in store's profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.Profile")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	info, err := h.sellerData.StoreDetail(r.Context(), session.Token, session.StoreID)
	if err != nil {
		h.respondGatewayError(w, log, err, "Could not load the store profile")
		return
	}

	aqm.RespondSuccess(w, info)
}

// UpdateProfile replaces the store profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateProfile")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var info gateway.StoreInfo
	if !h.decodeJSON(w, r, log, &info) {
		return
	}
	if info.StoreName == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Store name is required")
		return
	}

	if err := h.sellerData.UpdateProfile(r.Context(), session.Token, info); err != nil {
		h.respondGatewayError(w, log, err, "Could not update the store profile")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventProfileUpdated, "profile", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "updated"})
}

type updatePasswordRequest struct {
	CurrentPwd string `json:"currentPwd"`
	NewPwd     string `json:"newPwd"`
}

// UpdatePassword changes the account password.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdatePassword")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var req updatePasswordRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if req.CurrentPwd == "" || req.NewPwd == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Current and new passwords are required")
		return
	}

	if err := h.sellerData.UpdatePassword(r.Context(), session.Token, req.CurrentPwd, req.NewPwd); err != nil {
		h.respondGatewayError(w, log, err, "Could not change the password")
		return
	}

	h.audit.Record(r.Context(), session.StoreID, events.EventProfileUpdated, "password", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "password changed"})
}

type deleteAccountRequest struct {
	Confirm bool `json:"confirm"`
}

// DeleteAccount deactivates the seller account and ends every session the
// store has open. The request must carry an explicit confirmation.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.DeleteAccount")
	defer finish()

	log := h.log(r)
	session := sessionFromContext(r.Context())

	var req deleteAccountRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if !req.Confirm {
		aqm.RespondError(w, http.StatusBadRequest, "Confirmation is required")
		return
	}

	if err := h.sellerData.DeleteAccount(r.Context(), session.Token); err != nil {
		h.respondGatewayError(w, log, err, "Could not delete the account")
		return
	}

	h.sessionStore.DeleteByStore(session.StoreID)

	http.SetCookie(w, &http.Cookie{
		Name:   h.sessionName(),
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	h.audit.Record(r.Context(), session.StoreID, events.EventProfileUpdated, "account", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "account deleted"})
}
