package console

import (
	"net/http"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"

	"github.com/ecoeats/seller-console/internal/events"
	"github.com/ecoeats/seller-console/internal/gateway"
)

type signInRequest struct {
	StoreID  string `json:"storeId"`
	Password string `json:"password"`
}

type signInResponse struct {
	StoreID   string    `json:"storeId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SignIn exchanges store credentials for a console session. The backend
// token stays server-side; the browser receives an opaque session cookie.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SignIn")
	defer finish()

	log := h.log(r)

	var req signInRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if req.StoreID == "" || req.Password == "" {
		log.Debug("missing store id or password")
		aqm.RespondError(w, http.StatusBadRequest, "Store ID and password are required")
		return
	}

	token, err := h.sellerData.Login(r.Context(), req.StoreID, req.Password)
	if err != nil {
		if gateway.IsBackend(err) {
			log.Info("sign-in rejected", "store_id", req.StoreID)
			aqm.RespondError(w, http.StatusUnauthorized, gateway.Reason(err, "Invalid store ID or password"))
			return
		}
		h.respondGatewayError(w, log, err, "Sign-in is unavailable right now")
		return
	}

	session := &Session{
		ID:        uuid.New().String(),
		StoreID:   req.StoreID,
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(h.sessionStore.TTL()),
		workspace: newWorkspace(h.orderData, token),
	}

	if err := h.sessionStore.Save(session); err != nil {
		log.Error("failed to save session", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Session error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionName(),
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessionStore.TTL().Seconds()),
	})

	h.audit.Record(r.Context(), req.StoreID, events.EventSellerSignedIn, "auth", true, "")
	aqm.RespondSuccess(w, signInResponse{StoreID: req.StoreID, ExpiresAt: session.ExpiresAt})
}

// SignOut ends the current session.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SignOut")
	defer finish()

	session := sessionFromContext(r.Context())
	h.sessionStore.Delete(session.ID)

	http.SetCookie(w, &http.Cookie{
		Name:   h.sessionName(),
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	h.audit.Record(r.Context(), session.StoreID, events.EventSellerSignedOut, "auth", true, "")
	aqm.RespondSuccess(w, map[string]string{"status": "signed out"})
}

// SignUp registers a new seller account with the backend.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.SignUp")
	defer finish()

	log := h.log(r)

	var req gateway.JoinRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if req.StoreID == "" || req.Password == "" || req.StoreEmail == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Store ID, email and password are required")
		return
	}

	if err := h.sellerData.Join(r.Context(), req); err != nil {
		h.respondGatewayError(w, log, err, "Could not register the account")
		return
	}

	aqm.RespondSuccess(w, map[string]string{"status": "registered"})
}

type resetPasswordRequest struct {
	StoreID    string `json:"storeId"`
	StoreEmail string `json:"storeEmail"`
	NewPwd     string `json:"newPwd"`
}

// ResetPassword resets a forgotten password after the backend verifies the
// registered email. No session is required.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ResetPassword")
	defer finish()

	log := h.log(r)

	var req resetPasswordRequest
	if !h.decodeJSON(w, r, log, &req) {
		return
	}
	if req.StoreID == "" || req.StoreEmail == "" || req.NewPwd == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Store ID, email and new password are required")
		return
	}

	if err := h.sellerData.ResetPassword(r.Context(), req.StoreID, req.StoreEmail, req.NewPwd); err != nil {
		h.respondGatewayError(w, log, err, "Could not reset the password")
		return
	}

	aqm.RespondSuccess(w, map[string]string{"status": "password reset"})
}

// RequireSession resolves the session cookie and injects the session into
// the request context. Requests without a valid session get a 401.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(h.sessionName())
		if err != nil {
			aqm.RespondError(w, http.StatusUnauthorized, "Sign-in required")
			return
		}

		session, err := h.sessionStore.Get(cookie.Value)
		if err != nil {
			aqm.RespondError(w, http.StatusUnauthorized, "Session expired")
			return
		}

		next.ServeHTTP(w, r.WithContext(sessionIntoContext(r.Context(), session)))
	})
}
