package console

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/telemetry"
	"github.com/go-chi/chi/v5"

	"github.com/ecoeats/seller-console/internal/gateway"
)

const MaxBodyBytes = 1 << 20

// Handler serves the seller console API. Every screen of the console maps
// to a small set of JSON endpoints here; the handler holds the session
// store and the data-access wrappers for the ECOEATS backend.
type Handler struct {
	logger       aqm.Logger
	config       *aqm.Config
	tlm          *telemetry.HTTP
	sellerData   *gateway.SellerDataAccess
	orderData    *gateway.OrderDataAccess
	menuData     *gateway.MenuDataAccess
	sessionStore *SessionStore
	audit        *AuditLogger
}

func NewHandler(publisher events.Publisher, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	backendURL, _ := config.GetString("services.backend.url")
	if backendURL == "" {
		backendURL = "http://localhost:8080/ROOT"
	}
	client := gateway.NewClient(backendURL, logger)

	sessionTTLStr, _ := config.GetString("auth.session.ttl")
	sessionTTL, _ := time.ParseDuration(sessionTTLStr)
	if sessionTTL == 0 {
		sessionTTL = 8 * time.Hour
	}

	return &Handler{
		logger:       logger,
		config:       config,
		tlm:          telemetry.NewHTTP(),
		sellerData:   gateway.NewSellerDataAccess(client),
		orderData:    gateway.NewOrderDataAccess(client),
		menuData:     gateway.NewMenuDataAccess(client),
		sessionStore: NewSessionStore(sessionTTL),
		audit:        NewAuditLogger(logger, publisher),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", h.SignIn)
		r.Post("/signup", h.SignUp)
		r.Post("/password/reset", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.RequireSession)
			r.Post("/signout", h.SignOut)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/today", h.TodayBoard)
			r.Get("/date/{date}", h.DateBoard)
			r.Post("/{orderNo}/cancel", h.CancelOrder)
			r.Post("/{orderNo}/pickup", h.CompletePickup)
		})

		r.Get("/sales/{month}", h.MonthlySales)

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", h.ListMenu)
			r.Post("/", h.AddMenu)
			r.Put("/{menuNo}", h.UpdateMenu)
			r.Delete("/{menuNo}", h.DeleteMenu)
		})

		r.Route("/daily-menu", func(r chi.Router) {
			r.Get("/", h.ListDailyMenu)
			r.Post("/", h.AddDailyMenu)
			r.Put("/", h.UpdateDailyMenu)
			r.Delete("/", h.DeleteDailyMenu)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", h.Profile)
			r.Put("/", h.UpdateProfile)
			r.Put("/password", h.UpdatePassword)
			r.Delete("/", h.DeleteAccount)
		})
	})
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", aqm.RequestIDFrom(r.Context()))
}

func (h *Handler) sessionName() string {
	if h.config != nil {
		if name, _ := h.config.GetString("auth.session.name"); name != "" {
			return name
		}
	}
	return "ecoeats_seller_session"
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, log aqm.Logger, dst interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		log.Debug("cannot read request body", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Cannot read request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		log.Debug("invalid request payload", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// respondGatewayError maps a backend failure onto the console's API.
// Transport and decoding failures become 502s with a generic message;
// application-level rejections keep the backend's own message.
func (h *Handler) respondGatewayError(w http.ResponseWriter, log aqm.Logger, err error, fallback string) {
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		log.Error("unexpected gateway failure", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, fallback)
		return
	}

	switch gwErr.Kind {
	case gateway.KindBackend:
		log.Info("backend rejected request", "status", gwErr.Status, "message", gwErr.Message)
		aqm.RespondError(w, http.StatusBadRequest, gateway.Reason(err, fallback))
	default:
		log.Error("backend unavailable", "error", err)
		aqm.RespondError(w, http.StatusBadGateway, fallback)
	}
}
