package merchant

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
)

// API exposes the payment page callback endpoints of the shop.
type API struct {
	orders       OrderSystem
	sharedSecret string
	logger       *slog.Logger
}

func NewAPI(orders OrderSystem, sharedSecret string, logger *slog.Logger) *API {
	return &API{
		orders:       orders,
		sharedSecret: sharedSecret,
		logger:       logger.With(slog.String("component", "api")),
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/payzone", func(r chi.Router) {
		r.Post("/validation", a.handleValidation)
		r.Post("/return", a.handleReturn)
	})
}

// handleValidation is the server-to-server callback. The payment page
// retries delivery until it reads the JSON acknowledgment, so the handler
// always answers 200 with an OK/KO body. The settlement amount is taken
// from the authenticated status body only.
func (a *API) handleValidation(w http.ResponseWriter, r *http.Request) {
	status, err := connect2pay.DecodeCallbackStatus(r.Body)
	if err != nil {
		a.logger.Error("decoding callback", "err", err)
		a.ack(w, connect2pay.AckKO("unreadable status"))
		return
	}

	order, err := a.orders.Order(r.Context(), status.OrderID)
	if err != nil {
		a.logger.Error("looking up order", slog.String("order", status.OrderID), "err", err)
		a.ack(w, connect2pay.AckKO("unknown order"))
		return
	}

	if !connect2pay.VerifyCallbackDigest(status.CtrlCustomData, status.OrderID, order.SecureKey, a.sharedSecret) {
		a.logger.Error("callback authenticity check failed", slog.String("order", status.OrderID))
		a.ack(w, connect2pay.AckKO("authenticity check failed"))
		return
	}

	var transactionID string
	if attempt := status.LastTransactionAttempt(); attempt != nil {
		transactionID = attempt.TransactionID
	}

	if status.ErrorCode == connect2pay.ResultCodeSuccess {
		err = a.orders.MarkPaid(r.Context(), status.OrderID, status.Amount, transactionID)
	} else {
		err = a.orders.MarkFailed(r.Context(), status.OrderID, status.ErrorCode, status.ErrorMessage)
	}
	if err != nil {
		a.logger.Error("recording payment outcome", slog.String("order", status.OrderID), "err", err)
		a.ack(w, connect2pay.AckKO("order update failed"))
		return
	}

	a.logger.Info("callback processed",
		slog.String("order", status.OrderID),
		slog.String("errorCode", status.ErrorCode))

	a.ack(w, connect2pay.AckOK("status recorded"))
}

// returnOutcome is what the shopper-facing return page renders from.
type returnOutcome struct {
	OrderID   string `json:"orderID"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode"`
	Paid      bool   `json:"paid"`
}

// handleReturn lands the shopper back on the shop after payment. The
// legacy redirect carries the status encrypted with the merchant token
// stored when the payment was prepared. It drives display only; the order
// state changes through the server callback.
func (a *API) handleReturn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	orderID := r.Form.Get("order")
	order, err := a.orders.Order(r.Context(), orderID)
	if err != nil {
		http.Error(w, "unknown order", http.StatusNotFound)
		return
	}

	status, err := connect2pay.DecodeRedirectStatus(r.Form.Get("data"), order.MerchantToken)
	if err != nil {
		a.logger.Error("decoding redirect status", slog.String("order", orderID), "err", err)
		http.Error(w, "unreadable status", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(returnOutcome{
		OrderID:   status.OrderID,
		Status:    status.Status,
		ErrorCode: status.ErrorCode,
		Paid:      status.ErrorCode == connect2pay.ResultCodeSuccess,
	})
}

func (a *API) ack(w http.ResponseWriter, resp connect2pay.CallbackResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
