package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emekaobi/storefront-backend/checkout"
	errs "github.com/emekaobi/storefront-backend/common/errors"
	"github.com/emekaobi/storefront-backend/payment"
	"github.com/emekaobi/storefront-backend/sessions"
)

type CheckoutController struct {
	Coordinator *checkout.Coordinator
	Sessions    *sessions.Manager
	Flutterwave *payment.FlutterwaveClient
}

func NewCheckoutController(coordinator *checkout.Coordinator, sessions *sessions.Manager, flw *payment.FlutterwaveClient) *CheckoutController {
	return &CheckoutController{Coordinator: coordinator, Sessions: sessions, Flutterwave: flw}
}

type attemptResponse struct {
	TxRef       string            `json:"tx_ref"`
	State       string            `json:"state"`
	Reason      string            `json:"reason,omitempty"`
	Message     string            `json:"message,omitempty"`
	PaymentLink string            `json:"payment_link,omitempty"`
	OrderID     string            `json:"order_id,omitempty"`
	Total       int64             `json:"total,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

func attemptJSON(a checkout.Attempt) attemptResponse {
	return attemptResponse{
		TxRef:       a.TxRef,
		State:       string(a.State),
		Reason:      string(a.Reason),
		Message:     a.Message,
		PaymentLink: a.PaymentLink,
		OrderID:     a.OrderID,
		Total:       a.Total,
	}
}

// Submit starts a checkout attempt for the session's cart
func (cc *CheckoutController) Submit(c *gin.Context) {
	var contact checkout.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		_ = c.Error(errs.Wrap(errs.ErrInvalidInput, err))
		return
	}

	sid := sessionID(c)
	store := cc.Sessions.Cart(c.Request.Context(), sid)

	attempt, err := cc.Coordinator.Submit(c.Request.Context(), store, sid, contact)
	if err != nil {
		var vErr *checkout.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, attemptResponse{State: "invalid", Errors: vErr.Fields})
		case errors.Is(err, checkout.ErrEmptyCart):
			_ = c.Error(errs.ErrEmptyCart)
		case errors.Is(err, checkout.ErrAttemptInFlight):
			_ = c.Error(errs.ErrCheckoutInFlight)
		default:
			_ = c.Error(errs.Wrap(errs.ErrGateway, err))
		}
		return
	}

	c.JSON(http.StatusOK, attemptJSON(attempt))
}

// GetAttempt reports the state of a checkout attempt, for the result pages
func (cc *CheckoutController) GetAttempt(c *gin.Context) {
	attempt, ok := cc.Coordinator.Attempt(c.Param("tx_ref"))
	if !ok {
		_ = c.Error(errs.New(http.StatusNotFound, "unknown transaction reference", nil))
		return
	}
	c.JSON(http.StatusOK, attemptJSON(attempt))
}

// Webhook receives the gateway's asynchronous notification. The signature is
// checked before anything else; the outcome itself is still verified against
// the gateway inside the coordinator.
func (cc *CheckoutController) Webhook(c *gin.Context) {
	event, err := cc.Flutterwave.ParseWebhook(c.Request)
	if err != nil {
		_ = c.Error(errs.New(http.StatusUnauthorized, "invalid webhook", err))
		return
	}

	status := payment.StatusFailed
	switch event.Data.Status {
	case "successful":
		status = payment.StatusSuccessful
	case "cancelled":
		status = payment.StatusCancelled
	}

	cc.applyOutcome(c, event.Data.TxRef, status, "")
}

// Callback handles the shopper's redirect back from the payment page.
// Flutterwave appends status=cancelled when the widget is closed; that is the
// abandonment path and must settle the attempt rather than leave it pending.
func (cc *CheckoutController) Callback(c *gin.Context) {
	txRef := c.Query("tx_ref")
	if txRef == "" {
		_ = c.Error(errs.New(http.StatusBadRequest, "missing tx_ref", nil))
		return
	}

	status := payment.StatusFailed
	message := ""
	switch c.Query("status") {
	case "successful", "completed":
		status = payment.StatusSuccessful
	case "cancelled":
		status = payment.StatusCancelled
		message = "Payment closed by user."
	}

	cc.applyOutcome(c, txRef, status, message)
}

func (cc *CheckoutController) applyOutcome(c *gin.Context, txRef string, status payment.Status, message string) {
	attempt, err := cc.Coordinator.HandleOutcome(c.Request.Context(), txRef, status, message)
	switch {
	case errors.Is(err, checkout.ErrAttemptNotFound):
		_ = c.Error(errs.New(http.StatusNotFound, "unknown transaction reference", err))
		return
	case errors.Is(err, checkout.ErrAttemptSettled):
		// Webhook and redirect can both arrive; the first one won.
		c.JSON(http.StatusOK, attemptJSON(attempt))
		return
	case err != nil:
		_ = c.Error(errs.New(http.StatusInternalServerError, "failed to process payment outcome", err))
		return
	}

	c.JSON(http.StatusOK, attemptJSON(attempt))
}
