// Package checkout orchestrates a single payment attempt: contact validation,
// cart snapshotting, gateway initiation, and — only on verified success —
// order persistence followed by cart clearing.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emekaobi/storefront-backend/cart"
	"github.com/emekaobi/storefront-backend/common/logger"
	"github.com/emekaobi/storefront-backend/models"
	"github.com/emekaobi/storefront-backend/payment"
)

// State of a checkout attempt. An attempt becomes visible to callers at
// AwaitingGateway; validation failures never produce an attempt.
type State string

const (
	StateAwaitingGateway State = "awaiting_gateway"
	// StateRecording is transient: the gateway confirmed success and the
	// order write is in flight. No second outcome can land once entered.
	StateRecording State = "recording"
	StateCompleted State = "completed"
	// StateCompletedWithWarning: payment confirmed but the order write
	// failed. The cart is intentionally NOT cleared and the caller must not
	// present this as retryable.
	StateCompletedWithWarning State = "completed_with_warning"
	StateFailed               State = "failed"
)

// Terminal reports whether no further transition can occur.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCompletedWithWarning || s == StateFailed
}

// FailureReason distinguishes why an attempt failed.
type FailureReason string

const (
	ReasonEmptyCart FailureReason = "empty_cart"
	ReasonDeclined  FailureReason = "declined"
	// ReasonAbandoned means the shopper closed the payment widget.
	ReasonAbandoned FailureReason = "abandoned"
	// ReasonExpired means no callback arrived within the checkout timeout.
	ReasonExpired FailureReason = "expired"
	ReasonGateway FailureReason = "gateway_error"
)

var (
	// ErrEmptyCart is returned by Submit when there is nothing to pay for.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrAttemptInFlight is returned when the session already has an
	// attempt awaiting its gateway outcome.
	ErrAttemptInFlight = errors.New("checkout: attempt already in flight for session")
	ErrAttemptNotFound = errors.New("checkout: unknown transaction reference")
	// ErrAttemptSettled is returned when an outcome arrives for an attempt
	// that already received its terminal outcome.
	ErrAttemptSettled = errors.New("checkout: attempt already settled")
)

// Attempt is a snapshot of one checkout attempt. Items and Total are frozen
// at submit time and never re-read from the live cart.
type Attempt struct {
	TxRef       string
	SessionID   string
	Contact     Contact
	Items       []models.OrderItem
	Total       int64
	PaymentLink string
	State       State
	Reason      FailureReason
	Message     string
	OrderID     string
	StartedAt   time.Time
	SettledAt   time.Time
}

// settledRetention is how long a settled attempt stays queryable for the
// payment result pages before the sweep evicts it.
const settledRetention = time.Hour

type attempt struct {
	Attempt
	store *cart.Store
}

// OrderWriter persists orders. Implemented by repository.MongoOrderRepository.
type OrderWriter interface {
	Create(ctx context.Context, order *models.Order) (string, error)
}

// EventPublisher emits order lifecycle events, best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, event models.OrderEvent) error
}

// Coordinator runs checkout attempts. One per process; attempts are keyed by
// transaction reference.
type Coordinator struct {
	gateway payment.Gateway
	orders  OrderWriter
	events  EventPublisher // may be nil

	phoneDigits int
	timeout     time.Duration

	mu       sync.Mutex
	attempts map[string]*attempt
	inflight map[string]string // sessionID -> txRef
}

func NewCoordinator(gateway payment.Gateway, orders OrderWriter, events EventPublisher, phoneDigits int, timeout time.Duration) *Coordinator {
	return &Coordinator{
		gateway:     gateway,
		orders:      orders,
		events:      events,
		phoneDigits: phoneDigits,
		timeout:     timeout,
		attempts:    make(map[string]*attempt),
		inflight:    make(map[string]string),
	}
}

// Submit validates the contact, snapshots the cart, and initiates the
// gateway. Returns *ValidationError for bad contact data, ErrEmptyCart for an
// empty cart (no gateway call in either case), ErrAttemptInFlight when the
// session is already awaiting an outcome, or the gateway's initiation error.
func (c *Coordinator) Submit(ctx context.Context, store *cart.Store, sessionID string, contact Contact) (Attempt, error) {
	if fields := ValidateContact(contact, c.phoneDigits); fields != nil {
		return Attempt{}, &ValidationError{Fields: fields}
	}

	items := store.Items()
	if len(items) == 0 {
		return Attempt{}, ErrEmptyCart
	}
	total := store.Total()

	txRef := newTxRef()

	// Reserve the session before touching the gateway so two concurrent
	// submits can never both initiate a charge.
	c.mu.Lock()
	if ref, ok := c.inflight[sessionID]; ok {
		// A reserved ref without a registered attempt is an initiation
		// still in progress; that counts as in flight too.
		if a, exists := c.attempts[ref]; !exists || !a.State.Terminal() {
			c.mu.Unlock()
			return Attempt{}, ErrAttemptInFlight
		}
	}
	c.inflight[sessionID] = txRef
	c.mu.Unlock()

	result, err := c.gateway.Initiate(ctx, payment.ChargeRequest{
		TxRef:      txRef,
		AmountKobo: total,
		Customer: payment.Customer{
			Name:  contact.Name,
			Email: contact.Email,
			Phone: contact.Phone,
		},
	})
	if err != nil {
		// Charge never started; cart is untouched and the shopper can retry.
		c.mu.Lock()
		delete(c.inflight, sessionID)
		c.mu.Unlock()
		return Attempt{}, fmt.Errorf("checkout: gateway initiation failed: %w", err)
	}

	a := &attempt{
		Attempt: Attempt{
			TxRef:       txRef,
			SessionID:   sessionID,
			Contact:     contact,
			Items:       toOrderItems(items),
			Total:       total,
			PaymentLink: result.PaymentLink,
			State:       StateAwaitingGateway,
			StartedAt:   time.Now(),
		},
		store: store,
	}

	c.mu.Lock()
	c.attempts[txRef] = a
	c.mu.Unlock()

	logger.Log.Info("Checkout initiated",
		zap.String("tx_ref", txRef),
		zap.String("session_id", sessionID),
		zap.Int64("total", total),
		zap.Int("items", len(items)))

	return a.Attempt, nil
}

// HandleOutcome applies the gateway's terminal outcome for txRef. Exactly one
// outcome is accepted per attempt; later deliveries get ErrAttemptSettled.
// Success is re-verified against the gateway before anything is persisted.
func (c *Coordinator) HandleOutcome(ctx context.Context, txRef string, status payment.Status, message string) (Attempt, error) {
	c.mu.Lock()
	a, ok := c.attempts[txRef]
	if !ok {
		c.mu.Unlock()
		return Attempt{}, ErrAttemptNotFound
	}
	if a.State != StateAwaitingGateway {
		snap := a.Attempt
		c.mu.Unlock()
		return snap, ErrAttemptSettled
	}

	if status != payment.StatusSuccessful {
		reason := ReasonDeclined
		if status == payment.StatusCancelled {
			reason = ReasonAbandoned
		}
		c.failLocked(a, reason, message)
		snap := a.Attempt
		c.mu.Unlock()
		return snap, nil
	}

	// Claim the attempt before releasing the lock for IO.
	a.State = StateRecording
	c.mu.Unlock()

	outcome, err := c.gateway.Verify(ctx, txRef)
	if err != nil || outcome.Status != payment.StatusSuccessful {
		msg := "payment could not be verified"
		if err != nil {
			logger.Log.Error("Gateway verification failed", zap.String("tx_ref", txRef), zap.Error(err))
		} else if outcome.Message != "" {
			msg = outcome.Message
		}
		return c.settleFailed(a, ReasonGateway, msg), nil
	}
	if outcome.AmountKobo < a.Total {
		logger.Log.Error("Verified amount below cart total",
			zap.String("tx_ref", txRef),
			zap.Int64("verified", outcome.AmountKobo),
			zap.Int64("expected", a.Total))
		return c.settleFailed(a, ReasonGateway, "charged amount does not match order total"), nil
	}

	now := time.Now()
	order := &models.Order{
		ID:               uuid.NewString(),
		PaymentReference: txRef,
		CustomerEmail:    a.Contact.Email,
		CustomerPhone:    a.Contact.Phone,
		Items:            a.Items,
		Total:            a.Total,
		Status:           models.OrderPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	orderID, err := c.orders.Create(ctx, order)
	if err != nil {
		// Payment taken, order write failed. Keep the cart so the shopper
		// does not retry and get charged twice; reconciliation is manual.
		logger.Log.Error("Order persistence failed after confirmed payment",
			zap.String("tx_ref", txRef), zap.Error(err))
		c.mu.Lock()
		a.State = StateCompletedWithWarning
		a.Message = "payment received, order recording failed"
		a.SettledAt = time.Now()
		delete(c.inflight, a.SessionID)
		snap := a.Attempt
		c.mu.Unlock()
		return snap, nil
	}

	// Order is durable; only now may the cart be cleared.
	a.store.Clear()

	c.mu.Lock()
	a.State = StateCompleted
	a.OrderID = orderID
	a.SettledAt = time.Now()
	delete(c.inflight, a.SessionID)
	snap := a.Attempt
	c.mu.Unlock()

	c.publish(ctx, models.OrderEvent{
		Type:             models.OrderEventCreated,
		OrderID:          orderID,
		PaymentReference: txRef,
		Total:            order.Total,
		Status:           string(order.Status),
		Timestamp:        now,
	})

	logger.Log.Info("Checkout completed",
		zap.String("tx_ref", txRef), zap.String("order_id", orderID))
	return snap, nil
}

// Attempt returns a snapshot of the attempt with the given reference.
func (c *Coordinator) Attempt(txRef string) (Attempt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.attempts[txRef]
	if !ok {
		return Attempt{}, false
	}
	return a.Attempt, true
}

// ExpireStale fails attempts that never received a gateway callback within
// the configured timeout, so no attempt is left pending forever, and evicts
// settled attempts past their retention window so the attempt map stays
// bounded. Returns the number of attempts expired.
func (c *Coordinator) ExpireStale() int {
	now := time.Now()
	cutoff := now.Add(-c.timeout)
	evictCutoff := now.Add(-settledRetention)

	c.mu.Lock()
	defer c.mu.Unlock()
	expired := 0
	for ref, a := range c.attempts {
		switch {
		case a.State == StateAwaitingGateway && a.StartedAt.Before(cutoff):
			c.failLocked(a, ReasonExpired, "no payment outcome received in time")
			expired++
		case a.State.Terminal() && a.SettledAt.Before(evictCutoff):
			delete(c.attempts, ref)
		}
	}
	if expired > 0 {
		logger.Log.Warn("Expired stale checkout attempts", zap.Int("count", expired))
	}
	return expired
}

// failLocked marks an attempt failed. Caller holds c.mu. The cart is left
// untouched so the shopper can retry.
func (c *Coordinator) failLocked(a *attempt, reason FailureReason, message string) {
	a.State = StateFailed
	a.Reason = reason
	a.Message = message
	a.SettledAt = time.Now()
	delete(c.inflight, a.SessionID)
}

func (c *Coordinator) settleFailed(a *attempt, reason FailureReason, message string) Attempt {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failLocked(a, reason, message)
	return a.Attempt
}

func (c *Coordinator) publish(ctx context.Context, event models.OrderEvent) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, event); err != nil {
		logger.Log.Warn("Order event publish failed",
			zap.String("order_id", event.OrderID), zap.Error(err))
	}
}

func toOrderItems(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return out
}

// newTxRef mints a payment reference in the TX-<millis>-<suffix> shape.
func newTxRef() string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("TX-%d-%s", time.Now().UnixMilli(), suffix)
}
