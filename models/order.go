package models

import "time"

// OrderStatus is the order lifecycle state. It starts at pending and is moved
// forward only by admin action. The admin console shares this enum; keep the
// two in sync.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatuses lists every accepted status, in lifecycle order.
var ValidOrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}

// IsValid reports whether s is one of the accepted statuses.
func (s OrderStatus) IsValid() bool {
	for _, v := range ValidOrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// OrderItem is one purchased line. Price is the unit price in kobo.
type OrderItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Name      string `bson:"name" json:"name"`
	Price     int64  `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Order is the persisted record of a paid checkout attempt. Total is in kobo
// and always equals the sum of Price*Quantity over Items.
type Order struct {
	ID               string      `bson:"_id" json:"id"`
	PaymentReference string      `bson:"payment_reference" json:"payment_reference"`
	CustomerEmail    string      `bson:"customer_email" json:"customer_email"`
	CustomerPhone    string      `bson:"customer_phone" json:"customer_phone"`
	Items            []OrderItem `bson:"items" json:"items"`
	Total            int64       `bson:"total" json:"total"`
	Status           OrderStatus `bson:"status" json:"status"`
	CreatedAt        time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time   `bson:"updated_at" json:"updated_at"`
}

// OrderEvent is published to Kafka on order lifecycle changes.
type OrderEvent struct {
	Type             string    `json:"type"`
	OrderID          string    `json:"order_id"`
	PaymentReference string    `json:"payment_reference"`
	Total            int64     `json:"total"`
	Status           string    `json:"status"`
	Timestamp        time.Time `json:"timestamp"`
}

const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)
