package models

import "time"

// CartItem is one line in a shopper's cart. Price is the unit price in kobo;
// Name and ImageURL are carried for rendering only.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
}

// Cart is the persisted shape of a session's cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}
