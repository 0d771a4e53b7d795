package entity

import "time"

const (
	EventCreated      = "created"
	EventPriceUpdated = "price_updated"
	EventDeleted      = "deleted"
)

// ProductEvent is published after a mutation of products_info is committed.
// Key on the topic -> "product.<type>.<productID>"
type ProductEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	ProductID  int       `json:"product_id"`
	Product    *Product  `json:"product,omitempty"`
	Affected   int64     `json:"affected"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PriceUpdate is consumed from the pricing topic. A missing product_id is
// taken from the key.
// Key on the topic -> "price.updated.<productID>"
type PriceUpdate struct {
	ProductID *int `json:"product_id"`
	Price     *int `json:"price"`
}
