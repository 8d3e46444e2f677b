package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ContainerID uniquely identifies a container
type ContainerID string

// Container represents a physical serving vessel. HasPrice is false when the
// container is unpriced; its requirements then report quantity only.
type Container struct {
	ID       ContainerID     `json:"id"`
	Name     string          `json:"name"`
	Code     string          `json:"code,omitempty"`
	Price    decimal.Decimal `json:"price"`
	HasPrice bool            `json:"has_price"`
}

// NewContainer creates a validated Container
func NewContainer(
	id ContainerID,
	name string,
	code string,
	price decimal.Decimal,
	hasPrice bool,
) (*Container, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("container id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("container name cannot be empty")
	}
	if hasPrice && price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}

	return &Container{
		ID:       id,
		Name:     name,
		Code:     code,
		Price:    price,
		HasPrice: hasPrice,
	}, nil
}

// StockSnapshot is a point-in-time external read of on-hand stock for a
// container. The engine merges it into requirements but never mutates it.
type StockSnapshot struct {
	ItemID          ContainerID `json:"item_id"`
	CurrentQuantity int64       `json:"current_quantity"`
	LastUpdated     time.Time   `json:"last_updated"`
}
