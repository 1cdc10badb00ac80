package services

import (
	"fmt"
	"strings"
)

const insufficientStockMessage = "Not enough stock for the following items."

// ValidationError reports a malformed checkout request. Line is the index of
// the offending item, or -1 when the problem is not tied to one line.
type ValidationError struct {
	Field   string
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Shortfall is one menu item whose requested quantity exceeds its stock.
type Shortfall struct {
	MenuItemID        uint   `json:"menu_item_id"`
	MenuItemName      string `json:"menu_item_name"`
	RequestedQuantity int    `json:"requested_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
}

// InsufficientStockError carries every shortfall found in a checkout.
type InsufficientStockError struct {
	Items []Shortfall
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, 0, len(e.Items))
	for _, s := range e.Items {
		names = append(names, fmt.Sprintf("%s (requested %d, available %d)", s.MenuItemName, s.RequestedQuantity, s.AvailableQuantity))
	}
	return insufficientStockMessage + " " + strings.Join(names, ", ")
}

// Message is the client-facing summary.
func (e *InsufficientStockError) Message() string {
	return insufficientStockMessage
}

// ConflictError means the checkout lost a race (order number collision or a
// concurrent stock decrement). Nothing was committed; retrying is safe.
type ConflictError struct {
	Reason string
	Err    error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("checkout conflict: %s: %v", e.Reason, e.Err)
	}
	return "checkout conflict: " + e.Reason
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
