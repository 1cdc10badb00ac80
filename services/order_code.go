package services

import (
	"strings"

	"github.com/google/uuid"
)

const orderCodeLength = 8

// NewOrderCode returns a short random order number. Uniqueness is enforced by
// the orders.order_number index, not here.
func NewOrderCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:orderCodeLength])
}
