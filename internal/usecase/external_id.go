package usecase

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"payment_relay/internal/domain/entities"

	"github.com/google/uuid"
)

// externalIDFactor leaves room for a 5-digit disambiguator after the order number:
// externalId = orderNumber*externalIDFactor + disambiguator.
const externalIDFactor int64 = 100_000

const maxOrderNumber = math.MaxInt64/externalIDFactor - 1

// parseOrderNumber validates that the order id is a positive integer small enough
// to be embedded in an externalId.
func parseOrderNumber(orderID string) (int64, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return 0, entities.NewValidationError("orderId", "is required")
	}
	n, err := strconv.ParseInt(orderID, 10, 64)
	if err != nil || n <= 0 {
		return 0, entities.NewValidationError("orderId", "must be a positive integer")
	}
	if n > maxOrderNumber {
		return 0, entities.NewValidationError("orderId", "is too large")
	}
	return n, nil
}

// deriveExternalID builds a gateway-facing id unique per payment attempt for the order.
func deriveExternalID(orderNumber, disambiguator int64) int64 {
	d := disambiguator % externalIDFactor
	if d < 0 {
		d = -d
	}
	return orderNumber*externalIDFactor + d
}

// OrderNumberFromExternalID recovers the order number embedded by deriveExternalID.
func OrderNumberFromExternalID(externalID int64) int64 {
	return externalID / externalIDFactor
}

func randomDisambiguator() int64 {
	id := uuid.New()
	return int64(binary.BigEndian.Uint64(id[:8]) % uint64(externalIDFactor))
}
