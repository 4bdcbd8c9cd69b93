package interfaces

import (
	"context"
	"encoding/json"
	"net/url"

	"payment_relay/internal/domain/entities"
)

// SessionRequest carries everything the gateway needs to open a checkout session.
//
// CallbackURL is the relay's callback endpoint; the gateway client derives the
// four callback/redirect URLs from it and appends CallbackQuery to each.
type SessionRequest struct {
	Payment       entities.PaymentRequest
	ExternalID    int64
	CallbackURL   string
	CallbackQuery url.Values
}

// IPaymentGateway abstracts the payment gateway (Whish).
type IPaymentGateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (entities.GatewaySession, error)
	CheckStatus(ctx context.Context, externalID int64, currency string) (entities.VerifiedStatus, error)
	Balance(ctx context.Context) (json.RawMessage, error)
}
