package entities

import (
	"encoding/json"
	"net/url"

	"github.com/shopspring/decimal"
)

// CollectStatus is the gateway's verdict for an externalId.
//
// Only a status obtained from an explicit status query is authoritative.
// The callback query string is a trigger to re-verify, never a result.
type CollectStatus string

const (
	CollectStatusSuccess CollectStatus = "SUCCESS"
	CollectStatusFailed  CollectStatus = "FAILED"
	CollectStatusPending CollectStatus = "PENDING"
	CollectStatusUnknown CollectStatus = "UNKNOWN"
)

// ResultHint is what the callback URL claims happened. Advisory only.
type ResultHint string

const (
	ResultHintSuccess ResultHint = "success"
	ResultHintFailure ResultHint = "failure"
	ResultHintUnknown ResultHint = "unknown"
)

func ParseResultHint(raw string) ResultHint {
	switch ResultHint(raw) {
	case ResultHintSuccess, ResultHintFailure:
		return ResultHint(raw)
	default:
		return ResultHintUnknown
	}
}

// PaymentRequest is a validated request to start a payment.
type PaymentRequest struct {
	OrderID     string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// GatewaySession is the checkout session opened at the gateway. The gateway owns it.
type GatewaySession struct {
	ExternalID  int64
	Amount      decimal.Decimal
	Currency    string
	CheckoutURL string
}

// CallbackEvent is one inbound callback request, from the gateway or the payer's browser.
type CallbackEvent struct {
	OrderID    string
	ExternalID int64
	Currency   string
	ResultHint ResultHint
	Token      string
	RawQuery   url.Values
}

// VerifiedStatus is the result of a status query against the gateway.
type VerifiedStatus struct {
	ExternalID    int64
	CollectStatus CollectStatus
	PayerPhone    string
	Amount        *decimal.Decimal
	Raw           json.RawMessage
}
