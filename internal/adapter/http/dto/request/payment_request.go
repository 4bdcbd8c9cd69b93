package request

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CreatePaymentRequest is the body of POST /whish/create.
//
// orderId and amount are accepted as JSON strings or numbers ("1,200" and 1200
// are both valid amounts); the use case validates them.
type CreatePaymentRequest struct {
	OrderID     json.RawMessage `json:"orderId" swaggertype:"string" example:"1042"`
	Amount      json.RawMessage `json:"amount" swaggertype:"string" example:"1,200"`
	Currency    string          `json:"currency,omitempty" example:"LBP"`
	Description string          `json:"description,omitempty" example:"Order #1042"`
}

func (r CreatePaymentRequest) OrderIDString() string { return Scalar(r.OrderID) }

func (r CreatePaymentRequest) AmountString() string { return Scalar(r.Amount) }

// StatusRequest is the JSON body of POST /whish/status.
type StatusRequest struct {
	OrderID    json.RawMessage `json:"orderId" swaggertype:"string" example:"1042"`
	ExternalID json.RawMessage `json:"externalId,omitempty" swaggertype:"string" example:"104200317"`
	Currency   string          `json:"currency,omitempty" example:"LBP"`
}

func (r StatusRequest) OrderIDString() string { return Scalar(r.OrderID) }

func (r StatusRequest) ExternalIDString() string { return Scalar(r.ExternalID) }

// Scalar renders a raw JSON string or number as text. null, objects and
// arrays yield "" for strings and the raw literal otherwise.
func Scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(raw)
}
