package response

import (
	"encoding/json"
	"time"

	"payment_relay/internal/domain/entities"
)

// CreatePaymentResponse carries the externalId of the attempt; status queries need it.
type CreatePaymentResponse struct {
	Redirect   string `json:"redirect" example:"https://lb.sandbox.whish.money/pay/abc"`
	ExternalID int64  `json:"externalId" example:"4200007"`
}

type PaymentStatusResponse struct {
	ExternalID    int64           `json:"externalId"`
	CollectStatus string          `json:"collectStatus"`
	PayerPhone    string          `json:"payerPhoneNumber,omitempty"`
	Amount        string          `json:"amount,omitempty"`
	Data          json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}

func FromVerifiedStatus(s entities.VerifiedStatus) PaymentStatusResponse {
	out := PaymentStatusResponse{
		ExternalID:    s.ExternalID,
		CollectStatus: string(s.CollectStatus),
		PayerPhone:    s.PayerPhone,
		Data:          s.Raw,
	}
	if s.Amount != nil {
		out.Amount = s.Amount.String()
	}
	return out
}

type HealthResponse struct {
	OK   bool      `json:"ok"`
	Time time.Time `json:"time"`
}
