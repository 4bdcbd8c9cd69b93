package response

import (
	"encoding/json"
	"testing"

	"payment_relay/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromVerifiedStatus(t *testing.T) {
	amount := decimal.RequireFromString("12.50")
	out := FromVerifiedStatus(entities.VerifiedStatus{
		ExternalID:    4200007,
		CollectStatus: entities.CollectStatusSuccess,
		PayerPhone:    "96170000000",
		Amount:        &amount,
		Raw:           json.RawMessage(`{"collectStatus":"success"}`),
	})
	if out.CollectStatus != "SUCCESS" || out.Amount != "12.5" || out.ExternalID != 4200007 {
		t.Fatalf("unexpected response: %+v", out)
	}

	b, err := json.Marshal(FromVerifiedStatus(entities.VerifiedStatus{ExternalID: 1, CollectStatus: entities.CollectStatusPending}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"externalId":1,"collectStatus":"PENDING"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}
