package interfaces

import (
	"context"

	"payment_relay/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// IInvoicingClient abstracts the downstream invoicing system.
//
// Recording calls are not idempotent by themselves. Callers look up the stable
// transaction reference and the order reference before creating anything, and
// may additionally guard retries with IRecordingLedger.
type IInvoicingClient interface {
	EnsureDraftInvoice(ctx context.Context, invoiceID string) error
	FindInvoiceByOrderRef(ctx context.Context, orderRef string) (string, bool, error)
	CreateDraftInvoice(ctx context.Context, inv entities.DraftInvoice) (string, error)
	FindPaymentByTransactionRef(ctx context.Context, transactionRef string) (entities.InvoicePayment, bool, error)
	RecordPendingPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, currency, transactionRef, note string) (string, error)
	RecordPayment(ctx context.Context, in entities.PaymentRecordInput) (string, error)
	UpdatePayment(ctx context.Context, paymentRecordID string, in entities.PaymentRecordInput) error
}
