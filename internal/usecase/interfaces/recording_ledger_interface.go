package interfaces

import (
	"context"

	"payment_relay/internal/domain/entities"
)

// IRecordingLedger deduplicates invoicing writes per transaction reference.
//
// Claim fails with entities.ErrTransactionAlreadySeen when the reference was
// already claimed. Release drops a claim whose recording failed so a later
// callback can retry.
type IRecordingLedger interface {
	Claim(ctx context.Context, e entities.LedgerEntry) error
	MarkRecorded(ctx context.Context, transactionRef, invoiceID, paymentRecordID string) error
	Release(ctx context.Context, transactionRef string) error
	Get(ctx context.Context, transactionRef string) (entities.LedgerEntry, bool, error)
}
