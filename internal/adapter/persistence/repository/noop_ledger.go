package repository

import (
	"context"

	"payment_relay/internal/domain/entities"
	"payment_relay/internal/usecase/interfaces"
)

// NoopLedger is used when no ledger table is configured. Every claim succeeds,
// leaving deduplication to the invoicing system's transaction_id.
type NoopLedger struct{}

var _ interfaces.IRecordingLedger = NoopLedger{}

func (NoopLedger) Claim(context.Context, entities.LedgerEntry) error { return nil }

func (NoopLedger) MarkRecorded(context.Context, string, string, string) error { return nil }

func (NoopLedger) Release(context.Context, string) error { return nil }

func (NoopLedger) Get(context.Context, string) (entities.LedgerEntry, bool, error) {
	return entities.LedgerEntry{}, false, nil
}
