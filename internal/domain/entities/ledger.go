package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerStatus is the state of a recording claim.
type LedgerStatus string

const (
	LedgerStatusClaimed  LedgerStatus = "claimed"
	LedgerStatusRecorded LedgerStatus = "recorded"
)

// LedgerEntry marks that a transaction reference was (or is being) recorded in
// the invoicing system. It is a dedupe marker, not the payment state of record.
type LedgerEntry struct {
	TransactionRef  string
	OrderID         string
	ExternalID      int64
	Status          LedgerStatus
	InvoiceID       string
	PaymentRecordID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CallbackContext is what the relay signed into the callback URLs at creation time.
type CallbackContext struct {
	OrderID    string
	ExternalID int64
	Amount     decimal.Decimal
	Currency   string
}
