package entities

import "github.com/shopspring/decimal"

// WorkflowState is the orchestrator state of a single payment attempt.
// Terminal states are only observable through the redirect the payer receives.
type WorkflowState string

const (
	WorkflowStateCreated          WorkflowState = "CREATED"
	WorkflowStateAwaitingCallback WorkflowState = "AWAITING_CALLBACK"
	WorkflowStateVerifying        WorkflowState = "VERIFYING"
	WorkflowStateRecorded         WorkflowState = "RECORDED"
	WorkflowStateRejected         WorkflowState = "REJECTED"
	WorkflowStateIndeterminate    WorkflowState = "INDETERMINATE"
)

// TerminalStateFor maps a verified collect status to the state the attempt settles in.
// Anything that is not a confirmed success or failure is indeterminate.
func TerminalStateFor(s CollectStatus) WorkflowState {
	switch s {
	case CollectStatusSuccess:
		return WorkflowStateRecorded
	case CollectStatusFailed:
		return WorkflowStateRejected
	default:
		return WorkflowStateIndeterminate
	}
}

func (s WorkflowState) IsTerminal() bool {
	switch s {
	case WorkflowStateRecorded, WorkflowStateRejected, WorkflowStateIndeterminate:
		return true
	}
	return false
}

// PaymentRecordStatus is the status a payment entry is created with in the invoicing system.
type PaymentRecordStatus string

const (
	PaymentRecordStatusPending   PaymentRecordStatus = "pending"
	PaymentRecordStatusCompleted PaymentRecordStatus = "completed"
)

// PaymentRecordInput describes a payment entry to create or update in the invoicing system.
//
// TransactionRef must be stable for a payment attempt so a repeated callback
// references the same transaction.
type PaymentRecordInput struct {
	InvoiceID      string
	Amount         decimal.Decimal
	Currency       string
	TransactionRef string
	Note           string
	Status         PaymentRecordStatus
}

// InvoicePayment is a payment entry already present in the invoicing system.
type InvoicePayment struct {
	ID             string
	InvoiceID      string
	TransactionRef string
	Status         PaymentRecordStatus
}

// DraftInvoice holds the fields of an invoice created by the relay.
type DraftInvoice struct {
	OrderID  string
	Currency string
	Total    decimal.Decimal
	Notes    string
}

// CallbackOutcome is what HandleCallback decided: where the payer goes next and what was recorded.
type CallbackOutcome struct {
	OrderID         string
	ExternalID      int64
	State           WorkflowState
	Status          CollectStatus
	RedirectURL     string
	InvoiceID       string
	PaymentRecordID string
	Duplicate       bool
}
