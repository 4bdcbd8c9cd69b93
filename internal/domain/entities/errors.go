package entities

import (
	"errors"
	"fmt"
)

// GatewayErrorReason classifies a failed gateway call.
type GatewayErrorReason string

const (
	GatewayReasonInvalidResponse GatewayErrorReason = "invalid_response"
	GatewayReasonRejected        GatewayErrorReason = "rejected"
	GatewayReasonNetwork         GatewayErrorReason = "network"
)

// ValidationError reports malformed caller input. It never reaches the gateway.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// GatewayError reports a failed call to the payment gateway.
type GatewayError struct {
	Op         string
	Reason     GatewayErrorReason
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("gateway %s failed (%s)", e.Op, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status=%d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error { return e.Err }

// InvoicingError reports a failed call to the invoicing system.
type InvoicingError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *InvoicingError) Error() string {
	msg := fmt.Sprintf("invoicing %s failed", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status=%d", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvoicingError) Unwrap() error { return e.Err }

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrTransactionAlreadySeen = errors.New("transaction already claimed")
)

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// GatewayReason returns the reason of a wrapped GatewayError and whether there was one.
func GatewayReason(err error) (GatewayErrorReason, bool) {
	var g *GatewayError
	if errors.As(err, &g) {
		return g.Reason, true
	}
	return "", false
}
