package invoicing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"payment_relay/internal/config"
	"payment_relay/internal/domain/entities"
	"payment_relay/internal/logger"
	"payment_relay/internal/metrics"
	"payment_relay/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	opGetInvoice    = "get_invoice"
	opFindInvoice   = "find_invoice"
	opCreateInvoice = "create_invoice"
	opFindPayment   = "find_payment"
	opCreatePayment = "create_payment"
	opUpdatePayment = "update_payment"

	paymentMethod = "whish"
	maxBodyInErr  = 300
)

var ErrInvoicingNotConfigured = errors.New("invoicing client not configured")

// InvoicingClient is a minimal client for a Daftra-compatible invoicing API.
type InvoicingClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

var _ interfaces.IInvoicingClient = (*InvoicingClient)(nil)

func NewInvoicingClient(cfg config.InvoicingConfig, timeout time.Duration) (*InvoicingClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrInvoicingNotConfigured
	}
	return &InvoicingClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}, nil
}

type invoiceBody struct {
	Status   string          `json:"status"`
	Currency string          `json:"currency"`
	Notes    string          `json:"notes"`
	Total    decimal.Decimal `json:"total"`
	OrderRef string          `json:"order_ref,omitempty"`
}

type paymentBody struct {
	InvoiceID     string          `json:"invoice_id,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency_code"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	Date          string          `json:"date"`
	Notes         string          `json:"notes,omitempty"`
}

// idResponse covers both {"id": ...} and {"data": {"id": ...}} answers.
type idResponse struct {
	ID   json.RawMessage `json:"id"`
	Data struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

// listItem is one row of an invoice or payment listing. Filtered fields are
// compared again locally since not every deployment honours the filters.
type listItem struct {
	ID            json.RawMessage `json:"id"`
	InvoiceID     json.RawMessage `json:"invoice_id"`
	OrderRef      string          `json:"order_ref"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
}

type listResponse struct {
	Data []listItem `json:"data"`
}

func (c *InvoicingClient) EnsureDraftInvoice(ctx context.Context, invoiceID string) error {
	if strings.TrimSpace(invoiceID) == "" {
		return entities.ErrInvoiceNotFound
	}
	status, _, err := c.send(ctx, opGetInvoice, http.MethodGet, "/invoices/"+url.PathEscape(invoiceID), nil, http.StatusNotFound)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return entities.ErrInvoiceNotFound
	}
	return nil
}

// FindInvoiceByOrderRef returns the invoice previously created for the order, if any.
func (c *InvoicingClient) FindInvoiceByOrderRef(ctx context.Context, orderRef string) (string, bool, error) {
	if strings.TrimSpace(orderRef) == "" {
		return "", false, nil
	}
	items, err := c.list(ctx, opFindInvoice, "/invoices", url.Values{"order_ref": {orderRef}})
	if err != nil {
		return "", false, err
	}
	for _, it := range items {
		if it.OrderRef == orderRef {
			if id := rawID(it.ID); id != "" {
				return id, true, nil
			}
		}
	}
	return "", false, nil
}

func (c *InvoicingClient) CreateDraftInvoice(ctx context.Context, inv entities.DraftInvoice) (string, error) {
	body := invoiceBody{
		Status:   "draft",
		Currency: inv.Currency,
		Notes:    inv.Notes,
		Total:    inv.Total,
		OrderRef: inv.OrderID,
	}
	_, raw, err := c.send(ctx, opCreateInvoice, http.MethodPost, "/invoices", body)
	if err != nil {
		return "", err
	}
	id, err := extractID(raw)
	if err != nil {
		return "", &entities.InvoicingError{Op: opCreateInvoice, Body: truncate(raw), Err: err}
	}
	logger.FromCtx(ctx).Info("draft invoice created", zap.String("invoice_id", id), zap.String("order_id", inv.OrderID))
	return id, nil
}

// FindPaymentByTransactionRef returns the payment entry carrying transactionRef, if any.
func (c *InvoicingClient) FindPaymentByTransactionRef(ctx context.Context, transactionRef string) (entities.InvoicePayment, bool, error) {
	if strings.TrimSpace(transactionRef) == "" {
		return entities.InvoicePayment{}, false, nil
	}
	items, err := c.list(ctx, opFindPayment, "/invoice_payments", url.Values{"transaction_id": {transactionRef}})
	if err != nil {
		return entities.InvoicePayment{}, false, err
	}
	for _, it := range items {
		if it.TransactionID != transactionRef {
			continue
		}
		id := rawID(it.ID)
		if id == "" {
			continue
		}
		return entities.InvoicePayment{
			ID:             id,
			InvoiceID:      rawID(it.InvoiceID),
			TransactionRef: it.TransactionID,
			Status:         entities.PaymentRecordStatus(it.Status),
		}, true, nil
	}
	return entities.InvoicePayment{}, false, nil
}

func (c *InvoicingClient) list(ctx context.Context, op, path string, query url.Values) ([]listItem, error) {
	_, raw, err := c.send(ctx, op, http.MethodGet, path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var wrapped listResponse
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Data, nil
	}
	var bare []listItem
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, &entities.InvoicingError{Op: op, Body: truncate(raw), Err: err}
	}
	return bare, nil
}

func (c *InvoicingClient) RecordPendingPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, currency, transactionRef, note string) (string, error) {
	return c.RecordPayment(ctx, entities.PaymentRecordInput{
		InvoiceID:      invoiceID,
		Amount:         amount,
		Currency:       currency,
		TransactionRef: transactionRef,
		Note:           note,
		Status:         entities.PaymentRecordStatusPending,
	})
}

// RecordPayment adds a payment to an invoice. transaction_id lets the
// invoicing system reject a second payment with the same reference.
func (c *InvoicingClient) RecordPayment(ctx context.Context, in entities.PaymentRecordInput) (string, error) {
	_, raw, err := c.send(ctx, opCreatePayment, http.MethodPost, "/invoice_payments", c.paymentBody(in))
	if err != nil {
		return "", err
	}
	id, err := extractID(raw)
	if err != nil {
		return "", &entities.InvoicingError{Op: opCreatePayment, Body: truncate(raw), Err: err}
	}
	return id, nil
}

func (c *InvoicingClient) UpdatePayment(ctx context.Context, paymentRecordID string, in entities.PaymentRecordInput) error {
	if strings.TrimSpace(paymentRecordID) == "" {
		return &entities.InvoicingError{Op: opUpdatePayment, Err: errors.New("empty payment id")}
	}
	_, _, err := c.send(ctx, opUpdatePayment, http.MethodPut, "/invoice_payments/"+url.PathEscape(paymentRecordID), c.paymentBody(in))
	return err
}

func (c *InvoicingClient) paymentBody(in entities.PaymentRecordInput) paymentBody {
	status := in.Status
	if status == "" {
		status = entities.PaymentRecordStatusCompleted
	}
	return paymentBody{
		InvoiceID:     in.InvoiceID,
		PaymentMethod: paymentMethod,
		Amount:        in.Amount.Round(2),
		Currency:      in.Currency,
		TransactionID: in.TransactionRef,
		Status:        string(status),
		Date:          c.now().UTC().Format("2006-01-02 15:04:05"),
		Notes:         in.Note,
	}
}

// send performs one call. Statuses listed in allow are returned without error.
func (c *InvoicingClient) send(ctx context.Context, op, method, path string, body any, allow ...int) (int, []byte, error) {
	if c == nil || c.client == nil {
		return 0, nil, ErrInvoicingNotConfigured
	}
	log := logger.FromCtx(ctx).With(zap.String("op", op))

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &entities.InvoicingError{Op: op, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &entities.InvoicingError{Op: op, Err: err}
	}
	req.Header.Set("APIKEY", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.InvoicingRequestsTotal.WithLabelValues(op, "error").Inc()
		log.Warn("invoicing request failed", zap.Error(err))
		return 0, nil, &entities.InvoicingError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.InvoicingRequestsTotal.WithLabelValues(op, "error").Inc()
		return resp.StatusCode, nil, &entities.InvoicingError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	for _, s := range allow {
		if resp.StatusCode == s {
			metrics.InvoicingRequestsTotal.WithLabelValues(op, "ok").Inc()
			return resp.StatusCode, raw, nil
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.InvoicingRequestsTotal.WithLabelValues(op, "error").Inc()
		log.Warn("invoicing request rejected", zap.Int("status", resp.StatusCode), zap.String("body", truncate(raw)))
		return resp.StatusCode, raw, &entities.InvoicingError{Op: op, StatusCode: resp.StatusCode, Body: truncate(raw)}
	}
	if len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		metrics.InvoicingRequestsTotal.WithLabelValues(op, "error").Inc()
		return resp.StatusCode, raw, &entities.InvoicingError{Op: op, StatusCode: resp.StatusCode, Body: truncate(raw), Err: errors.New("response is not json")}
	}

	metrics.InvoicingRequestsTotal.WithLabelValues(op, "ok").Inc()
	return resp.StatusCode, raw, nil
}

func extractID(raw []byte) (string, error) {
	var r idResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return "", err
	}
	for _, v := range []json.RawMessage{r.ID, r.Data.ID} {
		if id := rawID(v); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("no id in response")
}

// rawID accepts numeric and string ids.
func rawID(v json.RawMessage) string {
	id := strings.Trim(strings.TrimSpace(string(v)), `"`)
	if id == "null" {
		return ""
	}
	return id
}

func truncate(b []byte) string {
	if len(b) > maxBodyInErr {
		return string(b[:maxBodyInErr])
	}
	return string(b)
}
