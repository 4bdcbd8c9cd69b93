package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"payment_relay/internal/domain/entities"
	"payment_relay/internal/logger"
	"payment_relay/internal/metrics"
	"payment_relay/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const paymentMethodTag = "whish"

var ErrGatewayNotConfigured = errors.New("payment gateway not configured")

// IPaymentWorkflowUseCase is the payment state machine:
// create -> redirect -> callback -> verify -> record -> redirect-result.
type IPaymentWorkflowUseCase interface {
	CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentResult, error)
	HandleCallback(ctx context.Context, ev entities.CallbackEvent) entities.CallbackOutcome
	CheckStatus(ctx context.Context, q StatusQuery) (entities.VerifiedStatus, error)
	Balance(ctx context.Context) (json.RawMessage, error)
}

// CreatePaymentInput is raw caller input; Amount may carry thousands separators.
type CreatePaymentInput struct {
	OrderID     string
	Amount      string
	Currency    string
	Description string
}

type CreatePaymentResult struct {
	Redirect   string
	ExternalID int64
	Amount     decimal.Decimal
	Currency   string
	State      entities.WorkflowState
}

type StatusQuery struct {
	OrderID    string
	ExternalID int64
	Currency   string
}

// WorkflowSettings is the slice of configuration the workflow depends on.
type WorkflowSettings struct {
	CallbackURL         string
	SuccessURL          string
	FailureURL          string
	PendingURL          string
	FeeRate             decimal.Decimal
	DefaultCurrency     string
	SupportedCurrencies []string
	RecordPending       bool
}

type PaymentWorkflowUseCase struct {
	gateway    interfaces.IPaymentGateway
	invoicing  interfaces.IInvoicingClient
	ledger     interfaces.IRecordingLedger
	signer     interfaces.ICallbackTokenSigner
	normalizer AmountNormalizer
	settings   WorkflowSettings

	disambiguator func() int64
}

var _ IPaymentWorkflowUseCase = (*PaymentWorkflowUseCase)(nil)

func NewPaymentWorkflowUseCase(
	gateway interfaces.IPaymentGateway,
	invoicing interfaces.IInvoicingClient,
	ledger interfaces.IRecordingLedger,
	signer interfaces.ICallbackTokenSigner,
	settings WorkflowSettings,
) *PaymentWorkflowUseCase {
	return &PaymentWorkflowUseCase{
		gateway:       gateway,
		invoicing:     invoicing,
		ledger:        ledger,
		signer:        signer,
		normalizer:    NewAmountNormalizer(settings.DefaultCurrency, settings.SupportedCurrencies),
		settings:      settings,
		disambiguator: randomDisambiguator,
	}
}

// CreatePayment validates the request and opens a checkout session at the gateway.
// Validation errors never reach the gateway; no invoicing call happens here.
func (u *PaymentWorkflowUseCase) CreatePayment(ctx context.Context, in CreatePaymentInput) (CreatePaymentResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", in.OrderID))
	log.Info("create payment start", zap.String("raw_amount", in.Amount), zap.String("raw_currency", in.Currency))

	req, orderNumber, err := u.validate(in)
	if err != nil {
		log.Info("create payment rejected", zap.Error(err))
		metrics.PaymentCreateTotal.WithLabelValues("validation").Inc()
		return CreatePaymentResult{}, err
	}
	if u.gateway == nil {
		metrics.PaymentCreateTotal.WithLabelValues("error").Inc()
		return CreatePaymentResult{}, ErrGatewayNotConfigured
	}

	externalID := deriveExternalID(orderNumber, u.disambiguator())
	log = log.With(zap.Int64("external_id", externalID))

	query := url.Values{}
	if u.signer != nil {
		token, err := u.signer.Sign(entities.CallbackContext{
			OrderID:    req.OrderID,
			ExternalID: externalID,
			Amount:     req.Amount,
			Currency:   req.Currency,
		})
		if err != nil {
			log.Error("callback token signing failed", zap.Error(err))
			metrics.PaymentCreateTotal.WithLabelValues("error").Inc()
			return CreatePaymentResult{}, fmt.Errorf("sign callback token: %w", err)
		}
		query.Set("token", token)
	}

	log.Info("calling payment gateway", zap.String("amount", req.Amount.String()), zap.String("currency", req.Currency))
	session, err := u.gateway.CreateSession(ctx, interfaces.SessionRequest{
		Payment:       req,
		ExternalID:    externalID,
		CallbackURL:   u.settings.CallbackURL,
		CallbackQuery: query,
	})
	if err != nil {
		log.Error("payment gateway create failed", zap.Error(err))
		metrics.PaymentCreateTotal.WithLabelValues("gateway_error").Inc()
		return CreatePaymentResult{}, fmt.Errorf("create payment session: %w", err)
	}

	log.Info("payment session created",
		zap.String("state", string(entities.WorkflowStateCreated)),
		zap.String("checkout_url", session.CheckoutURL),
	)
	metrics.PaymentCreateTotal.WithLabelValues("ok").Inc()

	return CreatePaymentResult{
		Redirect:   session.CheckoutURL,
		ExternalID: session.ExternalID,
		Amount:     req.Amount,
		Currency:   req.Currency,
		State:      entities.WorkflowStateCreated,
	}, nil
}

func (u *PaymentWorkflowUseCase) validate(in CreatePaymentInput) (entities.PaymentRequest, int64, error) {
	orderID := strings.TrimSpace(in.OrderID)
	orderNumber, err := parseOrderNumber(orderID)
	if err != nil {
		return entities.PaymentRequest{}, 0, err
	}
	amount, err := u.normalizer.NormalizeAmount(in.Amount)
	if err != nil {
		return entities.PaymentRequest{}, 0, err
	}
	currency, err := u.normalizer.NormalizeCurrency(in.Currency)
	if err != nil {
		return entities.PaymentRequest{}, 0, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = "Order #" + orderID
	}
	return entities.PaymentRequest{
		OrderID:     orderID,
		Amount:      amount,
		Currency:    currency,
		Description: description,
	}, orderNumber, nil
}

// callbackContext is the resolved, best-trust view of one callback.
type callbackContext struct {
	orderID    string
	externalID int64
	currency   string
	amount     *decimal.Decimal
}

const (
	callbackErrMissingOrder      = "missing_order"
	callbackErrMissingExternalID = "missing_external_id"
)

// HandleCallback re-verifies the payment with the gateway and decides the redirect.
// The callback's own claimed result is never used as the outcome.
func (u *PaymentWorkflowUseCase) HandleCallback(ctx context.Context, ev entities.CallbackEvent) entities.CallbackOutcome {
	cc, problem := u.resolveCallback(ctx, ev)
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", cc.orderID),
		zap.Int64("external_id", cc.externalID),
		zap.String("result_hint", string(ev.ResultHint)),
	)

	switch problem {
	case callbackErrMissingOrder:
		log.Warn("callback without usable order reference", zap.String("raw_order_id", ev.OrderID))
		metrics.PaymentCallbackTotal.WithLabelValues(string(entities.WorkflowStateRejected), string(ev.ResultHint)).Inc()
		return entities.CallbackOutcome{
			OrderID:     ev.OrderID,
			State:       entities.WorkflowStateRejected,
			Status:      entities.CollectStatusUnknown,
			RedirectURL: withQuery(u.settings.FailureURL, url.Values{"error": {callbackErrMissingOrder}}),
		}
	case callbackErrMissingExternalID:
		// Without the attempt's externalId there is nothing to verify; the outcome stays unknown.
		log.Warn("reconciliation required: callback without externalId or valid token")
		metrics.PaymentCallbackTotal.WithLabelValues(string(entities.WorkflowStateIndeterminate), string(ev.ResultHint)).Inc()
		return entities.CallbackOutcome{
			OrderID: cc.orderID,
			State:   entities.WorkflowStateIndeterminate,
			Status:  entities.CollectStatusUnknown,
			RedirectURL: withQuery(u.settings.PendingURL, url.Values{
				"order_id": {cc.orderID},
				"pm":       {paymentMethodTag},
				"status":   {"pending"},
				"error":    {callbackErrMissingExternalID},
			}),
		}
	}

	log.Info("callback received", zap.String("state", string(entities.WorkflowStateAwaitingCallback)))
	log.Info("verifying payment status", zap.String("state", string(entities.WorkflowStateVerifying)))
	status := u.verify(ctx, cc)
	if status.Amount != nil {
		cc.amount = status.Amount
	}

	out := entities.CallbackOutcome{
		OrderID:    cc.orderID,
		ExternalID: cc.externalID,
		Status:     status.CollectStatus,
		State:      entities.TerminalStateFor(status.CollectStatus),
	}

	if ev.ResultHint == entities.ResultHintSuccess && status.CollectStatus != entities.CollectStatusSuccess {
		log.Warn("callback claimed success but gateway disagrees", zap.String("collect_status", string(status.CollectStatus)))
	}

	switch out.State {
	case entities.WorkflowStateRecorded:
		rec := u.record(ctx, cc, entities.PaymentRecordStatusCompleted)
		out.InvoiceID, out.PaymentRecordID, out.Duplicate = rec.invoiceID, rec.paymentRecordID, rec.duplicate
		invoiceRef := out.InvoiceID
		if invoiceRef == "" {
			invoiceRef = cc.orderID
		}
		out.RedirectURL = withQuery(u.settings.SuccessURL, url.Values{
			"invoice_id": {invoiceRef},
			"order_id":   {cc.orderID},
			"pm":         {paymentMethodTag},
		})
	case entities.WorkflowStateRejected:
		out.RedirectURL = withQuery(u.settings.FailureURL, url.Values{
			"order_id": {cc.orderID},
			"pm":       {paymentMethodTag},
			"status":   {"failed"},
		})
	default:
		if u.settings.RecordPending {
			rec := u.record(ctx, cc, entities.PaymentRecordStatusPending)
			out.InvoiceID, out.PaymentRecordID, out.Duplicate = rec.invoiceID, rec.paymentRecordID, rec.duplicate
		}
		out.RedirectURL = withQuery(u.settings.PendingURL, url.Values{
			"order_id": {cc.orderID},
			"pm":       {paymentMethodTag},
			"status":   {"pending"},
		})
	}

	log.Info("callback settled",
		zap.String("state", string(out.State)),
		zap.String("collect_status", string(out.Status)),
		zap.String("invoice_id", out.InvoiceID),
		zap.Bool("duplicate", out.Duplicate),
	)
	metrics.PaymentCallbackTotal.WithLabelValues(string(out.State), string(ev.ResultHint)).Inc()
	return out
}

// resolveCallback prefers the signed token over query parameters. The second
// return value names what is missing when the callback cannot be verified.
func (u *PaymentWorkflowUseCase) resolveCallback(ctx context.Context, ev entities.CallbackEvent) (callbackContext, string) {
	log := logger.FromCtx(ctx)
	cc := callbackContext{
		orderID:    strings.TrimSpace(ev.OrderID),
		externalID: ev.ExternalID,
		currency:   ev.Currency,
	}

	if ev.Token != "" && u.signer != nil {
		signed, err := u.signer.Verify(ev.Token)
		if err != nil {
			log.Warn("callback token rejected", zap.Error(err))
		} else {
			if cc.externalID != 0 && cc.externalID != signed.ExternalID {
				log.Warn("callback externalId does not match token",
					zap.Int64("query_external_id", cc.externalID),
					zap.Int64("token_external_id", signed.ExternalID),
				)
			}
			cc.orderID = signed.OrderID
			cc.externalID = signed.ExternalID
			cc.currency = signed.Currency
			amount := signed.Amount
			cc.amount = &amount
		}
	}

	if cc.orderID == "" && cc.externalID > 0 {
		if n := OrderNumberFromExternalID(cc.externalID); n > 0 {
			cc.orderID = strconv.FormatInt(n, 10)
		}
	}
	if cc.orderID == "" {
		return callbackContext{}, callbackErrMissingOrder
	}
	if cc.externalID <= 0 {
		return callbackContext{orderID: cc.orderID}, callbackErrMissingExternalID
	}

	currency, err := u.normalizer.NormalizeCurrency(cc.currency)
	if err != nil {
		log.Warn("callback currency invalid; using default", zap.String("currency", cc.currency))
		currency = u.normalizer.DefaultCurrency()
	}
	cc.currency = currency
	return cc, ""
}

// verify asks the gateway for the authoritative status. Any failure is UNKNOWN, never FAILED.
func (u *PaymentWorkflowUseCase) verify(ctx context.Context, cc callbackContext) entities.VerifiedStatus {
	log := logger.FromCtx(ctx).With(zap.Int64("external_id", cc.externalID))
	if u.gateway == nil {
		log.Error("payment gateway not configured; status unknown")
		return entities.VerifiedStatus{ExternalID: cc.externalID, CollectStatus: entities.CollectStatusUnknown}
	}
	status, err := u.gateway.CheckStatus(ctx, cc.externalID, cc.currency)
	if err != nil {
		log.Warn("payment status check failed; treating as unknown", zap.Error(err))
		return entities.VerifiedStatus{ExternalID: cc.externalID, CollectStatus: entities.CollectStatusUnknown}
	}
	return status
}

type recordResult struct {
	invoiceID       string
	paymentRecordID string
	duplicate       bool
}

func transactionRef(externalID int64, status entities.PaymentRecordStatus) string {
	ref := paymentMethodTag + "-" + strconv.FormatInt(externalID, 10)
	if status == entities.PaymentRecordStatusPending {
		ref += "-pending"
	}
	return ref
}

// record writes the verified payment into the invoicing system. Failures are
// logged for manual reconciliation and never change the redirect decision.
//
// The invoicing system is the record of truth for deduplication: an entry
// carrying the transaction reference is looked up before anything is created,
// so repeated callbacks are safe with or without a ledger.
func (u *PaymentWorkflowUseCase) record(ctx context.Context, cc callbackContext, status entities.PaymentRecordStatus) recordResult {
	ref := transactionRef(cc.externalID, status)
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", cc.orderID),
		zap.String("transaction_ref", ref),
		zap.String("record_status", string(status)),
	)

	if u.invoicing == nil {
		log.Error("reconciliation required: invoicing client not configured")
		return recordResult{}
	}
	if cc.amount == nil {
		log.Error("reconciliation required: paid amount unknown (no gateway amount, no valid callback token)")
		return recordResult{}
	}

	if u.ledger != nil {
		err := u.ledger.Claim(ctx, entities.LedgerEntry{
			TransactionRef: ref,
			OrderID:        cc.orderID,
			ExternalID:     cc.externalID,
			Status:         entities.LedgerStatusClaimed,
		})
		switch {
		case errors.Is(err, entities.ErrTransactionAlreadySeen):
			entry, found, getErr := u.ledger.Get(ctx, ref)
			if getErr != nil {
				log.Warn("ledger lookup failed", zap.Error(getErr))
			}
			if found && entry.Status == entities.LedgerStatusRecorded {
				log.Info("transaction already recorded; skipping invoicing", zap.String("invoice_id", entry.InvoiceID))
			} else {
				log.Error("reconciliation required: transaction claimed by an attempt that never completed",
					zap.String("ledger_status", string(entry.Status)),
				)
			}
			return recordResult{invoiceID: entry.InvoiceID, paymentRecordID: entry.PaymentRecordID, duplicate: true}
		case err != nil:
			log.Warn("ledger claim failed; relying on invoicing lookup", zap.Error(err))
		}
	}

	release := func() {
		if u.ledger == nil {
			return
		}
		if err := u.ledger.Release(ctx, ref); err != nil {
			log.Warn("ledger release failed", zap.Error(err))
		}
	}

	existing, found, err := u.invoicing.FindPaymentByTransactionRef(ctx, ref)
	if err != nil {
		log.Error("reconciliation required: payment lookup failed", zap.Error(err))
		release()
		return recordResult{}
	}
	if found {
		u.markRecorded(ctx, ref, existing.InvoiceID, existing.ID)
		log.Info("transaction already present in invoicing; skipping",
			zap.String("invoice_id", existing.InvoiceID),
			zap.String("payment_id", existing.ID),
		)
		return recordResult{invoiceID: existing.InvoiceID, paymentRecordID: existing.ID, duplicate: true}
	}

	gross := *cc.amount
	net := NetAmount(gross, u.settings.FeeRate)
	input := entities.PaymentRecordInput{
		Amount:         net,
		Currency:       cc.currency,
		TransactionRef: ref,
		Status:         status,
	}

	// A pending entry from an earlier callback is promoted instead of duplicated.
	if status == entities.PaymentRecordStatusCompleted {
		pending, found, err := u.invoicing.FindPaymentByTransactionRef(ctx, transactionRef(cc.externalID, entities.PaymentRecordStatusPending))
		if err != nil {
			log.Error("reconciliation required: pending payment lookup failed", zap.Error(err))
			release()
			return recordResult{}
		}
		if found {
			input.InvoiceID = pending.InvoiceID
			input.Note = fmt.Sprintf("Whish payment confirmed (order %s, externalId %d, gross %s %s)", cc.orderID, cc.externalID, gross.StringFixed(2), cc.currency)
			if err := u.invoicing.UpdatePayment(ctx, pending.ID, input); err != nil {
				log.Error("reconciliation required: pending payment update failed", zap.Error(err), zap.String("payment_id", pending.ID))
				release()
				return recordResult{invoiceID: pending.InvoiceID}
			}
			u.markRecorded(ctx, ref, pending.InvoiceID, pending.ID)
			log.Info("pending payment promoted", zap.String("invoice_id", pending.InvoiceID), zap.String("payment_id", pending.ID))
			return recordResult{invoiceID: pending.InvoiceID, paymentRecordID: pending.ID}
		}
	}

	invoiceID, err := u.ensureInvoice(ctx, cc, gross)
	if err != nil {
		log.Error("reconciliation required: invoice unavailable", zap.Error(err))
		release()
		return recordResult{}
	}
	input.InvoiceID = invoiceID

	var paymentID string
	if status == entities.PaymentRecordStatusPending {
		note := fmt.Sprintf("Awaiting Whish confirmation (order %s, externalId %d)", cc.orderID, cc.externalID)
		paymentID, err = u.invoicing.RecordPendingPayment(ctx, invoiceID, net, cc.currency, ref, note)
	} else {
		input.Note = fmt.Sprintf("Whish payment confirmed (order %s, externalId %d, gross %s %s)", cc.orderID, cc.externalID, gross.StringFixed(2), cc.currency)
		paymentID, err = u.invoicing.RecordPayment(ctx, input)
	}
	if err != nil {
		log.Error("reconciliation required: payment record failed", zap.Error(err), zap.String("invoice_id", invoiceID))
		release()
		return recordResult{invoiceID: invoiceID}
	}

	u.markRecorded(ctx, ref, invoiceID, paymentID)
	log.Info("payment recorded",
		zap.String("invoice_id", invoiceID),
		zap.String("payment_id", paymentID),
		zap.String("gross", gross.StringFixed(2)),
		zap.String("net", net.StringFixed(2)),
	)
	return recordResult{invoiceID: invoiceID, paymentRecordID: paymentID}
}

func (u *PaymentWorkflowUseCase) markRecorded(ctx context.Context, ref, invoiceID, paymentID string) {
	if u.ledger == nil {
		return
	}
	if err := u.ledger.MarkRecorded(ctx, ref, invoiceID, paymentID); err != nil {
		logger.FromCtx(ctx).Warn("ledger mark recorded failed", zap.Error(err), zap.String("transaction_ref", ref))
	}
}

// ensureInvoice uses the order's invoice when it exists, then a draft an earlier
// callback created for the order, and only then creates a new draft.
func (u *PaymentWorkflowUseCase) ensureInvoice(ctx context.Context, cc callbackContext, gross decimal.Decimal) (string, error) {
	err := u.invoicing.EnsureDraftInvoice(ctx, cc.orderID)
	if err == nil {
		return cc.orderID, nil
	}
	if !errors.Is(err, entities.ErrInvoiceNotFound) {
		return "", err
	}
	id, found, err := u.invoicing.FindInvoiceByOrderRef(ctx, cc.orderID)
	if err != nil {
		return "", err
	}
	if found {
		return id, nil
	}
	return u.invoicing.CreateDraftInvoice(ctx, entities.DraftInvoice{
		OrderID:  cc.orderID,
		Currency: cc.currency,
		Total:    gross,
		Notes:    fmt.Sprintf("Created automatically after Whish Pay transaction (Order %s)", cc.orderID),
	})
}

// CheckStatus is the manual status passthrough. The externalId returned by
// CreatePayment is required: an order can have several attempts.
func (u *PaymentWorkflowUseCase) CheckStatus(ctx context.Context, q StatusQuery) (entities.VerifiedStatus, error) {
	externalID := q.ExternalID
	if externalID <= 0 {
		return entities.VerifiedStatus{}, entities.NewValidationError("externalId", "is required; use the externalId returned when the payment was created")
	}
	if strings.TrimSpace(q.OrderID) != "" {
		n, err := parseOrderNumber(q.OrderID)
		if err != nil {
			return entities.VerifiedStatus{}, err
		}
		if OrderNumberFromExternalID(externalID) != n {
			return entities.VerifiedStatus{}, entities.NewValidationError("externalId", "does not belong to orderId")
		}
	}
	currency, err := u.normalizer.NormalizeCurrency(q.Currency)
	if err != nil {
		return entities.VerifiedStatus{}, err
	}
	if u.gateway == nil {
		return entities.VerifiedStatus{}, ErrGatewayNotConfigured
	}
	return u.gateway.CheckStatus(ctx, externalID, currency)
}

func (u *PaymentWorkflowUseCase) Balance(ctx context.Context) (json.RawMessage, error) {
	if u.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	return u.gateway.Balance(ctx)
}

// withQuery appends params to a redirect base URL, keeping any query it already has.
func withQuery(base string, params url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		return base + sep + params.Encode()
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
