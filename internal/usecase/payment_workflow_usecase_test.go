package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"payment_relay/internal/adapter/persistence/repository"
	"payment_relay/internal/domain/entities"
	"payment_relay/internal/logger"
	"payment_relay/internal/usecase/interfaces"
	mock_interfaces "payment_relay/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type workflowMocks struct {
	gateway   *mock_interfaces.MockIPaymentGateway
	invoicing *mock_interfaces.MockIInvoicingClient
	ledger    *mock_interfaces.MockIRecordingLedger
	signer    *mock_interfaces.MockICallbackTokenSigner
}

func testSettings() WorkflowSettings {
	return WorkflowSettings{
		CallbackURL:     "https://relay.example.com/whish/callback",
		SuccessURL:      "https://shop.example.com/thanks",
		FailureURL:      "https://shop.example.com/failed",
		PendingURL:      "https://shop.example.com/pending?src=whish",
		FeeRate:         decimal.RequireFromString("0.01"),
		DefaultCurrency: "LBP",
	}
}

func newWorkflow(t *testing.T, settings WorkflowSettings) (*PaymentWorkflowUseCase, workflowMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := workflowMocks{
		gateway:   mock_interfaces.NewMockIPaymentGateway(ctrl),
		invoicing: mock_interfaces.NewMockIInvoicingClient(ctrl),
		ledger:    mock_interfaces.NewMockIRecordingLedger(ctrl),
		signer:    mock_interfaces.NewMockICallbackTokenSigner(ctrl),
	}
	uc := NewPaymentWorkflowUseCase(m.gateway, m.invoicing, m.ledger, m.signer, settings)
	uc.disambiguator = func() int64 { return 7 }
	return uc, m
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.L()
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(prev) })
	return logs
}

func redirectQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("invalid redirect %q: %v", raw, err)
	}
	return u.Query()
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPaymentWorkflow_CreatePayment_Validation(t *testing.T) {
	cases := []struct {
		name  string
		input CreatePaymentInput
		field string
	}{
		{"missing order", CreatePaymentInput{Amount: "10"}, "orderId"},
		{"non numeric order", CreatePaymentInput{OrderID: "abc", Amount: "10"}, "orderId"},
		{"missing amount", CreatePaymentInput{OrderID: "42"}, "amount"},
		{"zero amount", CreatePaymentInput{OrderID: "42", Amount: "0"}, "amount"},
		{"negative amount", CreatePaymentInput{OrderID: "42", Amount: "-5"}, "amount"},
		{"garbage amount", CreatePaymentInput{OrderID: "42", Amount: "ten"}, "amount"},
		{"bad currency", CreatePaymentInput{OrderID: "42", Amount: "10", Currency: "dollars"}, "currency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// no expectations: any gateway or signer call fails the test
			uc, _ := newWorkflow(t, testSettings())

			_, err := uc.CreatePayment(context.Background(), tc.input)
			var verr *entities.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, verr.Field)
			}
		})
	}
}

func TestPaymentWorkflow_CreatePayment_Success(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.signer.EXPECT().Sign(gomock.Any()).DoAndReturn(func(cc entities.CallbackContext) (string, error) {
		if cc.OrderID != "42" || cc.ExternalID != 4200007 || cc.Currency != "LBP" {
			t.Fatalf("unexpected token context: %+v", cc)
		}
		if !cc.Amount.Equal(decimal.NewFromInt(1000)) {
			t.Fatalf("expected amount 1000, got %s", cc.Amount)
		}
		return "tok", nil
	})
	m.gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req interfaces.SessionRequest) (entities.GatewaySession, error) {
		if req.ExternalID != 4200007 {
			t.Fatalf("unexpected externalId %d", req.ExternalID)
		}
		if !req.Payment.Amount.Equal(decimal.NewFromInt(1000)) || req.Payment.Currency != "LBP" {
			t.Fatalf("unexpected payment: %+v", req.Payment)
		}
		if req.Payment.Description != "Order #42" {
			t.Fatalf("unexpected description %q", req.Payment.Description)
		}
		if req.CallbackURL != "https://relay.example.com/whish/callback" || req.CallbackQuery.Get("token") != "tok" {
			t.Fatalf("unexpected callback: %s %v", req.CallbackURL, req.CallbackQuery)
		}
		return entities.GatewaySession{
			ExternalID:  req.ExternalID,
			Amount:      req.Payment.Amount,
			Currency:    req.Payment.Currency,
			CheckoutURL: "https://pay.whish.money/checkout/abc",
		}, nil
	})

	res, err := uc.CreatePayment(context.Background(), CreatePaymentInput{OrderID: "42", Amount: "1,000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Redirect != "https://pay.whish.money/checkout/abc" {
		t.Fatalf("unexpected redirect %s", res.Redirect)
	}
	if res.State != entities.WorkflowStateCreated || res.ExternalID != 4200007 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPaymentWorkflow_CreatePayment_GatewayError(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.signer.EXPECT().Sign(gomock.Any()).Return("tok", nil)
	m.gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		Return(entities.GatewaySession{}, &entities.GatewayError{Op: "create", Reason: entities.GatewayReasonRejected, StatusCode: 200})

	_, err := uc.CreatePayment(context.Background(), CreatePaymentInput{OrderID: "42", Amount: "10", Currency: "usd"})
	reason, ok := entities.GatewayReason(err)
	if !ok || reason != entities.GatewayReasonRejected {
		t.Fatalf("expected rejected gateway error, got %v", err)
	}
}

func TestPaymentWorkflow_CreatePayment_SignerError(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.signer.EXPECT().Sign(gomock.Any()).Return("", errors.New("no key"))

	_, err := uc.CreatePayment(context.Background(), CreatePaymentInput{OrderID: "42", Amount: "10"})
	if err == nil || !strings.Contains(err.Error(), "no key") {
		t.Fatalf("expected signer error, got %v", err)
	}
}

func TestPaymentWorkflow_CreatePayment_GatewayNotConfigured(t *testing.T) {
	uc := NewPaymentWorkflowUseCase(nil, nil, nil, nil, testSettings())
	_, err := uc.CreatePayment(context.Background(), CreatePaymentInput{OrderID: "42", Amount: "10"})
	if !errors.Is(err, ErrGatewayNotConfigured) {
		t.Fatalf("expected ErrGatewayNotConfigured, got %v", err)
	}
}

func TestPaymentWorkflow_HandleCallback_ForgedSuccess(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "LBP").
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusFailed}, nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{
		OrderID:    "42",
		ExternalID: 4200007,
		ResultHint: entities.ResultHintSuccess,
	})
	if out.State != entities.WorkflowStateRejected {
		t.Fatalf("expected REJECTED, got %s", out.State)
	}
	if !strings.HasPrefix(out.RedirectURL, "https://shop.example.com/failed?") {
		t.Fatalf("expected failure redirect, got %s", out.RedirectURL)
	}
	q := redirectQuery(t, out.RedirectURL)
	if q.Get("order_id") != "42" || q.Get("status") != "failed" || q.Get("pm") != "whish" {
		t.Fatalf("unexpected failure query: %v", q)
	}
}

func TestPaymentWorkflow_HandleCallback_Pending(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "LBP").
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusPending}, nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{
		OrderID:    "42",
		ExternalID: 4200007,
		ResultHint: entities.ResultHintSuccess,
	})
	if out.State != entities.WorkflowStateIndeterminate {
		t.Fatalf("expected INDETERMINATE, got %s", out.State)
	}
	q := redirectQuery(t, out.RedirectURL)
	if q.Get("status") != "pending" || q.Get("src") != "whish" || q.Get("order_id") != "42" {
		t.Fatalf("unexpected pending redirect: %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_GatewayErrorIsIndeterminate(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{}, &entities.GatewayError{Op: "status", Reason: entities.GatewayReasonNetwork})

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007, ResultHint: entities.ResultHintFailure})
	if out.State != entities.WorkflowStateIndeterminate || out.Status != entities.CollectStatusUnknown {
		t.Fatalf("expected INDETERMINATE/UNKNOWN, got %s/%s", out.State, out.Status)
	}
	if !strings.HasPrefix(out.RedirectURL, "https://shop.example.com/pending") {
		t.Fatalf("expected pending redirect, got %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_MissingOrder(t *testing.T) {
	uc, _ := newWorkflow(t, testSettings())

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{ResultHint: entities.ResultHintSuccess})
	q := redirectQuery(t, out.RedirectURL)
	if !strings.HasPrefix(out.RedirectURL, "https://shop.example.com/failed") || q.Get("error") != "missing_order" {
		t.Fatalf("expected missing_order failure redirect, got %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_SuccessRecordsNetAmount(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())
	ctx := context.Background()

	gomock.InOrder(
		m.signer.EXPECT().Verify("tok").Return(entities.CallbackContext{
			OrderID: "42", ExternalID: 4200007, Amount: decimal.NewFromInt(1000), Currency: "LBP",
		}, nil),
		m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "LBP").
			Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess}, nil),
		m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.LedgerEntry) error {
			if e.TransactionRef != "whish-4200007" || e.OrderID != "42" || e.Status != entities.LedgerStatusClaimed {
				t.Fatalf("unexpected claim: %+v", e)
			}
			return nil
		}),
		m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), "whish-4200007").Return(entities.InvoicePayment{}, false, nil),
		m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), "whish-4200007-pending").Return(entities.InvoicePayment{}, false, nil),
		m.invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(nil),
		m.invoicing.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in entities.PaymentRecordInput) (string, error) {
			if !in.Amount.Equal(decimal.RequireFromString("990.10")) {
				t.Fatalf("expected net 990.10, got %s", in.Amount)
			}
			if in.InvoiceID != "42" || in.Currency != "LBP" || in.TransactionRef != "whish-4200007" {
				t.Fatalf("unexpected record input: %+v", in)
			}
			if in.Status != entities.PaymentRecordStatusCompleted {
				t.Fatalf("expected completed status, got %s", in.Status)
			}
			return "pay-1", nil
		}),
		m.ledger.EXPECT().MarkRecorded(gomock.Any(), "whish-4200007", "42", "pay-1").Return(nil),
	)

	out := uc.HandleCallback(ctx, entities.CallbackEvent{
		OrderID:    "42",
		ExternalID: 4200007,
		ResultHint: entities.ResultHintSuccess,
		Token:      "tok",
	})
	if out.State != entities.WorkflowStateRecorded || out.PaymentRecordID != "pay-1" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	q := redirectQuery(t, out.RedirectURL)
	if q.Get("invoice_id") != "42" || q.Get("order_id") != "42" || q.Get("pm") != "whish" {
		t.Fatalf("unexpected success redirect: %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_CreatesDraftInvoiceWhenMissing(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "USD").
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("101")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), gomock.Any()).Return(entities.InvoicePayment{}, false, nil).Times(2)
	m.invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(entities.ErrInvoiceNotFound)
	m.invoicing.EXPECT().FindInvoiceByOrderRef(gomock.Any(), "42").Return("", false, nil)
	m.invoicing.EXPECT().CreateDraftInvoice(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv entities.DraftInvoice) (string, error) {
		if inv.OrderID != "42" || inv.Currency != "USD" || !inv.Total.Equal(decimal.NewFromInt(101)) {
			t.Fatalf("unexpected draft invoice: %+v", inv)
		}
		return "inv-9", nil
	})
	m.invoicing.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in entities.PaymentRecordInput) (string, error) {
		if in.InvoiceID != "inv-9" || !in.Amount.Equal(decimal.NewFromInt(100)) {
			t.Fatalf("unexpected record input: %+v", in)
		}
		return "pay-2", nil
	})
	m.ledger.EXPECT().MarkRecorded(gomock.Any(), "whish-4200007", "inv-9", "pay-2").Return(nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007, Currency: "usd"})
	if q := redirectQuery(t, out.RedirectURL); q.Get("invoice_id") != "inv-9" {
		t.Fatalf("expected invoice inv-9 in redirect, got %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_InvoicingFailureStillSucceeds(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("50")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), gomock.Any()).Return(entities.InvoicePayment{}, false, nil).Times(2)
	m.invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(nil)
	m.invoicing.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).
		Return("", &entities.InvoicingError{Op: "create payment", StatusCode: 500})
	m.ledger.EXPECT().Release(gomock.Any(), "whish-4200007").Return(nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if out.State != entities.WorkflowStateRecorded {
		t.Fatalf("expected RECORDED, got %s", out.State)
	}
	if !strings.HasPrefix(out.RedirectURL, "https://shop.example.com/thanks?") {
		t.Fatalf("expected success redirect, got %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_DuplicateIsIdempotent(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("50")}, nil).
		Times(2)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), gomock.Any()).Return(entities.InvoicePayment{}, false, nil).Times(2)
	m.invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(nil).Times(1)
	m.invoicing.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).Return("pay-1", nil).Times(1)
	m.ledger.EXPECT().MarkRecorded(gomock.Any(), "whish-4200007", "42", "pay-1").Return(nil)

	ev := entities.CallbackEvent{OrderID: "42", ExternalID: 4200007, ResultHint: entities.ResultHintSuccess}
	first := uc.HandleCallback(context.Background(), ev)

	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(entities.ErrTransactionAlreadySeen)
	m.ledger.EXPECT().Get(gomock.Any(), "whish-4200007").Return(entities.LedgerEntry{
		TransactionRef:  "whish-4200007",
		Status:          entities.LedgerStatusRecorded,
		InvoiceID:       "42",
		PaymentRecordID: "pay-1",
	}, true, nil)

	second := uc.HandleCallback(context.Background(), ev)
	if !second.Duplicate || second.PaymentRecordID != "pay-1" {
		t.Fatalf("expected duplicate outcome, got %+v", second)
	}
	if first.RedirectURL != second.RedirectURL {
		t.Fatalf("expected same redirect, got %s and %s", first.RedirectURL, second.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_DuplicateWithoutLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	invoicing := mock_interfaces.NewMockIInvoicingClient(ctrl)
	uc := NewPaymentWorkflowUseCase(gateway, invoicing, repository.NoopLedger{}, nil, testSettings())

	// in-memory view of the invoicing system
	payments := map[string]entities.InvoicePayment{}
	invoicesByOrder := map[string]string{}
	drafts := 0

	gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "LBP").
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("50")}, nil).
		Times(2)
	invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, ref string) (entities.InvoicePayment, bool, error) {
		p, ok := payments[ref]
		return p, ok, nil
	}).AnyTimes()
	invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(entities.ErrInvoiceNotFound).AnyTimes()
	invoicing.EXPECT().FindInvoiceByOrderRef(gomock.Any(), "42").DoAndReturn(func(_ context.Context, orderRef string) (string, bool, error) {
		id, ok := invoicesByOrder[orderRef]
		return id, ok, nil
	}).AnyTimes()
	invoicing.EXPECT().CreateDraftInvoice(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv entities.DraftInvoice) (string, error) {
		drafts++
		id := "inv-" + strconv.Itoa(drafts)
		invoicesByOrder[inv.OrderID] = id
		return id, nil
	}).AnyTimes()
	invoicing.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in entities.PaymentRecordInput) (string, error) {
		id := "pay-" + strconv.Itoa(len(payments)+1)
		payments[in.TransactionRef] = entities.InvoicePayment{ID: id, InvoiceID: in.InvoiceID, TransactionRef: in.TransactionRef, Status: in.Status}
		return id, nil
	}).AnyTimes()

	ev := entities.CallbackEvent{OrderID: "42", ExternalID: 4200007, ResultHint: entities.ResultHintSuccess}
	first := uc.HandleCallback(context.Background(), ev)
	second := uc.HandleCallback(context.Background(), ev)

	if drafts != 1 || len(payments) != 1 {
		t.Fatalf("expected one draft and one payment, got drafts=%d payments=%d", drafts, len(payments))
	}
	if first.Duplicate || !second.Duplicate {
		t.Fatalf("expected only the second callback to be a duplicate: %+v %+v", first, second)
	}
	if second.InvoiceID != "inv-1" || second.PaymentRecordID != first.PaymentRecordID {
		t.Fatalf("expected the first recording to be reused, got %+v", second)
	}
	if first.RedirectURL != second.RedirectURL {
		t.Fatalf("expected same redirect, got %s and %s", first.RedirectURL, second.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_ReusesDraftCreatedForOrder(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("101")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), gomock.Any()).Return(entities.InvoicePayment{}, false, nil).Times(2)
	m.invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(entities.ErrInvoiceNotFound)
	m.invoicing.EXPECT().FindInvoiceByOrderRef(gomock.Any(), "42").Return("inv-9", true, nil)
	m.invoicing.EXPECT().CreateDraftInvoice(gomock.Any(), gomock.Any()).Times(0)
	m.invoicing.EXPECT().RecordPayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in entities.PaymentRecordInput) (string, error) {
		if in.InvoiceID != "inv-9" {
			t.Fatalf("expected existing draft inv-9, got %s", in.InvoiceID)
		}
		return "pay-3", nil
	})
	m.ledger.EXPECT().MarkRecorded(gomock.Any(), "whish-4200007", "inv-9", "pay-3").Return(nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if out.InvoiceID != "inv-9" || out.PaymentRecordID != "pay-3" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestPaymentWorkflow_HandleCallback_PaymentLookupFailureCreatesNothing(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("50")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), "whish-4200007").
		Return(entities.InvoicePayment{}, false, &entities.InvoicingError{Op: "find_payment", StatusCode: 503})
	m.ledger.EXPECT().Release(gomock.Any(), "whish-4200007").Return(nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if out.State != entities.WorkflowStateRecorded || !strings.HasPrefix(out.RedirectURL, "https://shop.example.com/thanks?") {
		t.Fatalf("expected success redirect, got %+v", out)
	}
}

func TestPaymentWorkflow_HandleCallback_StaleClaimNeedsReconciliation(t *testing.T) {
	logs := observeLogs(t)
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("50")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(entities.ErrTransactionAlreadySeen)
	m.ledger.EXPECT().Get(gomock.Any(), "whish-4200007").Return(entities.LedgerEntry{
		TransactionRef: "whish-4200007",
		Status:         entities.LedgerStatusClaimed,
	}, true, nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if !out.Duplicate {
		t.Fatalf("expected duplicate outcome, got %+v", out)
	}

	flagged := logs.FilterLevelExact(zapcore.ErrorLevel).FilterMessageSnippet("reconciliation required").All()
	if len(flagged) != 1 {
		t.Fatalf("expected one reconciliation error, got %d", len(flagged))
	}
	if got := flagged[0].ContextMap()["ledger_status"]; got != string(entities.LedgerStatusClaimed) {
		t.Fatalf("expected ledger_status claimed, got %v", got)
	}
}

func TestPaymentWorkflow_HandleCallback_MissingExternalID(t *testing.T) {
	// no gateway expectations: an unverifiable callback must not query anything
	uc, _ := newWorkflow(t, testSettings())

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ResultHint: entities.ResultHintSuccess})
	if out.State != entities.WorkflowStateIndeterminate || out.Status != entities.CollectStatusUnknown {
		t.Fatalf("expected INDETERMINATE/UNKNOWN, got %s/%s", out.State, out.Status)
	}
	q := redirectQuery(t, out.RedirectURL)
	if !strings.HasPrefix(out.RedirectURL, "https://shop.example.com/pending") || q.Get("error") != "missing_external_id" || q.Get("order_id") != "42" {
		t.Fatalf("unexpected redirect %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_LogsOrderIDOnce(t *testing.T) {
	logs := observeLogs(t)
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusFailed}, nil)

	uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: " 42 ", ExternalID: 4200007})

	settled := logs.FilterMessage("callback settled").All()
	if len(settled) != 1 {
		t.Fatalf("expected one settled entry, got %d", len(settled))
	}
	count := 0
	for _, f := range settled[0].Context {
		if f.Key == "order_id" {
			count++
			if f.String != "42" {
				t.Fatalf("expected trimmed order id, got %q", f.String)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected order_id once, got %d", count)
	}
}

func TestPaymentWorkflow_HandleCallback_UnknownAmountSkipsInvoicing(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess}, nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if out.State != entities.WorkflowStateRecorded || out.PaymentRecordID != "" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if q := redirectQuery(t, out.RedirectURL); q.Get("invoice_id") != "42" {
		t.Fatalf("expected order id as invoice fallback, got %s", out.RedirectURL)
	}
}

func TestPaymentWorkflow_HandleCallback_TokenTakesPrecedence(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.signer.EXPECT().Verify("tok").Return(entities.CallbackContext{
		OrderID: "42", ExternalID: 4200007, Amount: decimal.NewFromInt(10), Currency: "USD",
	}, nil)
	m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "USD").
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusFailed}, nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{
		OrderID:    "43",
		ExternalID: 4300001,
		Currency:   "LBP",
		Token:      "tok",
		ResultHint: entities.ResultHintSuccess,
	})
	if out.OrderID != "42" || out.ExternalID != 4200007 {
		t.Fatalf("expected token values, got %+v", out)
	}
}

func TestPaymentWorkflow_HandleCallback_InvalidTokenFallsBackToQuery(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.signer.EXPECT().Verify("bad").Return(entities.CallbackContext{}, errors.New("signature is invalid"))
	m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4300001), "LBP").
		Return(entities.VerifiedStatus{ExternalID: 4300001, CollectStatus: entities.CollectStatusFailed}, nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "43", ExternalID: 4300001, Token: "bad"})
	if out.State != entities.WorkflowStateRejected {
		t.Fatalf("expected REJECTED, got %s", out.State)
	}
}

func TestPaymentWorkflow_HandleCallback_RecordsPendingEntry(t *testing.T) {
	settings := testSettings()
	settings.RecordPending = true
	uc, m := newWorkflow(t, settings)

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusPending, Amount: decPtr("202")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e entities.LedgerEntry) error {
		if e.TransactionRef != "whish-4200007-pending" {
			t.Fatalf("unexpected ref %s", e.TransactionRef)
		}
		return nil
	})
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), "whish-4200007-pending").Return(entities.InvoicePayment{}, false, nil)
	m.invoicing.EXPECT().EnsureDraftInvoice(gomock.Any(), "42").Return(nil)
	m.invoicing.EXPECT().RecordPendingPayment(gomock.Any(), "42", gomock.Any(), "LBP", "whish-4200007-pending", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, amount decimal.Decimal, _, _, _ string) (string, error) {
			if !amount.Equal(decimal.NewFromInt(200)) {
				t.Fatalf("expected net 200, got %s", amount)
			}
			return "pay-p", nil
		})
	m.ledger.EXPECT().MarkRecorded(gomock.Any(), "whish-4200007-pending", "42", "pay-p").Return(nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if out.State != entities.WorkflowStateIndeterminate || out.PaymentRecordID != "pay-p" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestPaymentWorkflow_HandleCallback_PromotesPendingEntry(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())

	m.gateway.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusSuccess, Amount: decPtr("202")}, nil)
	m.ledger.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), "whish-4200007").Return(entities.InvoicePayment{}, false, nil)
	m.invoicing.EXPECT().FindPaymentByTransactionRef(gomock.Any(), "whish-4200007-pending").Return(entities.InvoicePayment{
		ID:             "pay-p",
		InvoiceID:      "42",
		TransactionRef: "whish-4200007-pending",
		Status:         entities.PaymentRecordStatusPending,
	}, true, nil)
	m.invoicing.EXPECT().UpdatePayment(gomock.Any(), "pay-p", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, in entities.PaymentRecordInput) error {
		if in.Status != entities.PaymentRecordStatusCompleted || !in.Amount.Equal(decimal.NewFromInt(200)) {
			t.Fatalf("unexpected update input: %+v", in)
		}
		return nil
	})
	m.ledger.EXPECT().MarkRecorded(gomock.Any(), "whish-4200007", "42", "pay-p").Return(nil)

	out := uc.HandleCallback(context.Background(), entities.CallbackEvent{OrderID: "42", ExternalID: 4200007})
	if out.PaymentRecordID != "pay-p" || out.InvoiceID != "42" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestPaymentWorkflow_CheckStatus(t *testing.T) {
	t.Run("queries the externalId of the attempt", func(t *testing.T) {
		uc, m := newWorkflow(t, testSettings())
		m.gateway.EXPECT().CheckStatus(gomock.Any(), int64(4200007), "LBP").
			Return(entities.VerifiedStatus{ExternalID: 4200007, CollectStatus: entities.CollectStatusPending}, nil)

		st, err := uc.CheckStatus(context.Background(), StatusQuery{OrderID: "42", ExternalID: 4200007})
		if err != nil || st.CollectStatus != entities.CollectStatusPending {
			t.Fatalf("unexpected result: %+v %v", st, err)
		}
	})

	t.Run("externalId created for the order is the one queried", func(t *testing.T) {
		uc, m := newWorkflow(t, testSettings())
		m.signer.EXPECT().Sign(gomock.Any()).Return("tok", nil)
		m.gateway.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, req interfaces.SessionRequest) (entities.GatewaySession, error) {
			return entities.GatewaySession{ExternalID: req.ExternalID, CheckoutURL: "https://pay.whish.money/checkout/abc"}, nil
		})
		created, err := uc.CreatePayment(context.Background(), CreatePaymentInput{OrderID: "42", Amount: "10"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		m.gateway.EXPECT().CheckStatus(gomock.Any(), created.ExternalID, "LBP").
			Return(entities.VerifiedStatus{ExternalID: created.ExternalID, CollectStatus: entities.CollectStatusSuccess}, nil)
		st, err := uc.CheckStatus(context.Background(), StatusQuery{OrderID: "42", ExternalID: created.ExternalID})
		if err != nil || st.ExternalID != 4200007 {
			t.Fatalf("unexpected result: %+v %v", st, err)
		}
	})

	cases := []struct {
		name  string
		query StatusQuery
		field string
	}{
		{"order id alone is not enough", StatusQuery{OrderID: "42"}, "externalId"},
		{"invalid order", StatusQuery{OrderID: "x", ExternalID: 4200007}, "orderId"},
		{"externalId of another order", StatusQuery{OrderID: "43", ExternalID: 4200007}, "externalId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// no gateway expectations: the query must be rejected before any call
			uc, _ := newWorkflow(t, testSettings())
			_, err := uc.CheckStatus(context.Background(), tc.query)
			var verr *entities.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestPaymentWorkflow_Balance(t *testing.T) {
	uc, m := newWorkflow(t, testSettings())
	m.gateway.EXPECT().Balance(gomock.Any()).Return(json.RawMessage(`{"status":true}`), nil)

	raw, err := uc.Balance(context.Background())
	if err != nil || string(raw) != `{"status":true}` {
		t.Fatalf("unexpected balance: %s %v", raw, err)
	}
}

func TestWithQuery(t *testing.T) {
	got := withQuery("https://shop.example.com/pending?src=whish", url.Values{"status": {"pending"}})
	q := redirectQuery(t, got)
	if q.Get("src") != "whish" || q.Get("status") != "pending" {
		t.Fatalf("unexpected url %s", got)
	}
}
