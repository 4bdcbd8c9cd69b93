package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
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
	opCreate  = "create"
	opStatus  = "status"
	opBalance = "balance"

	maxLoggedBody = 400
)

var ErrWhishGatewayNotConfigured = errors.New("whish gateway not configured")

// WhishGateway talks to the Whish Money collect API.
type WhishGateway struct {
	baseURL      string
	channel      string
	secret       string
	websiteURL   string
	hostRewrites map[string]string
	client       *http.Client
}

var _ interfaces.IPaymentGateway = (*WhishGateway)(nil)

func NewWhishGateway(cfg config.GatewayConfig, timeout time.Duration) (*WhishGateway, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrWhishGatewayNotConfigured
	}
	if cfg.Channel == "" || cfg.Secret == "" {
		logger.L().Warn("whish credentials missing; gateway calls will be rejected")
	}
	logger.L().Info("whish gateway initialized", zap.String("base_url", cfg.BaseURL))
	return &WhishGateway{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		channel:      cfg.Channel,
		secret:       cfg.Secret,
		websiteURL:   cfg.WebsiteURL,
		hostRewrites: cfg.CheckoutHostRewrites,
		client:       &http.Client{Timeout: timeout},
	}, nil
}

type createSessionPayload struct {
	Amount             json.Number `json:"amount"`
	Currency           string      `json:"currency"`
	Invoice            string      `json:"invoice"`
	ExternalID         int64       `json:"externalId"`
	SuccessCallbackURL string      `json:"successCallbackUrl"`
	FailureCallbackURL string      `json:"failureCallbackUrl"`
	SuccessRedirectURL string      `json:"successRedirectUrl"`
	FailureRedirectURL string      `json:"failureRedirectUrl"`
}

type whishEnvelope struct {
	Status bool            `json:"status"`
	Code   json.RawMessage `json:"code,omitempty"`
	Dialog json.RawMessage `json:"dialog,omitempty"`
	Data   json.RawMessage `json:"data"`
}

type collectURLData struct {
	CollectURL string `json:"collectUrl"`
}

type collectStatusData struct {
	CollectStatus    string      `json:"collectStatus"`
	PayerPhoneNumber string      `json:"payerPhoneNumber"`
	Amount           json.Number `json:"amount,omitempty"`
}

func (g *WhishGateway) CreateSession(ctx context.Context, req interfaces.SessionRequest) (entities.GatewaySession, error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", req.Payment.OrderID), zap.Int64("external_id", req.ExternalID))

	payload := createSessionPayload{
		Amount:             json.Number(req.Payment.Amount.String()),
		Currency:           req.Payment.Currency,
		Invoice:            req.Payment.Description,
		ExternalID:         req.ExternalID,
		SuccessCallbackURL: callbackURL(req, "success", "gateway"),
		FailureCallbackURL: callbackURL(req, "failure", "gateway"),
		SuccessRedirectURL: callbackURL(req, "success", "browser"),
		FailureRedirectURL: callbackURL(req, "failure", "browser"),
	}
	log.Info("whish create start", zap.String("amount", string(payload.Amount)), zap.String("currency", payload.Currency))

	env, err := g.do(ctx, opCreate, http.MethodPost, "/payment/whish", payload)
	if err != nil {
		log.Error("whish create failed", zap.Error(err))
		return entities.GatewaySession{}, err
	}

	var data collectURLData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return entities.GatewaySession{}, &entities.GatewayError{Op: opCreate, Reason: entities.GatewayReasonInvalidResponse, Body: truncate(string(env.Data)), Err: err}
	}
	if strings.TrimSpace(data.CollectURL) == "" {
		return entities.GatewaySession{}, &entities.GatewayError{Op: opCreate, Reason: entities.GatewayReasonRejected, Body: truncate(string(env.Data))}
	}

	checkout := g.rewriteCheckoutHost(data.CollectURL)
	log.Info("whish create success", zap.String("collect_url", checkout))
	return entities.GatewaySession{
		ExternalID:  req.ExternalID,
		Amount:      req.Payment.Amount,
		Currency:    req.Payment.Currency,
		CheckoutURL: checkout,
	}, nil
}

func (g *WhishGateway) CheckStatus(ctx context.Context, externalID int64, currency string) (entities.VerifiedStatus, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("external_id", externalID))

	body := map[string]any{"currency": currency, "externalId": externalID}
	env, err := g.do(ctx, opStatus, http.MethodPost, "/payment/collect/status", body)
	if err != nil {
		log.Warn("whish status failed", zap.Error(err))
		return entities.VerifiedStatus{}, err
	}

	var data collectStatusData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return entities.VerifiedStatus{}, &entities.GatewayError{Op: opStatus, Reason: entities.GatewayReasonInvalidResponse, Body: truncate(string(env.Data)), Err: err}
	}

	out := entities.VerifiedStatus{
		ExternalID:    externalID,
		CollectStatus: mapCollectStatus(data.CollectStatus),
		PayerPhone:    data.PayerPhoneNumber,
		Raw:           env.Data,
	}
	if data.Amount != "" {
		if amount, err := decimal.NewFromString(data.Amount.String()); err == nil && amount.IsPositive() {
			out.Amount = &amount
		}
	}
	log.Info("whish status", zap.String("collect_status", data.CollectStatus), zap.String("mapped", string(out.CollectStatus)))
	return out, nil
}

// Balance returns the raw account balance document.
func (g *WhishGateway) Balance(ctx context.Context) (json.RawMessage, error) {
	raw, _, err := g.roundTrip(ctx, opBalance, http.MethodGet, "/payment/account/balance", nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// mapCollectStatus maps the gateway verdict; anything unrecognized is PENDING.
func mapCollectStatus(raw string) entities.CollectStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "success":
		return entities.CollectStatusSuccess
	case "failed", "failure":
		return entities.CollectStatusFailed
	default:
		return entities.CollectStatusPending
	}
}

// do performs a call whose response must be the standard {status, data} envelope with status=true.
func (g *WhishGateway) do(ctx context.Context, op, method, path string, body any) (whishEnvelope, error) {
	raw, start, err := g.roundTrip(ctx, op, method, path, body)
	if err != nil {
		return whishEnvelope{}, err
	}
	var env whishEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		observe(op, entities.GatewayReasonInvalidResponse, start)
		return whishEnvelope{}, &entities.GatewayError{Op: op, Reason: entities.GatewayReasonInvalidResponse, Body: truncate(string(raw)), Err: err}
	}
	if !env.Status {
		observe(op, entities.GatewayReasonRejected, start)
		return whishEnvelope{}, &entities.GatewayError{Op: op, Reason: entities.GatewayReasonRejected, Body: truncate(string(raw))}
	}
	return env, nil
}

// roundTrip sends the request and returns a JSON body from a 2xx response.
func (g *WhishGateway) roundTrip(ctx context.Context, op, method, path string, body any) (json.RawMessage, time.Time, error) {
	start := time.Now()
	if g == nil || g.client == nil {
		return nil, start, ErrWhishGatewayNotConfigured
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, start, fmt.Errorf("marshal %s payload: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, start, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("channel", g.channel)
	req.Header.Set("secret", g.secret)
	req.Header.Set("websiteurl", g.websiteURL)

	resp, err := g.client.Do(req)
	if err != nil {
		observe(op, entities.GatewayReasonNetwork, start)
		return nil, start, &entities.GatewayError{Op: op, Reason: entities.GatewayReasonNetwork, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		observe(op, entities.GatewayReasonNetwork, start)
		return nil, start, &entities.GatewayError{Op: op, Reason: entities.GatewayReasonNetwork, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observe(op, entities.GatewayReasonRejected, start)
		return nil, start, &entities.GatewayError{Op: op, Reason: entities.GatewayReasonRejected, StatusCode: resp.StatusCode, Body: truncate(string(b))}
	}
	if !json.Valid(b) {
		// the sandbox answers some failures with an HTML page and a 200
		observe(op, entities.GatewayReasonInvalidResponse, start)
		return nil, start, &entities.GatewayError{Op: op, Reason: entities.GatewayReasonInvalidResponse, StatusCode: resp.StatusCode, Body: truncate(string(b))}
	}

	metrics.GatewayRequestDuration.WithLabelValues(op, "ok").Observe(time.Since(start).Seconds())
	return b, start, nil
}

func observe(op string, reason entities.GatewayErrorReason, start time.Time) {
	metrics.GatewayRequestDuration.WithLabelValues(op, string(reason)).Observe(time.Since(start).Seconds())
}

func (g *WhishGateway) rewriteCheckoutHost(raw string) string {
	if len(g.hostRewrites) == 0 {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if to, ok := g.hostRewrites[u.Host]; ok {
		u.Host = to
		return u.String()
	}
	return raw
}

// callbackURL builds one of the four URLs handed to the gateway. All of them
// land on the relay's callback endpoint; result and source are hints only.
func callbackURL(req interfaces.SessionRequest, result, source string) string {
	q := url.Values{}
	for k, vs := range req.CallbackQuery {
		q[k] = append([]string(nil), vs...)
	}
	q.Set("result", result)
	q.Set("source", source)
	q.Set("orderId", req.Payment.OrderID)
	q.Set("externalId", strconv.FormatInt(req.ExternalID, 10))
	q.Set("currency", req.Payment.Currency)

	base := req.CallbackURL
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}

func truncate(s string) string {
	if len(s) > maxLoggedBody {
		return s[:maxLoggedBody]
	}
	return s
}
