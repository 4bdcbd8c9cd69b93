package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	request "payment_relay/internal/adapter/http/dto/request"
	response "payment_relay/internal/adapter/http/dto/response"
	"payment_relay/internal/domain/entities"
	"payment_relay/internal/logger"
	"payment_relay/internal/usecase"
	"payment_relay/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidPaymentPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)

// PaymentHandler exposes the Whish payment workflow over HTTP.
type PaymentHandler struct {
	usecase usecase.IPaymentWorkflowUseCase
}

func NewPaymentHandler(uc usecase.IPaymentWorkflowUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// CreatePayment godoc
// @Summary      Start a Whish payment
// @Description  Validates the order and amount and returns the gateway checkout URL.
// @Tags         whish
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreatePaymentRequest  true  "Payment request"
// @Success      200   {object}  response.CreatePaymentResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Failure      500   {object}  pkg.HTTPError
// @Router       /whish/create [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	log := logger.FromCtx(c.Request.Context())

	var payload request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Info("create payment: invalid body", zap.Error(err))
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.CreatePayment(c.Request.Context(), usecase.CreatePaymentInput{
		OrderID:     payload.OrderIDString(),
		Amount:      payload.AmountString(),
		Currency:    payload.Currency,
		Description: payload.Description,
	})
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.CreatePaymentResponse{Redirect: res.Redirect, ExternalID: res.ExternalID})
}

// Callback godoc
// @Summary      Gateway callback
// @Description  Re-verifies the payment with the gateway, records it and redirects the payer.
// @Tags         whish
// @Param        orderId     query  string  false  "Order id"
// @Param        externalId  query  string  false  "Gateway external id"
// @Param        currency    query  string  false  "Currency"
// @Param        result      query  string  false  "Claimed result (advisory)"
// @Param        token       query  string  false  "Signed callback token"
// @Success      302
// @Router       /whish/callback [get]
func (h *PaymentHandler) Callback(c *gin.Context) {
	q := c.Request.URL.Query()

	orderID := firstNonEmpty(q.Get("orderId"), q.Get("order_id"), q.Get("invoice_id"))
	var externalID int64
	if raw := strings.TrimSpace(q.Get("externalId")); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			externalID = n
		}
	}

	out := h.usecase.HandleCallback(c.Request.Context(), entities.CallbackEvent{
		OrderID:    orderID,
		ExternalID: externalID,
		Currency:   q.Get("currency"),
		ResultHint: entities.ParseResultHint(q.Get("result")),
		Token:      q.Get("token"),
		RawQuery:   q,
	})
	c.Redirect(http.StatusFound, out.RedirectURL)
}

// StatusGet godoc
// @Summary      Check payment status
// @Tags         whish
// @Produce      json
// @Description  Queries the gateway for one payment attempt, identified by the externalId returned on create.
// @Param        orderId     query     string  false  "Order id"
// @Param        externalId  query     string  true   "Gateway external id"
// @Param        currency    query     string  false  "Currency"
// @Success      200  {object}  response.PaymentStatusResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /whish/status [get]
func (h *PaymentHandler) StatusGet(c *gin.Context) {
	h.status(c, c.Query("orderId"), c.Query("externalId"), c.Query("currency"))
}

// StatusPost godoc
// @Summary      Check payment status
// @Tags         whish
// @Accept       json
// @Produce      json
// @Param        body  body      request.StatusRequest  true  "Status query"
// @Success      200   {object}  response.PaymentStatusResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /whish/status [post]
func (h *PaymentHandler) StatusPost(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPaymentPayload.HTTPStatus, errInvalidPaymentPayload.ToHTTPError())
		return
	}
	h.status(c, payload.OrderIDString(), payload.ExternalIDString(), payload.Currency)
}

func (h *PaymentHandler) status(c *gin.Context, orderID, rawExternalID, currency string) {
	var externalID int64
	if rawExternalID = strings.TrimSpace(rawExternalID); rawExternalID != "" {
		n, err := strconv.ParseInt(rawExternalID, 10, 64)
		if err != nil || n <= 0 {
			appErr := mapPaymentError(entities.NewValidationError("externalId", "must be a positive integer"))
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		externalID = n
	}

	st, err := h.usecase.CheckStatus(c.Request.Context(), usecase.StatusQuery{
		OrderID:    orderID,
		ExternalID: externalID,
		Currency:   currency,
	})
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromVerifiedStatus(st))
}

// Balance godoc
// @Summary      Gateway account balance
// @Tags         whish
// @Produce      json
// @Success      200  {object}  object
// @Failure      502  {object}  pkg.HTTPError
// @Router       /whish/balance [get]
func (h *PaymentHandler) Balance(c *gin.Context) {
	raw, err := h.usecase.Balance(c.Request.Context())
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func mapPaymentError(err error) *pkg.AppError {
	var verr *entities.ValidationError
	var gerr *entities.GatewayError
	switch {
	case errors.As(err, &verr):
		return pkg.NewDomainError("INVALID_REQUEST", verr.Error(), err, http.StatusBadRequest)
	case errors.As(err, &gerr):
		return pkg.NewDomainError("GATEWAY_"+strings.ToUpper(string(gerr.Reason)), "Payment gateway error", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainError("GATEWAY_NOT_CONFIGURED", "Payment gateway not configured", err, http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
