package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		PaymentCreateTotal,
		PaymentCallbackTotal,
		GatewayRequestDuration,
		InvoicingRequestsTotal,
	)
}

var (
	// result: ok|validation|gateway_error|error
	PaymentCreateTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_create_requests_total",
			Help: "Count of payment creation requests by result.",
		},
		[]string{"result"},
	)

	// state: RECORDED|REJECTED|INDETERMINATE
	// hint: success|failure|unknown (what the callback claimed)
	PaymentCallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_callback_total",
			Help: "Count of gateway callbacks by verified terminal state and claimed result.",
		},
		[]string{"state", "hint"},
	)

	// op: create|status|balance
	// result: ok|invalid_response|rejected|network
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of payment gateway calls in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"op", "result"},
	)

	// op: get_invoice|create_invoice|create_payment|update_payment
	// result: ok|error
	InvoicingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoicing_requests_total",
			Help: "Count of invoicing system calls by operation and result.",
		},
		[]string{"op", "result"},
	)
)
