package routes

import (
	"context"
	"fmt"
	"strings"

	"payment_relay/internal/adapter/persistence/repository"
	"payment_relay/internal/config"
	"payment_relay/internal/infrastructure/database"
	"payment_relay/internal/infrastructure/invoicing"
	"payment_relay/internal/infrastructure/payments"
	"payment_relay/internal/infrastructure/security"
	"payment_relay/internal/logger"
	"payment_relay/internal/usecase"
	"payment_relay/internal/usecase/interfaces"

	"go.uber.org/zap"
)

type Dependencies struct {
	Workflow usecase.IPaymentWorkflowUseCase
}

// BuildDependencies wires the clients and the workflow from configuration.
func BuildDependencies(ctx context.Context, cfg config.Config) (Dependencies, error) {
	gateway, err := payments.NewWhishGateway(cfg.Gateway, cfg.RequestTimeout)
	if err != nil {
		return Dependencies{}, fmt.Errorf("whish gateway: %w", err)
	}

	var invoicingClient interfaces.IInvoicingClient
	if c, err := invoicing.NewInvoicingClient(cfg.Invoicing, cfg.RequestTimeout); err != nil {
		logger.L().Warn("invoicing client not configured; successful payments will need manual reconciliation", zap.Error(err))
	} else {
		invoicingClient = c
	}

	var ledger interfaces.IRecordingLedger = repository.NoopLedger{}
	if cfg.Ledger.Table != "" {
		ddb, err := database.ConnectDynamoDB(ctx, cfg.Ledger)
		if err != nil {
			return Dependencies{}, fmt.Errorf("recording ledger: %w", err)
		}
		ledger = repository.NewRecordedPaymentDynamoRepository(ddb, cfg.Ledger.Table)
		logger.L().Info("recording ledger enabled", zap.String("table", cfg.Ledger.Table))
	} else {
		logger.L().Info("recording ledger disabled; relying on invoicing transaction_id")
	}

	signer, err := security.NewCallbackTokenSigner(cfg.Callback.SigningKey, cfg.Callback.TokenTTL)
	if err != nil {
		return Dependencies{}, fmt.Errorf("callback token: %w", err)
	}

	workflow := usecase.NewPaymentWorkflowUseCase(gateway, invoicingClient, ledger, signer, WorkflowSettings(cfg))
	return Dependencies{Workflow: workflow}, nil
}

func WorkflowSettings(cfg config.Config) usecase.WorkflowSettings {
	return usecase.WorkflowSettings{
		CallbackURL:         strings.TrimRight(cfg.Callback.PublicBaseURL, "/") + PathWhish + "/callback",
		SuccessURL:          cfg.Redirects.SuccessURL,
		FailureURL:          cfg.Redirects.FailureURL,
		PendingURL:          cfg.Redirects.PendingURL,
		FeeRate:             cfg.Payment.FeeRate,
		DefaultCurrency:     cfg.Payment.DefaultCurrency,
		SupportedCurrencies: cfg.Payment.SupportedCurrencies,
		RecordPending:       cfg.Invoicing.RecordPending,
	}
}
