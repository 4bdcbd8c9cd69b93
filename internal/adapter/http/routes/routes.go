package routes

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	_ "payment_relay/docs"
	"payment_relay/internal/adapter/http/handlers"
	"payment_relay/internal/adapter/http/middleware"
	"payment_relay/internal/config"
	"payment_relay/internal/logger"
	"payment_relay/pkg"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewRouter builds the gin engine with every route of the relay.
func NewRouter(cfg config.Config, deps Dependencies) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	router := gin.New()
	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	health := handlers.NewHealthHandler()
	addPingRoutes(router, health)

	paymentHandler := handlers.NewPaymentHandler(deps.Workflow)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	addWhishRoutes(router, paymentHandler, limiter.Middleware(), callbackRecovery(cfg.Redirects.PendingURL))

	return router
}

// Run serves the router until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, cfg config.Config, deps Dependencies) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func setMiddlewares(router *gin.Engine) {
	internalErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.Recovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(internalErr.HTTPStatus, internalErr.ToHTTPError())
	}))
}

// callbackRecovery sends the payer to the pending page when the callback panics;
// the payment outcome is unknown at that point.
func callbackRecovery(pendingURL string) gin.HandlerFunc {
	target := pendingURL
	if u, err := url.Parse(pendingURL); err == nil {
		q := u.Query()
		q.Set("error", "callback_exception")
		u.RawQuery = q.Encode()
		target = u.String()
	}
	return middleware.Recovery(func(c *gin.Context, _ any) {
		c.Redirect(http.StatusFound, target)
		c.Abort()
	})
}
