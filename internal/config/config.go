package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = 10000
	defaultGatewayBaseURL  = "https://api.sandbox.whish.money/itel-service/api"
	defaultRequestTimeout  = 15 * time.Second
	defaultCallbackTTL     = 72 * time.Hour
	defaultFeeRate         = "0.01"
	defaultCurrency        = "LBP"
	defaultRateLimitRPS    = 5
	defaultRateLimitBurst  = 10
	defaultLedgerAWSRegion = "us-east-1"
)

type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug | release | test
}

type LogConfig struct {
	Env   string `yaml:"env"`   // production -> json
	Level string `yaml:"level"` // debug|info|warn|error
}

type GatewayConfig struct {
	BaseURL    string `yaml:"base_url"`
	Channel    string `yaml:"channel"`
	Secret     string `yaml:"secret"`
	WebsiteURL string `yaml:"website_url"`
	// CheckoutHostRewrites maps a checkout host returned by the gateway to the
	// host the payer's browser must be sent to (sandbox only in practice).
	CheckoutHostRewrites map[string]string `yaml:"checkout_host_rewrites"`
}

type CallbackConfig struct {
	PublicBaseURL string        `yaml:"public_base_url"`
	SigningKey    string        `yaml:"signing_key"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

type RedirectConfig struct {
	SuccessURL string `yaml:"success_url"`
	FailureURL string `yaml:"failure_url"`
	PendingURL string `yaml:"pending_url"`
}

type InvoicingConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	// RecordPending creates a pending payment entry when the gateway status is not final.
	RecordPending bool `yaml:"record_pending"`
}

type PaymentConfig struct {
	FeeRateRaw          string          `yaml:"fee_rate"`
	FeeRate             decimal.Decimal `yaml:"-"`
	DefaultCurrency     string          `yaml:"default_currency"`
	SupportedCurrencies []string        `yaml:"supported_currencies"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// LedgerConfig configures the DynamoDB table used to deduplicate recordings.
// An empty Table disables the ledger.
type LedgerConfig struct {
	Table           string `yaml:"table"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type Config struct {
	Server         ServerConfig    `yaml:"server"`
	Log            LogConfig       `yaml:"log"`
	Gateway        GatewayConfig   `yaml:"gateway"`
	Callback       CallbackConfig  `yaml:"callback"`
	Redirects      RedirectConfig  `yaml:"redirects"`
	Invoicing      InvoicingConfig `yaml:"invoicing"`
	Payment        PaymentConfig   `yaml:"payment"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	Ledger         LedgerConfig    `yaml:"ledger"`
	RequestTimeout time.Duration   `yaml:"request_timeout"`
}

// Load builds the configuration once at startup: an optional YAML file named by
// CONFIG_FILE, then environment variables on top, then defaults and validation.
func Load() (Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := finalize(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	envString("APP_ENV", &cfg.Log.Env)
	envString("LOG_LEVEL", &cfg.Log.Level)
	envString("GIN_MODE", &cfg.Server.Mode)

	envString("WHISH_BASE", &cfg.Gateway.BaseURL)
	envString("WHISH_CHANNEL", &cfg.Gateway.Channel)
	envString("WHISH_SECRET", &cfg.Gateway.Secret)
	envString("WHISH_WEBSITE_URL", &cfg.Gateway.WebsiteURL)
	if v := strings.TrimSpace(os.Getenv("WHISH_CHECKOUT_HOST_REWRITES")); v != "" {
		rewrites, err := parseHostRewrites(v)
		if err != nil {
			return err
		}
		cfg.Gateway.CheckoutHostRewrites = rewrites
	}

	envString("PUBLIC_BASE_URL", &cfg.Callback.PublicBaseURL)
	envString("CALLBACK_SIGNING_KEY", &cfg.Callback.SigningKey)

	envString("SUCCESS_REDIRECT_URL", &cfg.Redirects.SuccessURL)
	envString("FAIL_REDIRECT_URL", &cfg.Redirects.FailureURL)
	envString("PENDING_REDIRECT_URL", &cfg.Redirects.PendingURL)

	envString("INVOICING_BASE_URL", &cfg.Invoicing.BaseURL)
	envString("INVOICING_API_KEY", &cfg.Invoicing.APIKey)

	envString("PAYMENT_FEE_RATE", &cfg.Payment.FeeRateRaw)
	envString("PAYMENT_DEFAULT_CURRENCY", &cfg.Payment.DefaultCurrency)
	if v := strings.TrimSpace(os.Getenv("PAYMENT_SUPPORTED_CURRENCIES")); v != "" {
		cfg.Payment.SupportedCurrencies = splitList(v)
	}

	envString("LEDGER_TABLE", &cfg.Ledger.Table)
	envString("AWS_REGION", &cfg.Ledger.Region)
	envString("DYNAMODB_ENDPOINT", &cfg.Ledger.Endpoint)
	envString("AWS_ACCESS_KEY_ID", &cfg.Ledger.AccessKeyID)
	envString("AWS_SECRET_ACCESS_KEY", &cfg.Ledger.SecretAccessKey)

	if err := envInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if err := envInt("RATE_LIMIT_BURST", &cfg.RateLimit.Burst); err != nil {
		return err
	}
	if err := envFloat("RATE_LIMIT_RPS", &cfg.RateLimit.RPS); err != nil {
		return err
	}
	if err := envBool("INVOICING_RECORD_PENDING", &cfg.Invoicing.RecordPending); err != nil {
		return err
	}
	if err := envDuration("REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return err
	}
	return envDuration("CALLBACK_TOKEN_TTL", &cfg.Callback.TokenTTL)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = defaultGatewayBaseURL
	}
	if cfg.Callback.SigningKey == "" {
		cfg.Callback.SigningKey = cfg.Gateway.Secret
	}
	if cfg.Callback.TokenTTL <= 0 {
		cfg.Callback.TokenTTL = defaultCallbackTTL
	}
	if cfg.Payment.FeeRateRaw == "" {
		cfg.Payment.FeeRateRaw = defaultFeeRate
	}
	if cfg.Payment.DefaultCurrency == "" {
		cfg.Payment.DefaultCurrency = defaultCurrency
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.RateLimit.RPS <= 0 {
		cfg.RateLimit.RPS = defaultRateLimitRPS
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = defaultRateLimitBurst
	}
	if cfg.Ledger.Region == "" {
		cfg.Ledger.Region = defaultLedgerAWSRegion
	}
}

func finalize(cfg *Config) error {
	cfg.Gateway.BaseURL = strings.TrimRight(cfg.Gateway.BaseURL, "/")
	cfg.Callback.PublicBaseURL = strings.TrimRight(cfg.Callback.PublicBaseURL, "/")
	cfg.Invoicing.BaseURL = strings.TrimRight(cfg.Invoicing.BaseURL, "/")

	fee, err := decimal.NewFromString(strings.TrimSpace(cfg.Payment.FeeRateRaw))
	if err != nil {
		return fmt.Errorf("payment.fee_rate: %w", err)
	}
	if fee.IsNegative() || fee.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("payment.fee_rate must be in [0, 1), got %s", fee)
	}
	cfg.Payment.FeeRate = fee

	cfg.Payment.DefaultCurrency = strings.ToUpper(strings.TrimSpace(cfg.Payment.DefaultCurrency))
	if len(cfg.Payment.DefaultCurrency) != 3 {
		return fmt.Errorf("payment.default_currency must be a 3-letter code, got %q", cfg.Payment.DefaultCurrency)
	}
	for i, c := range cfg.Payment.SupportedCurrencies {
		cfg.Payment.SupportedCurrencies[i] = strings.ToUpper(strings.TrimSpace(c))
	}

	required := []struct {
		name  string
		value string
	}{
		{"gateway.base_url", cfg.Gateway.BaseURL},
		{"callback.public_base_url", cfg.Callback.PublicBaseURL},
		{"redirects.success_url", cfg.Redirects.SuccessURL},
		{"redirects.failure_url", cfg.Redirects.FailureURL},
		{"redirects.pending_url", cfg.Redirects.PendingURL},
		{"invoicing.base_url", cfg.Invoicing.BaseURL},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
		if _, err := url.ParseRequestURI(r.value); err != nil {
			return fmt.Errorf("%s: %w", r.name, err)
		}
	}
	if cfg.Callback.SigningKey == "" {
		return errors.New("callback.signing_key (or gateway.secret) is required")
	}
	return nil
}

// parseHostRewrites reads "from=to,from2=to2".
func parseHostRewrites(raw string) (map[string]string, error) {
	out := map[string]string{}
	for _, pair := range splitList(raw) {
		from, to, ok := strings.Cut(pair, "=")
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid checkout host rewrite %q", pair)
		}
		out[from] = to
	}
	return out, nil
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return nil
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
