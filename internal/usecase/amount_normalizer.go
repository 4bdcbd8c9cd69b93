package usecase

import (
	"regexp"
	"strings"

	"payment_relay/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// thousandsSeparators are stripped before parsing ("1,200" -> 1200).
var thousandsSeparators = strings.NewReplacer(",", "", "_", "", " ", "", "\u00a0", "")

// AmountNormalizer validates monetary input. It has no side effects.
type AmountNormalizer struct {
	defaultCurrency string
	supported       map[string]struct{}
}

// NewAmountNormalizer builds a normalizer. An empty supported list accepts any
// well-formed currency code.
func NewAmountNormalizer(defaultCurrency string, supported []string) AmountNormalizer {
	n := AmountNormalizer{defaultCurrency: strings.ToUpper(strings.TrimSpace(defaultCurrency))}
	if len(supported) > 0 {
		n.supported = make(map[string]struct{}, len(supported))
		for _, c := range supported {
			n.supported[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
		}
	}
	return n
}

func (n AmountNormalizer) DefaultCurrency() string { return n.defaultCurrency }

// NormalizeAmount parses a positive, finite amount.
func (n AmountNormalizer) NormalizeAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" {
		return decimal.Zero, entities.NewValidationError("amount", "is required")
	}
	s = thousandsSeparators.Replace(s)

	lower := strings.ToLower(s)
	if strings.Contains(lower, "nan") || strings.Contains(lower, "inf") {
		return decimal.Zero, entities.NewValidationError("amount", "must be finite")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, entities.NewValidationError("amount", "must be numeric")
	}
	if !amount.IsPositive() {
		return decimal.Zero, entities.NewValidationError("amount", "must be greater than zero")
	}
	return amount, nil
}

// NormalizeCurrency upper-cases the code and falls back to the default when absent.
func (n AmountNormalizer) NormalizeCurrency(raw string) (string, error) {
	cur := strings.ToUpper(strings.TrimSpace(raw))
	if cur == "" {
		cur = n.defaultCurrency
	}
	if !currencyCodePattern.MatchString(cur) {
		return "", entities.NewValidationError("currency", "must be a 3-letter code")
	}
	if n.supported != nil {
		if _, ok := n.supported[cur]; !ok {
			return "", entities.NewValidationError("currency", cur+" is not supported")
		}
	}
	return cur, nil
}

// NetAmount removes the gateway fee from a gross amount: gross / (1 + feeRate),
// rounded to 2 decimal places.
func NetAmount(gross, feeRate decimal.Decimal) decimal.Decimal {
	return gross.Div(decimal.NewFromInt(1).Add(feeRate)).Round(2)
}
