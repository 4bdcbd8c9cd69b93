package security

import (
	"errors"
	"strconv"
	"time"

	"payment_relay/internal/domain/entities"
	"payment_relay/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

const callbackIssuer = "payment-relay"

var (
	ErrMissingSigningKey = errors.New("callback signing key is not set")
	ErrInvalidToken      = errors.New("invalid callback token")
)

// CallbackClaims binds one payment attempt to its callback URLs.
type CallbackClaims struct {
	OrderID  string `json:"oid"`
	Amount   string `json:"amt"`
	Currency string `json:"cur"`
	jwt.RegisteredClaims
}

type CallbackTokenSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

var _ interfaces.ICallbackTokenSigner = (*CallbackTokenSigner)(nil)

func NewCallbackTokenSigner(key string, ttl time.Duration) (*CallbackTokenSigner, error) {
	if key == "" {
		return nil, ErrMissingSigningKey
	}
	return &CallbackTokenSigner{key: []byte(key), ttl: ttl, now: time.Now}, nil
}

func (s *CallbackTokenSigner) Sign(cc entities.CallbackContext) (string, error) {
	now := s.now()
	claims := CallbackClaims{
		OrderID:  cc.OrderID,
		Amount:   cc.Amount.String(),
		Currency: cc.Currency,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   callbackIssuer,
			Subject:  strconv.FormatInt(cc.ExternalID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *CallbackTokenSigner) Verify(tokenStr string) (entities.CallbackContext, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&CallbackClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.key, nil
		},
		jwt.WithIssuer(callbackIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return entities.CallbackContext{}, err
	}

	claims, ok := token.Claims.(*CallbackClaims)
	if !ok || !token.Valid {
		return entities.CallbackContext{}, ErrInvalidToken
	}

	externalID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || externalID <= 0 || claims.OrderID == "" {
		return entities.CallbackContext{}, ErrInvalidToken
	}
	amount, err := decimal.NewFromString(claims.Amount)
	if err != nil || !amount.IsPositive() {
		return entities.CallbackContext{}, ErrInvalidToken
	}

	return entities.CallbackContext{
		OrderID:    claims.OrderID,
		ExternalID: externalID,
		Amount:     amount,
		Currency:   claims.Currency,
	}, nil
}
