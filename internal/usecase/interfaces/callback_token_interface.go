package interfaces

import "payment_relay/internal/domain/entities"

// ICallbackTokenSigner binds the payment context into the callback URLs.
type ICallbackTokenSigner interface {
	Sign(cc entities.CallbackContext) (string, error)
	Verify(token string) (entities.CallbackContext, error)
}
