package session

import (
	"errors"
	"sync/atomic"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

// ErrRelayConsumed is returned when a token-input relay is asked to prompt
// a second time. Each relay carries exactly one authorization exchange.
var ErrRelayConsumed = errors.New("token input relay already consumed")

// TokenInputRelay carries one OAuth authorization-code exchange over the
// notification channel: it shows the authorization URL to the presentation
// layer and hands the first submitted code back to the authorization flow.
type TokenInputRelay struct {
	bus  notify.Bus
	used atomic.Bool
}

func NewTokenInputRelay(bus notify.Bus) *TokenInputRelay {
	return &TokenInputRelay{bus: bus}
}

// Prompt publishes the OAuth prompt notification and forwards the first
// submitted code to submit. The code subscription is armed before the
// prompt goes out so a presentation layer that answers synchronously
// cannot race the relay. Later submissions are ignored.
func (r *TokenInputRelay) Prompt(authURL string, submit func(code string)) error {
	if r.used.Swap(true) {
		return ErrRelayConsumed
	}

	r.bus.SubscribeOnce(notify.KindOAuthCodeSubmitted, func(msg notify.Message) {
		payload, ok := msg.Payload.(notify.OAuthCodePayload)
		if !ok {
			return
		}
		submit(payload.Code)
	})

	r.bus.Publish(notify.Message{
		Kind:    notify.KindShowOAuthPrompt,
		Payload: notify.ShowOAuthPromptPayload{AuthURL: authURL},
	})
	return nil
}

// tokenPrompt is the Service's default auth.CodePrompt: every authorization
// attempt gets a fresh one-shot relay.
func (s *Service) tokenPrompt(authURL string, submit func(code string)) {
	relay := NewTokenInputRelay(s.bus)
	if err := relay.Prompt(authURL, submit); err != nil {
		logger.Warn("token input relay rejected prompt", "error", err)
	}
}
