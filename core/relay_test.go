package session

import (
	"errors"
	"testing"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

func TestRelayForwardsFirstSubmittedCode(t *testing.T) {
	bus := notify.NewMemoryBus()

	// A presentation layer that answers the prompt synchronously.
	bus.Subscribe(notify.KindShowOAuthPrompt, func(msg notify.Message) {
		payload := msg.Payload.(notify.ShowOAuthPromptPayload)
		if payload.AuthURL != "https://example.com/auth" {
			t.Fatalf("expected the authorization URL in the prompt, got %q", payload.AuthURL)
		}
		bus.Publish(notify.Message{
			Kind:    notify.KindOAuthCodeSubmitted,
			Payload: notify.OAuthCodePayload{Code: "4/abc"},
		})
	})

	var codes []string
	relay := NewTokenInputRelay(bus)
	err := relay.Prompt("https://example.com/auth", func(code string) { codes = append(codes, code) })
	if err != nil {
		t.Fatalf("expected prompt to succeed, got %v", err)
	}

	// A second submission has no armed subscription left.
	bus.Publish(notify.Message{
		Kind:    notify.KindOAuthCodeSubmitted,
		Payload: notify.OAuthCodePayload{Code: "4/def"},
	})

	if len(codes) != 1 || codes[0] != "4/abc" {
		t.Fatalf("expected exactly the first code, got %v", codes)
	}
}

func TestRelayIsOneShot(t *testing.T) {
	relay := NewTokenInputRelay(notify.NewMemoryBus())

	if err := relay.Prompt("https://example.com/auth", func(string) {}); err != nil {
		t.Fatalf("expected first prompt to succeed, got %v", err)
	}
	err := relay.Prompt("https://example.com/auth", func(string) {})
	if !errors.Is(err, ErrRelayConsumed) {
		t.Fatalf("expected ErrRelayConsumed, got %v", err)
	}
}
