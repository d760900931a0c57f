package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

func TestEnterPublishesInvokeCommand(t *testing.T) {
	bus := notify.NewMemoryBus()

	var invokes []notify.InvokePayload
	bus.Subscribe(notify.KindInvoke, func(msg notify.Message) {
		invokes = append(invokes, msg.Payload.(notify.InvokePayload))
	})

	m := newModel(bus, false)
	m.input.SetValue("what time is it")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if len(invokes) != 1 || invokes[0].Query != "what time is it" {
		t.Fatalf("expected one invoke command with the query, got %v", invokes)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input to be cleared, got %q", m.input.Value())
	}
}

func TestOAuthPromptCapturesCode(t *testing.T) {
	bus := notify.NewMemoryBus()

	var codes []string
	bus.Subscribe(notify.KindOAuthCodeSubmitted, func(msg notify.Message) {
		codes = append(codes, msg.Payload.(notify.OAuthCodePayload).Code)
	})

	m := newModel(bus, false)
	updated, _ := m.Update(oauthPromptMsg{authURL: "https://example.com/auth"})
	m = updated.(model)

	m.input.SetValue("4/abc")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(model)

	if len(codes) != 1 || codes[0] != "4/abc" {
		t.Fatalf("expected the submitted code, got %v", codes)
	}
	if m.oauthURL != "" {
		t.Fatalf("expected the prompt to be dismissed")
	}
}

func TestEscEndsActiveTurn(t *testing.T) {
	bus := notify.NewMemoryBus()

	ends := 0
	bus.Subscribe(notify.KindEndConversation, func(notify.Message) { ends++ })

	m := newModel(bus, false)
	updated, _ := m.Update(microphoneMsg{listening: true})
	m = updated.(model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(model)

	if ends != 1 {
		t.Fatalf("expected one end-conversation command, got %d", ends)
	}
	if cmd != nil {
		t.Fatalf("expected no quit while a turn was active")
	}
	if m.active {
		t.Fatalf("expected the turn to be marked ended")
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags("<html><body><b>7:45</b> PM</body></html>")
	if got != "7:45 PM" {
		t.Fatalf("expected text content only, got %q", got)
	}
}
