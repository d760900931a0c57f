package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	session "github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

type nopClient struct{}

func (nopClient) StartConversation(context.Context, ...assistant.ConversationOption) error {
	return nil
}
func (nopClient) Close(context.Context) error { return nil }

// First-run authorization has to round-trip through the running UI: the
// prompt notification reaches the program, the typed code travels back over
// the bus, and only then can client construction finish. Initialization must
// therefore never run on the UI goroutine ahead of the program.
func TestFirstRunAuthorizationRoundTripsThroughUI(t *testing.T) {
	bus := notify.NewMemoryBus()

	received := make(chan string, 1)
	service := session.NewService(session.DefaultConfig(), session.WithBus(bus),
		session.WithClientFactory(func(_ context.Context, config *session.Config, _ assistant.ClientCallbacks) (assistant.Client, error) {
			code := make(chan string, 1)
			config.Auth.TokenPrompt("https://example.com/auth", func(c string) { code <- c })
			select {
			case c := <-code:
				received <- c
				return nopClient{}, nil
			case <-time.After(2 * time.Second):
				return nil, errors.New("timed out waiting for authorization code")
			}
		}),
	)
	defer service.Close()

	program := tea.NewProgram(newModel(bus, true), tea.WithoutRenderer())
	forwardNotifications(bus, program)

	done := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(done)
	}()
	time.Sleep(50 * time.Millisecond)

	startInitialization(service, session.EventHandlers{}, program)

	// Let the prompt reach the model, then type the code into the UI.
	time.Sleep(100 * time.Millisecond)
	program.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4/abc")})
	program.Send(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case code := <-received:
		if code != "4/abc" {
			t.Fatalf("expected the typed code, got %q", code)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("authorization code never reached the client factory")
	}

	program.Quit()
	<-done
}

func TestInitializationFailureSurfacesInUI(t *testing.T) {
	bus := notify.NewMemoryBus()
	service := session.NewService(session.DefaultConfig(), session.WithBus(bus),
		session.WithClientFactory(func(context.Context, *session.Config, assistant.ClientCallbacks) (assistant.Client, error) {
			return nil, errors.New("key file missing")
		}),
	)
	defer service.Close()

	program := tea.NewProgram(newModel(bus, true), tea.WithoutRenderer())
	forwardNotifications(bus, program)

	finalModel := make(chan tea.Model, 1)
	go func() {
		final, _ := program.Run()
		finalModel <- final
	}()
	time.Sleep(50 * time.Millisecond)

	startInitialization(service, session.EventHandlers{}, program)
	time.Sleep(200 * time.Millisecond)
	program.Quit()

	m, ok := (<-finalModel).(model)
	if !ok {
		t.Fatalf("expected the final model")
	}
	for _, line := range m.lines {
		if strings.Contains(line, "key file missing") {
			return
		}
	}
	t.Fatalf("expected the initialization failure to be shown, got %v", m.lines)
}
