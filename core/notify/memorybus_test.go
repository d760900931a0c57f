package notify

import (
	"sync/atomic"
	"testing"
)

func TestMemoryBusDeliversInPublishOrder(t *testing.T) {
	bus := NewMemoryBus()

	observed := []string{}
	bus.Subscribe(KindTranscription, func(msg Message) {
		payload := msg.Payload.(TranscriptionPayload)
		observed = append(observed, payload.Text)
	})

	bus.Publish(Message{Kind: KindTranscription, Payload: TranscriptionPayload{Text: "turn"}})
	bus.Publish(Message{Kind: KindTranscription, Payload: TranscriptionPayload{Text: "on"}})
	bus.Publish(Message{Kind: KindTranscription, Payload: TranscriptionPayload{Text: "lights", Done: true}})

	if len(observed) != 3 || observed[0] != "turn" || observed[1] != "on" || observed[2] != "lights" {
		t.Fatalf("expected ordered delivery [turn on lights], got %v", observed)
	}
}

func TestMemoryBusPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewMemoryBus()
	bus.Publish(Message{Kind: KindEndConversation})
}

func TestMemoryBusSubscribeOnceFiresExactlyOnce(t *testing.T) {
	bus := NewMemoryBus()

	calls := atomic.Int32{}
	bus.SubscribeOnce(KindOAuthCodeSubmitted, func(Message) { calls.Add(1) })

	bus.Publish(Message{Kind: KindOAuthCodeSubmitted, Payload: OAuthCodePayload{Code: "4/code"}})
	bus.Publish(Message{Kind: KindOAuthCodeSubmitted, Payload: OAuthCodePayload{Code: "4/later"}})

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one delivery, got %d", got)
	}
}

func TestMemoryBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()

	calls := atomic.Int32{}
	unsubscribe := bus.Subscribe(KindStartMicrophone, func(Message) { calls.Add(1) })

	bus.Publish(Message{Kind: KindStartMicrophone})
	unsubscribe()
	bus.Publish(Message{Kind: KindStartMicrophone})

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected delivery to stop after unsubscribe, got %d calls", got)
	}
}

func TestMemoryBusHandlerCanSubscribeDuringDispatch(t *testing.T) {
	bus := NewMemoryBus()

	nested := atomic.Int32{}
	bus.SubscribeOnce(KindShowOAuthPrompt, func(Message) {
		bus.SubscribeOnce(KindOAuthCodeSubmitted, func(Message) { nested.Add(1) })
	})

	bus.Publish(Message{Kind: KindShowOAuthPrompt, Payload: ShowOAuthPromptPayload{AuthURL: "https://accounts.example"}})
	bus.Publish(Message{Kind: KindOAuthCodeSubmitted, Payload: OAuthCodePayload{Code: "4/code"}})

	if got := nested.Load(); got != 1 {
		t.Fatalf("expected nested subscription to receive the code, got %d calls", got)
	}
}
