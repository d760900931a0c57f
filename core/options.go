package session

import (
	"context"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

// EventHandlers are the consumer callbacks the host supplies at
// initialization. They are pure notification sinks: return values do not
// exist and a panicking handler never takes the session down.
type EventHandlers struct {
	// OnQuery receives the query text: once per invoke command, and once
	// more with the final transcription of a spoken utterance.
	OnQuery func(text string)
	// OnScreenData receives the text representation of visual responses.
	OnScreenData func(text string)
	// OnAudioData receives response audio chunks unchanged and in order.
	OnAudioData func(audio []byte)
	// OnConversationEnded fires exactly once per ended turn.
	OnConversationEnded func()
}

// ClientFactory constructs the assistant client from configuration. The
// produced client must register the given callbacks.
type ClientFactory func(ctx context.Context, config *Config, callbacks assistant.ClientCallbacks) (assistant.Client, error)

type ServiceOption func(*Service)

// WithBus replaces the in-process notification channel.
func WithBus(bus notify.Bus) ServiceOption {
	return func(s *Service) { s.bus = bus }
}

// WithClientFactory replaces how the assistant client is constructed.
func WithClientFactory(factory ClientFactory) ServiceOption {
	return func(s *Service) { s.clientFactory = factory }
}

// WithBaseContext sets the context adopted by background operations.
func WithBaseContext(ctx context.Context) ServiceOption {
	return func(s *Service) { s.baseContext = ctx }
}
