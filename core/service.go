// Package session bridges a streaming voice-assistant backend and the
// presentation layer. It owns exactly one conversation turn at a time: the
// Service accepts host commands, starts turns on the assistant client, and
// relays the conversation's event stream to consumer callbacks and the
// notification channel.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant/embedded"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/auth"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/events"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrNotInitialized is returned by operations that need the assistant
	// client before Initialize succeeded.
	ErrNotInitialized = errors.New("assistant client not initialized")
	// ErrAlreadyInitialized guards against stacking duplicate listeners.
	ErrAlreadyInitialized = errors.New("session service already initialized")
)

// Service is the session manager: it owns configuration, at most one active
// conversation session, and the control surface toward the host application.
type Service struct {
	mu sync.Mutex

	config   Config
	handlers EventHandlers

	bus           notify.Bus
	clientFactory ClientFactory
	client        assistant.Client

	session *conversationSession
	state   TurnState

	initialized  bool
	unsubscribes []func()
	closeOnce    sync.Once

	baseContext context.Context
}

func NewService(config Config, opts ...ServiceOption) *Service {
	s := &Service{
		config:      config,
		state:       StateIdle,
		baseContext: context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.bus == nil {
		s.bus = notify.NewMemoryBus()
	}
	if s.clientFactory == nil {
		s.clientFactory = defaultClientFactory
	}
	return s
}

func defaultClientFactory(ctx context.Context, config *Config, callbacks assistant.ClientCallbacks) (assistant.Client, error) {
	tokenSource, err := auth.EnsureTokenSource(ctx,
		config.Auth.KeyFilePath, config.Auth.TokenStorePath, config.Auth.TokenPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare authentication: %w", err)
	}
	return embedded.NewClient(tokenSource, embedded.WithCallbacks(callbacks))
}

// Initialize stores the handler set, constructs the assistant client from
// the auth configuration and registers the inbound command listeners. It can
// succeed at most once; a second call returns ErrAlreadyInitialized.
//
// When client construction fails the error is logged and the client left
// unset: every later operation that needs it fails with ErrNotInitialized
// instead of silently doing nothing. Command listeners are still registered
// so host commands surface that failure loudly.
func (s *Service) Initialize(handlers EventHandlers) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.handlers = handlers
	if s.config.Auth.TokenPrompt == nil {
		s.config.Auth.TokenPrompt = s.tokenPrompt
	}
	s.mu.Unlock()

	s.registerCommandHandlers()

	ctx, span := tracer.Start(s.baseContext, "initialize assistant client")
	defer span.End()

	client, err := s.clientFactory(ctx, &s.config, assistant.ClientCallbacks{
		OnReady:   func() { logger.InfoContext(ctx, "assistant client ready") },
		OnStarted: s.handleConversation,
		OnError: func(err error) {
			// Client-level errors are operational and non-fatal.
			log.Println("Assistant client error:", err)
		},
	})
	if err != nil {
		wrapped := fmt.Errorf("failed to construct assistant client: %w", err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())
		log.Println(wrapped)
		return wrapped
	}

	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
	return nil
}

func (s *Service) registerCommandHandlers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unsubscribes = append(s.unsubscribes,
		s.bus.Subscribe(notify.KindInvoke, s.handleInvokeCommand),
		s.bus.Subscribe(notify.KindFeedAudio, s.handleFeedAudioCommand),
		s.bus.Subscribe(notify.KindEndConversation, func(notify.Message) { s.EndConversation() }),
	)
}

// InvokeAssistant starts one turn. A non-empty textQuery drives the turn
// from text; an empty one resets to microphone mode. It is the single entry
// point for starting turns and is re-callable once per turn; a still-active
// session is ended before the new start command is issued.
func (s *Service) InvokeAssistant(textQuery string) error {
	s.mu.Lock()
	client := s.client
	if client == nil {
		s.mu.Unlock()
		return ErrNotInitialized
	}

	if textQuery != "" {
		s.config.setTextQuery(textQuery)
	} else {
		s.config.clearTextQuery()
	}
	opts, err := s.config.startOptions()
	s.config.clearTextQuery()
	if err != nil {
		// The previous turn, if any, stays untouched.
		s.mu.Unlock()
		return err
	}

	active := s.session
	s.session = nil
	s.state = StateStarting
	s.mu.Unlock()

	if active != nil {
		active.End()
	}

	ctx, span := tracer.Start(s.baseContext, "start conversation turn",
		trace.WithAttributes(attribute.Bool("conversation.text_query", textQuery != "")))
	defer span.End()

	opts = append(opts, assistant.WithEventEmitter(s.dispatchConversationEvent))
	if err := client.StartConversation(ctx, opts...); err != nil {
		wrapped := fmt.Errorf("failed to start conversation: %w", err)
		span.RecordError(wrapped)
		span.SetStatus(codes.Error, wrapped.Error())

		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return wrapped
	}
	return nil
}

// handleConversation adopts the handle the backend accepted. It tolerates
// being called again for a subsequent turn after the previous one ended.
func (s *Service) handleConversation(conversation assistant.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = newConversationSession(conversation, s.handlers, s.bus,
		s.config.MicOnImmediateResponse, s.clearSession)
	s.state = StateActive
}

// EndConversation signals the active turn to end and drops its reference.
// Without an active turn it is a safe no-op.
func (s *Service) EndConversation() {
	s.mu.Lock()
	active := s.session
	s.session = nil
	if active != nil {
		s.state = StateIdle
	}
	s.mu.Unlock()

	if active != nil {
		active.End()
	}
}

// State reports the current turn state.
func (s *Service) State() TurnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close unsubscribes from the bus, ends any active turn and closes the
// assistant client.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		unsubscribes := s.unsubscribes
		s.unsubscribes = nil
		client := s.client
		s.mu.Unlock()

		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}

		s.EndConversation()

		if client != nil {
			if err := client.Close(s.baseContext); err != nil {
				log.Println("Failed to close assistant client:", err)
			}
		}
	})
}

// dispatchConversationEvent forwards one adapter event to the active
// session. Events arriving after the reference was dropped cannot be
// delivered anywhere and are discarded.
func (s *Service) dispatchConversationEvent(event events.Event) {
	s.mu.Lock()
	active := s.session
	s.mu.Unlock()

	if active == nil {
		logger.Debug("dropping conversation event without active session", "kind", string(event.Kind()))
		return
	}
	active.handleEvent(event)
}

// clearSession drops the active reference if it still points at ended.
func (s *Service) clearSession(ended *conversationSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == ended {
		s.session = nil
		s.state = StateIdle
	}
}

func (s *Service) handleInvokeCommand(msg notify.Message) {
	query := ""
	if payload, ok := msg.Payload.(notify.InvokePayload); ok {
		query = payload.Query
	}

	s.bus.Publish(notify.Message{Kind: notify.KindStopAudioPlayback})

	if err := s.InvokeAssistant(query); err != nil {
		log.Println("Failed to invoke assistant:", err)
	}

	s.mu.Lock()
	onQuery := s.handlers.OnQuery
	s.mu.Unlock()
	if onQuery != nil {
		safeInvoke("query handler", func() { onQuery(query) })
	}
}

func (s *Service) handleFeedAudioCommand(msg notify.Message) {
	payload, ok := msg.Payload.(notify.FeedAudioPayload)
	if !ok {
		return
	}

	s.mu.Lock()
	active := s.session
	s.mu.Unlock()
	if active == nil {
		// No active session: the buffer is dropped.
		return
	}

	if err := active.SendAudio(payload.Buffer); err != nil {
		log.Println("Failed to feed audio to conversation:", err)
	}
}
