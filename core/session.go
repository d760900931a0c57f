package session

import (
	"log"
	"sync/atomic"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/events"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
	"github.com/google/uuid"
)

// conversationSession relays the event stream of one conversation turn to
// the registered handlers and the notification channel. It lives from the
// moment the backend accepts the turn until the ended event (or End).
type conversationSession struct {
	id           uuid.UUID
	conversation assistant.Conversation

	handlers EventHandlers
	bus      notify.Bus

	micOnImmediateResponse bool
	onEnded                func(*conversationSession)

	closed atomic.Bool
}

func newConversationSession(
	conversation assistant.Conversation,
	handlers EventHandlers,
	bus notify.Bus,
	micOnImmediateResponse bool,
	onEnded func(*conversationSession),
) *conversationSession {
	return &conversationSession{
		id:                     uuid.New(),
		conversation:           conversation,
		handlers:               handlers,
		bus:                    bus,
		micOnImmediateResponse: micOnImmediateResponse,
		onEnded:                onEnded,
	}
}

// SendAudio forwards one captured microphone buffer to the backend.
func (s *conversationSession) SendAudio(buffer []byte) error {
	return s.conversation.SendAudio(buffer)
}

// End asks the backend to end the turn. It is idempotent.
func (s *conversationSession) End() {
	if s.closed.Swap(true) {
		return
	}
	if err := s.conversation.End(); err != nil {
		log.Println("Failed to end conversation:", err)
	}
	if s.onEnded != nil {
		s.onEnded(s)
	}
}

// handleEvent relays one conversation event. Audio frames go to the
// consumer callback only; transcription, screen data and speech boundaries
// additionally go out on the notification channel so the presentation layer
// can render them without registering callbacks.
func (s *conversationSession) handleEvent(event events.Event) {
	switch e := event.(type) {
	case events.AudioFrame:
		if s.handlers.OnAudioData != nil {
			safeInvoke("audio data handler", func() { s.handlers.OnAudioData(e.Audio) })
		}

	case events.Transcript:
		s.bus.Publish(notify.Message{
			Kind:    notify.KindTranscription,
			Payload: notify.TranscriptionPayload{Text: e.Text, Done: e.Done},
		})
		if e.Done && s.handlers.OnQuery != nil {
			safeInvoke("query handler", func() { s.handlers.OnQuery(e.Text) })
		}

	case events.ScreenOut:
		// Both sinks carry the identical text representation.
		text := string(e.Data)
		s.bus.Publish(notify.Message{
			Kind:    notify.KindScreenData,
			Payload: notify.ScreenDataPayload{Format: e.Format, Data: text},
		})
		if s.handlers.OnScreenData != nil {
			safeInvoke("screen data handler", func() { s.handlers.OnScreenData(text) })
		}

	case events.EndOfUtterance:
		s.bus.Publish(notify.Message{Kind: notify.KindEndOfUtterance})

	case events.Ended:
		s.handleEnded(e)

	case events.ConversationError:
		s.bus.Publish(notify.Message{
			Kind:    notify.KindConversationError,
			Payload: notify.ConversationErrorPayload{Message: e.Err.Error()},
		})

	default:
		logger.Debug("ignoring conversation event of unknown kind", "kind", string(event.Kind()))
	}
}

func (s *conversationSession) handleEnded(e events.Ended) {
	if s.closed.Swap(true) {
		return
	}
	if e.Err != nil {
		log.Println("Conversation ended with error:", e.Err)
	}

	s.bus.Publish(notify.Message{Kind: notify.KindConversationEnded})
	if s.handlers.OnConversationEnded != nil {
		safeInvoke("conversation ended handler", func() { s.handlers.OnConversationEnded() })
	}

	// The backend can ask for an immediate follow-up turn, for example
	// after answering a question that expects a reply. Honoring that is the
	// host's choice.
	if e.ContinueConversation && s.micOnImmediateResponse {
		s.bus.Publish(notify.Message{Kind: notify.KindStartMicrophone})
	}

	if s.onEnded != nil {
		s.onEnded(s)
	}
}

// safeInvoke shields the relay from a panicking consumer handler. One bad
// handler must not take down event delivery for the rest of the turn.
func safeInvoke(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered panic in", name+":", r)
		}
	}()
	fn()
}
