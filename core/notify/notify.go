// Package notify is the event bridge between the session core and the
// presentation layer. Outbound notifications flow toward the UI; inbound
// commands flow from it. The core only depends on the Bus contract, so any
// transport (IPC, websocket, in-process) can sit behind it.
package notify

type Kind string

// Inbound host commands.
const (
	KindInvoke             Kind = "command.invoke"
	KindFeedAudio          Kind = "command.feed_audio"
	KindEndConversation    Kind = "command.end_conversation"
	KindOAuthCodeSubmitted Kind = "command.oauth_code_submitted"
)

// Outbound notifications.
const (
	KindStopAudioPlayback Kind = "notification.stop_audio_playback"
	KindTranscription     Kind = "notification.transcription"
	KindScreenData        Kind = "notification.screen_data"
	KindEndOfUtterance    Kind = "notification.end_of_utterance"
	KindConversationEnded Kind = "notification.conversation_ended"
	KindStartMicrophone   Kind = "notification.start_microphone"
	KindShowOAuthPrompt   Kind = "notification.show_oauth_prompt"
	KindConversationError Kind = "notification.conversation_error"
)

// Message is a single bus event. Payload is one of the payload structs below,
// or nil for zero-payload kinds.
type Message struct {
	Kind    Kind
	Payload any
}

type InvokePayload struct {
	Query string
}

type FeedAudioPayload struct {
	Buffer []byte
}

type OAuthCodePayload struct {
	Code string
}

type TranscriptionPayload struct {
	Text string
	Done bool
}

// ScreenDataPayload carries the visual response. Data is the same text
// representation consumer callbacks receive.
type ScreenDataPayload struct {
	Format string
	Data   string
}

type ShowOAuthPromptPayload struct {
	AuthURL string
}

type ConversationErrorPayload struct {
	Message string
}

// Bus is the narrow publish/subscribe contract the session core consumes.
//
// Publish dispatches to subscribers synchronously, preserving publish order;
// implementations backed by an external transport must keep per-kind ordering.
type Bus interface {
	Publish(msg Message)
	// Subscribe registers handler for kind and returns an unsubscribe func.
	Subscribe(kind Kind, handler func(Message)) (unsubscribe func())
	// SubscribeOnce registers a handler that fires for at most one message.
	SubscribeOnce(kind Kind, handler func(Message)) (cancel func())
}
