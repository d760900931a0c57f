package events

const (
	// KindAudioFrame identifies a raw response audio chunk.
	KindAudioFrame Kind = "conversation.audio_frame"
	// KindTranscript identifies an interim or final transcription snapshot.
	KindTranscript Kind = "conversation.transcript"
	// KindScreenOut identifies a visual response payload.
	KindScreenOut Kind = "conversation.screen_out"
	// KindEndOfUtterance identifies the end of user speech activity.
	KindEndOfUtterance Kind = "conversation.end_of_utterance"
	// KindEnded identifies the terminal event of a conversation.
	KindEnded Kind = "conversation.ended"
	// KindConversationError identifies a non-terminal backend error.
	KindConversationError Kind = "conversation.error"
)

// AudioFrame carries a response audio chunk.
type AudioFrame struct {
	Base
	Audio []byte
}

// NewAudioFrame creates a response audio chunk event.
func NewAudioFrame(audio []byte) AudioFrame {
	return AudioFrame{Base: NewBase(KindAudioFrame), Audio: audio}
}

// Transcript carries a transcription snapshot. Done marks the final,
// authoritative transcript for the utterance.
type Transcript struct {
	Base
	Text string
	Done bool
}

// NewTranscript creates a transcription event.
func NewTranscript(text string, done bool) Transcript {
	return Transcript{Base: NewBase(KindTranscript), Text: text, Done: done}
}

// ScreenOut carries a visual response payload. Format is the adapter-declared
// content tag (e.g. "html") and is forwarded unchanged.
type ScreenOut struct {
	Base
	Format string
	Data   []byte
}

// NewScreenOut creates a screen output event.
func NewScreenOut(format string, data []byte) ScreenOut {
	return ScreenOut{Base: NewBase(KindScreenOut), Format: format, Data: data}
}

// EndOfUtterance marks that the user has stopped speaking.
type EndOfUtterance struct{ Base }

// NewEndOfUtterance creates an end-of-utterance event.
func NewEndOfUtterance() EndOfUtterance {
	return EndOfUtterance{Base: NewBase(KindEndOfUtterance)}
}

// Ended terminates the conversation's event stream. ContinueConversation is
// set when the backend expects an immediate spoken follow-up without a new
// invocation.
type Ended struct {
	Base
	Err                  error
	ContinueConversation bool
}

// NewEnded creates the terminal conversation event.
func NewEnded(err error, continueConversation bool) Ended {
	return Ended{Base: NewBase(KindEnded), Err: err, ContinueConversation: continueConversation}
}

// ConversationError carries a non-terminal backend error.
type ConversationError struct {
	Base
	Err error
}

// NewConversationError creates a backend error event.
func NewConversationError(err error) ConversationError {
	return ConversationError{Base: NewBase(KindConversationError), Err: err}
}
