// Package assistant declares the boundary to the remote assistant backend.
// The session core depends only on these contracts; concrete transports live
// in subpackages.
package assistant

import "context"

// Client maintains the connection to the assistant backend and starts
// conversations on it.
type Client interface {
	// StartConversation issues the start command for one turn. The configured
	// OnStarted callback delivers the conversation handle before any
	// conversation events are emitted.
	StartConversation(ctx context.Context, opts ...ConversationOption) error
	Close(ctx context.Context) error
}

// Conversation is the handle for one in-flight turn.
type Conversation interface {
	// SendAudio streams microphone audio into the turn.
	SendAudio(audio []byte) error
	// End asks the backend to terminate the turn. The backend may still emit
	// buffered events afterwards.
	End() error
}

// ClientCallbacks are the client-level listeners registered once at
// construction.
type ClientCallbacks struct {
	// OnReady fires when the client is able to accept start commands.
	OnReady func()
	// OnStarted delivers the handle for a conversation the backend accepted.
	OnStarted func(conversation Conversation)
	// OnError reports client-level failures. Non-fatal; the client stays
	// usable for subsequent start commands.
	OnError func(err error)
}
