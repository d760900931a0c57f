package assistant

import (
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/events"
)

// ConversationOptions carry the full configuration of one start command.
type ConversationOptions struct {
	InputEncoding  audio.EncodingInfo
	OutputEncoding audio.EncodingInfo
	Language       string
	DeviceID       string
	DeviceModelID  string
	// ForceNewConversation drops backend-side dialog context from previous
	// turns.
	ForceNewConversation bool
	// ScreenOut requests visual responses alongside audio.
	ScreenOut bool
	// TextQuery, when set, drives the turn from text instead of microphone
	// audio.
	TextQuery *string

	// EventEmitter receives the conversation's event stream. Events for one
	// conversation are delivered in transport order.
	EventEmitter func(event events.Event)
}

type ConversationOption func(*ConversationOptions)

func WithInputEncoding(encoding audio.EncodingInfo) ConversationOption {
	return func(o *ConversationOptions) { o.InputEncoding = encoding }
}

func WithOutputEncoding(encoding audio.EncodingInfo) ConversationOption {
	return func(o *ConversationOptions) { o.OutputEncoding = encoding }
}

func WithLanguage(language string) ConversationOption {
	return func(o *ConversationOptions) { o.Language = language }
}

func WithDevice(deviceID, deviceModelID string) ConversationOption {
	return func(o *ConversationOptions) {
		o.DeviceID = deviceID
		o.DeviceModelID = deviceModelID
	}
}

func WithForceNewConversation(force bool) ConversationOption {
	return func(o *ConversationOptions) { o.ForceNewConversation = force }
}

func WithScreenOut(enabled bool) ConversationOption {
	return func(o *ConversationOptions) { o.ScreenOut = enabled }
}

// WithTextQuery drives the turn from the given text instead of audio.
func WithTextQuery(query string) ConversationOption {
	return func(o *ConversationOptions) { o.TextQuery = &query }
}

// WithEventEmitter registers the sink for the conversation's event stream.
func WithEventEmitter(emitter func(event events.Event)) ConversationOption {
	return func(o *ConversationOptions) { o.EventEmitter = emitter }
}
