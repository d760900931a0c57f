package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

// initFailedMsg reports a failed background initialization to the UI.
type initFailedMsg struct {
	err error
}

type transcriptionMsg struct {
	text string
	done bool
}

type screenDataMsg struct {
	format string
	data   string
}

type endOfUtteranceMsg struct{}

type conversationEndedMsg struct{}

type conversationErrorMsg struct {
	message string
}

type microphoneMsg struct {
	listening bool
}

type oauthPromptMsg struct {
	authURL string
}

// forwardNotifications converts outbound notifications into bubbletea
// messages. program.Send is safe from bus dispatch goroutines.
func forwardNotifications(bus notify.Bus, program *tea.Program) {
	bus.Subscribe(notify.KindTranscription, func(msg notify.Message) {
		if payload, ok := msg.Payload.(notify.TranscriptionPayload); ok {
			program.Send(transcriptionMsg{text: payload.Text, done: payload.Done})
		}
	})
	bus.Subscribe(notify.KindScreenData, func(msg notify.Message) {
		if payload, ok := msg.Payload.(notify.ScreenDataPayload); ok {
			program.Send(screenDataMsg{format: payload.Format, data: payload.Data})
		}
	})
	bus.Subscribe(notify.KindEndOfUtterance, func(notify.Message) {
		program.Send(endOfUtteranceMsg{})
	})
	bus.Subscribe(notify.KindConversationEnded, func(notify.Message) {
		program.Send(conversationEndedMsg{})
	})
	bus.Subscribe(notify.KindConversationError, func(msg notify.Message) {
		if payload, ok := msg.Payload.(notify.ConversationErrorPayload); ok {
			program.Send(conversationErrorMsg{message: payload.Message})
		}
	})
	bus.Subscribe(notify.KindStartMicrophone, func(notify.Message) {
		program.Send(microphoneMsg{listening: true})
	})
	bus.Subscribe(notify.KindShowOAuthPrompt, func(msg notify.Message) {
		if payload, ok := msg.Payload.(notify.ShowOAuthPromptPayload); ok {
			program.Send(oauthPromptMsg{authURL: payload.AuthURL})
		}
	})
}
