package embedded

import "github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"

const (
	frameTypeStart          = "start"
	frameTypeEnd            = "end"
	frameTypeTranscript     = "transcript"
	frameTypeScreenOut      = "screen_out"
	frameTypeEndOfUtterance = "end_of_utterance"
	frameTypeEnded          = "ended"
	frameTypeError          = "error"
)

// controlFrame is the JSON envelope for every non-binary message in either
// direction. Unused fields stay at their zero value.
type controlFrame struct {
	Type string `json:"type"`

	// transcript
	Text string `json:"text,omitempty"`
	Done bool   `json:"done,omitempty"`

	// screen_out; Data is base64 on the wire.
	Format string `json:"format,omitempty"`
	Data   []byte `json:"data,omitempty"`

	// ended / error
	Error                string `json:"error,omitempty"`
	ContinueConversation bool   `json:"continue_conversation,omitempty"`
}

// startFrame carries the full conversation configuration for one turn.
type startFrame struct {
	Type string `json:"type"`

	AudioIn  audioSettings `json:"audio_in"`
	AudioOut audioSettings `json:"audio_out"`

	Language             string  `json:"language,omitempty"`
	DeviceID             string  `json:"device_id,omitempty"`
	DeviceModelID        string  `json:"device_model_id,omitempty"`
	ForceNewConversation bool    `json:"force_new_conversation,omitempty"`
	ScreenOut            bool    `json:"screen_out,omitempty"`
	TextQuery            *string `json:"text_query,omitempty"`
}

type audioSettings struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
}

func newStartFrame(options assistant.ConversationOptions) startFrame {
	return startFrame{
		Type: frameTypeStart,
		AudioIn: audioSettings{
			Encoding:   options.InputEncoding.Format.Name(),
			SampleRate: options.InputEncoding.SampleRate,
		},
		AudioOut: audioSettings{
			Encoding:   options.OutputEncoding.Format.Name(),
			SampleRate: options.OutputEncoding.SampleRate,
		},
		Language:             options.Language,
		DeviceID:             options.DeviceID,
		DeviceModelID:        options.DeviceModelID,
		ForceNewConversation: options.ForceNewConversation,
		ScreenOut:            options.ScreenOut,
		TextQuery:            options.TextQuery,
	}
}
