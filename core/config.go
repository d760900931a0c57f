package session

import (
	"fmt"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/auth"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/internal/utils"
	"github.com/jinzhu/copier"
)

// AuthConfig locates the OAuth material the assistant client is built from.
type AuthConfig struct {
	KeyFilePath    string
	TokenStorePath string
	// TokenPrompt handles interactive authorization. When unset, the service
	// bridges the prompt over the notification channel.
	TokenPrompt auth.CodePrompt
}

// ConversationConfig are the per-turn defaults sent with every start command.
type ConversationConfig struct {
	InputEncoding        audio.EncodingInfo
	OutputEncoding       audio.EncodingInfo
	Language             string
	DeviceID             string
	DeviceModelID        string
	ForceNewConversation bool
	ScreenOut            bool
}

// Config is the per-process configuration, constructed once and handed to the
// service. The one mutable field is textQuery, which is transient per
// invocation.
type Config struct {
	Auth         AuthConfig
	Conversation ConversationConfig

	// MicOnImmediateResponse reopens the microphone when the backend signals
	// it expects an immediate spoken follow-up.
	MicOnImmediateResponse bool

	// textQuery is overwritten before each invocation and cleared right
	// after the start command is built, so a later microphone-only turn is
	// never contaminated by a stale query.
	textQuery *string
}

func DefaultConfig() Config {
	return Config{
		Conversation: ConversationConfig{
			InputEncoding:  audio.GetDefaultInputEncodingInfo(),
			OutputEncoding: audio.GetDefaultOutputEncodingInfo(),
			Language:       "en-US",
			ScreenOut:      true,
		},
	}
}

func (c *Config) setTextQuery(query string) { c.textQuery = utils.Ptr(query) }
func (c *Config) clearTextQuery()           { c.textQuery = nil }

// startOptions builds the conversation options for one start command from a
// copy of the defaults, so nothing downstream can mutate the configuration.
func (c *Config) startOptions() ([]assistant.ConversationOption, error) {
	if c.Conversation.InputEncoding.IsZero() || c.Conversation.OutputEncoding.IsZero() {
		return nil, fmt.Errorf("conversation audio encodings are not configured")
	}

	defaults := ConversationConfig{}
	if err := copier.Copy(&defaults, &c.Conversation); err != nil {
		return nil, fmt.Errorf("failed to copy conversation defaults: %w", err)
	}

	opts := []assistant.ConversationOption{
		assistant.WithInputEncoding(defaults.InputEncoding),
		assistant.WithOutputEncoding(defaults.OutputEncoding),
		assistant.WithLanguage(defaults.Language),
		assistant.WithDevice(defaults.DeviceID, defaults.DeviceModelID),
		assistant.WithForceNewConversation(defaults.ForceNewConversation),
		assistant.WithScreenOut(defaults.ScreenOut),
	}
	if c.textQuery != nil {
		opts = append(opts, assistant.WithTextQuery(*c.textQuery))
	}
	return opts, nil
}
