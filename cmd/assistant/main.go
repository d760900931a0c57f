package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	session "github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio/miniaudio"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio/portaudio"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/notify"
)

const portaudioBufferSize = 1600 // 100ms of linear16 at the request rate

var (
	keyFilePath    = flag.String("key-file", "", "path to the OAuth client key file")
	tokenStorePath = flag.String("token-store", "", "path to the saved tokens file")
	language       = flag.String("language", "en-US", "assistant language code")
	deviceID       = flag.String("device-id", "", "registered device instance id")
	deviceModelID  = flag.String("device-model-id", "", "registered device model id")
	noAudio        = flag.Bool("no-audio", false, "disable microphone capture and audio playback")
	audioBackend   = flag.String("audio-backend", "miniaudio", "audio device backend: miniaudio or portaudio")
	followUpMic    = flag.Bool("follow-up-mic", true, "reopen the microphone when the assistant expects a reply")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	config := session.DefaultConfig()
	config.Auth.KeyFilePath = *keyFilePath
	config.Auth.TokenStorePath = *tokenStorePath
	config.Conversation.Language = *language
	config.Conversation.DeviceID = *deviceID
	config.Conversation.DeviceModelID = *deviceModelID
	config.MicOnImmediateResponse = *followUpMic

	if config.Auth.KeyFilePath == "" || config.Auth.TokenStorePath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to locate config directory: %v\n", err)
			os.Exit(1)
		}
		if config.Auth.KeyFilePath == "" {
			config.Auth.KeyFilePath = filepath.Join(configDir, "g-assist", "key.json")
		}
		if config.Auth.TokenStorePath == "" {
			config.Auth.TokenStorePath = filepath.Join(configDir, "g-assist", "tokens.json")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := notify.NewMemoryBus()

	var device audio.DeviceClient
	if !*noAudio {
		// The local playback path has no decoder, so responses have to be
		// requested as raw PCM instead of the compressed default.
		config.Conversation.OutputEncoding = audio.EncodingInfo{
			SampleRate: audio.DefaultOutputSampleRate,
			Format:     audio.EncodingLinear16,
		}

		var err error
		switch *audioBackend {
		case "miniaudio":
			device, err = miniaudio.NewClient()
		case "portaudio":
			// The portaudio client is a single full-duplex stream, so
			// playback runs at the request rate too.
			config.Conversation.OutputEncoding.SampleRate = audio.DefaultInputSampleRate
			device, err = portaudio.NewClient(portaudioBufferSize)
		default:
			err = fmt.Errorf("unknown audio backend %q", *audioBackend)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize audio device: %v\n", err)
			os.Exit(1)
		}
		defer device.Close()
		wireAudioDevice(ctx, bus, device)
	}

	service := session.NewService(config, session.WithBus(bus), session.WithBaseContext(ctx))
	defer service.Close()

	model := newModel(bus, *noAudio)
	program := tea.NewProgram(model, tea.WithAltScreen())

	forwardNotifications(bus, program)

	handlers := session.EventHandlers{}
	if device != nil {
		handlers.OnAudioData = func(chunk []byte) {
			if err := device.SendAudio(chunk); err != nil {
				log.Println("Failed to queue response audio:", err)
			}
		}
	}
	// Initialization must not run on this goroutine before the program: a
	// first run needs interactive authorization, and that prompt round-trips
	// through the running UI.
	startInitialization(service, handlers, program)

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run UI: %v\n", err)
		os.Exit(1)
	}
}

// startInitialization constructs the assistant client in the background and
// reports failure as a UI message.
func startInitialization(service *session.Service, handlers session.EventHandlers, program *tea.Program) {
	go func() {
		if err := service.Initialize(handlers); err != nil {
			program.Send(initFailedMsg{err: err})
		}
	}()
}

// wireAudioDevice connects the device client to the notification channel:
// captured microphone buffers become feed-audio commands, and playback
// follows the stop and microphone notifications.
func wireAudioDevice(ctx context.Context, bus notify.Bus, device audio.DeviceClient) {
	if err := device.StartPlayback(ctx); err != nil {
		log.Println("Failed to start playback device:", err)
	}

	startCapture := func(notify.Message) {
		err := device.StartCapture(ctx, func(chunk []byte) {
			buffer := make([]byte, len(chunk))
			copy(buffer, chunk)
			bus.Publish(notify.Message{
				Kind:    notify.KindFeedAudio,
				Payload: notify.FeedAudioPayload{Buffer: buffer},
			})
		})
		if err != nil {
			log.Println("Failed to start microphone capture:", err)
		}
	}

	bus.Subscribe(notify.KindStartMicrophone, startCapture)
	bus.Subscribe(notify.KindInvoke, func(msg notify.Message) {
		// A spoken turn is an invoke command without query text.
		if payload, ok := msg.Payload.(notify.InvokePayload); ok && payload.Query != "" {
			return
		}
		startCapture(msg)
	})
	bus.Subscribe(notify.KindStopAudioPlayback, func(notify.Message) {
		device.ClearBuffer()
	})
	bus.Subscribe(notify.KindEndOfUtterance, func(notify.Message) {
		if err := device.StopCapture(); err != nil {
			log.Println("Failed to stop microphone capture:", err)
		}
	})
	bus.Subscribe(notify.KindConversationEnded, func(notify.Message) {
		if err := device.StopCapture(); err != nil {
			log.Println("Failed to stop microphone capture:", err)
		}
	})
}
