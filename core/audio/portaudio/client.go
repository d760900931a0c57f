// Package portaudio is the fallback device client for hosts where the
// miniaudio backend is unavailable. Capture and playback share one
// full-duplex stream, so both run at the request sample rate and response
// audio has to be requested at that rate too.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio"
	"github.com/gordonklaus/portaudio"
)

type Client struct {
	bufferSize int
	stream     *portaudio.Stream

	audioMu     sync.Mutex
	queuedAudio []byte

	// Capture and playback share the one full-duplex stream; it must only be
	// started once.
	streamMu      sync.Mutex
	streamStarted bool

	captureMu     sync.Mutex
	captureCancel context.CancelFunc

	in  []int16
	out []int16
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 1, audio.DefaultInputSampleRate, bufferSize, in, out)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
		out:        out,
	}, nil
}

// StartCapture reads microphone buffers until the context is canceled or
// StopCapture is called, handing each one to onAudio as little-endian
// linear16 bytes.
func (c *Client) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.captureMu.Lock()
	if c.captureCancel != nil {
		c.captureMu.Unlock()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	c.captureCancel = cancel
	c.captureMu.Unlock()

	if err := c.ensureStarted(); err != nil {
		cancel()
		c.captureMu.Lock()
		c.captureCancel = nil
		c.captureMu.Unlock()
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.stream.Read(); err != nil {
					log.Printf("Failed to read from portaudio stream: %v", err)
					continue
				}

				audioBuffer := bytes.Buffer{}
				binary.Write(&audioBuffer, binary.LittleEndian, c.in)
				onAudio(audioBuffer.Bytes())
			}
		}
	}()
	return nil
}

func (c *Client) StopCapture() error {
	c.captureMu.Lock()
	defer c.captureMu.Unlock()
	if c.captureCancel != nil {
		c.captureCancel()
		c.captureCancel = nil
	}
	return nil
}

func (c *Client) StartPlayback(context.Context) error {
	return c.ensureStarted()
}

func (c *Client) ensureStarted() error {
	c.streamMu.Lock()
	defer c.streamMu.Unlock()
	if c.streamStarted {
		return nil
	}
	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}
	c.streamStarted = true
	return nil
}

func (c *Client) StopPlayback() error {
	c.ClearBuffer()
	return nil
}

// SendAudio writes full device buffers to the stream and keeps the
// remainder queued for the next chunk.
func (c *Client) SendAudio(audio []byte) error {
	bufferSize := c.bufferSize * 2

	c.audioMu.Lock()
	audio = append(c.queuedAudio, audio...)
	c.queuedAudio = nil
	c.audioMu.Unlock()

	for i := range len(audio)/bufferSize + 1 {
		if (i+1)*bufferSize > len(audio) {
			c.audioMu.Lock()
			c.queuedAudio = append(c.queuedAudio, audio[i*bufferSize:]...)
			c.audioMu.Unlock()
			break
		}

		binary.Read(bytes.NewBuffer(audio[i*bufferSize:(i+1)*bufferSize]), binary.LittleEndian, c.out)
		c.stream.Write()
	}

	return nil
}

func (c *Client) ClearBuffer() {
	c.audioMu.Lock()
	defer c.audioMu.Unlock()
	c.queuedAudio = nil
}

func (c *Client) Close() {
	_ = c.StopCapture()
	c.stream.Close()
	portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultInputSampleRate,
		Format:     audio.EncodingLinear16,
	}
}
