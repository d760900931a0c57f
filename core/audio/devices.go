package audio

import "context"

// CaptureClient records microphone audio and hands out linear16 buffers in
// the input contract's encoding.
type CaptureClient interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
}

// PlaybackClient plays linear16 response audio in the output contract's
// sample rate. ClearBuffer drops all queued audio, which is how barge-in is
// implemented.
type PlaybackClient interface {
	StartPlayback(ctx context.Context) error
	StopPlayback() error
	SendAudio(audio []byte) error
	ClearBuffer()
}

// DeviceClient is a full-duplex audio device.
type DeviceClient interface {
	CaptureClient
	PlaybackClient
	EncodingInfo() EncodingInfo
	Close()
}
