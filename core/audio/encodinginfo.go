package audio

const (
	// DefaultInputSampleRate is the microphone capture rate the backend expects.
	DefaultInputSampleRate = 16000
	// DefaultOutputSampleRate is the rate the backend synthesizes responses at.
	DefaultOutputSampleRate = 24000
)

// GetDefaultInputEncodingInfo returns the encoding sent to the backend for
// microphone audio: 16-bit linear PCM at 16 kHz.
func GetDefaultInputEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultInputSampleRate, Format: EncodingLinear16}
}

// GetDefaultOutputEncodingInfo returns the encoding requested for response
// audio. The sample rate is a contract with the backend and must stay 24 kHz
// regardless of the codec chosen.
func GetDefaultOutputEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultOutputSampleRate, Format: EncodingMP3}
}

type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

// ByteSize returns bytes per sample, or -1 for compressed formats where the
// sample size is not fixed.
func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingLinear16:
		return 2
	}
	return -1
}

func (e encodingFormat) IsCompressed() bool {
	switch e {
	case EncodingMP3, EncodingOpusInOgg:
		return true
	}
	return false
}

const (
	EncodingLinear16  encodingFormat = "linear16"
	EncodingMP3       encodingFormat = "mp3"
	EncodingOpusInOgg encodingFormat = "opus_in_ogg"
)
