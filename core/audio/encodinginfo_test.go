package audio

import "testing"

func TestDefaultEncodings(t *testing.T) {
	in := GetDefaultInputEncodingInfo()
	if in.SampleRate != 16000 || in.Format != EncodingLinear16 {
		t.Fatalf("expected linear16 at 16kHz for requests, got %+v", in)
	}
	if in.Format.IsCompressed() {
		t.Fatalf("expected uncompressed request audio")
	}
	if in.Format.ByteSize() != 2 {
		t.Fatalf("expected 2 bytes per linear16 sample, got %d", in.Format.ByteSize())
	}

	out := GetDefaultOutputEncodingInfo()
	if out.SampleRate != 24000 || !out.Format.IsCompressed() {
		t.Fatalf("expected compressed response audio at 24kHz, got %+v", out)
	}
	if out.Format.ByteSize() != -1 {
		t.Fatalf("expected unknown sample size for compressed audio, got %d", out.Format.ByteSize())
	}
}
