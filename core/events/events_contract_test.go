package events

import (
	"errors"
	"testing"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "audio frame", event: NewAudioFrame([]byte{1}), expected: KindAudioFrame},
		{name: "interim transcript", event: NewTranscript("weather", false), expected: KindTranscript},
		{name: "final transcript", event: NewTranscript("weather today", true), expected: KindTranscript},
		{name: "screen out", event: NewScreenOut("html", []byte("<div/>")), expected: KindScreenOut},
		{name: "end of utterance", event: NewEndOfUtterance(), expected: KindEndOfUtterance},
		{name: "ended", event: NewEnded(nil, false), expected: KindEnded},
		{name: "ended with error", event: NewEnded(errors.New("backend gone"), true), expected: KindEnded},
		{name: "conversation error", event: NewConversationError(errors.New("transient")), expected: KindConversationError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestTranscriptKeepsDoneFlag(t *testing.T) {
	if NewTranscript("partial", false).Done {
		t.Fatalf("expected interim transcript to report done=false")
	}
	if !NewTranscript("final", true).Done {
		t.Fatalf("expected final transcript to report done=true")
	}
}

func TestEndedCarriesContinueConversation(t *testing.T) {
	if NewEnded(nil, false).ContinueConversation {
		t.Fatalf("expected continue flag to stay unset")
	}
	if !NewEnded(nil, true).ContinueConversation {
		t.Fatalf("expected continue flag to be preserved")
	}
}
