// Package events defines the typed event contract between the assistant
// client adapter and the session core.
//
// A conversation produces a single ordered stream of events, delivered in
// the order the adapter's transport produced them:
//
//   - AudioFrame (conversation.audio_frame): raw response audio chunk, passed
//     through unchanged and in stream order.
//   - Transcript (conversation.transcript): transcription snapshot. Done is
//     false for interim (streaming, partial) updates and true exactly once,
//     for the authoritative final transcript of the utterance.
//   - ScreenOut (conversation.screen_out): visual response payload with an
//     adapter-declared format tag.
//   - EndOfUtterance (conversation.end_of_utterance): the user stopped
//     speaking; the turn has not necessarily ended.
//   - Ended (conversation.ended): terminal event for the conversation handle.
//     Nothing legitimate follows it. Carries an optional error and whether
//     the backend expects an immediate spoken follow-up.
//   - ConversationError (conversation.error): operational backend error.
//     Non-terminal; only Ended closes the stream.
package events
