package embedded

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type conversation struct {
	id      string
	options assistant.ConversationOptions
	onError func(err error)

	connMu sync.Mutex
	conn   *websocket.Conn
	ended  bool
}

func newConversation(conn *websocket.Conn, options assistant.ConversationOptions, onError func(err error)) *conversation {
	return &conversation{
		id:      uuid.NewString(),
		conn:    conn,
		options: options,
		onError: onError,
	}
}

func (c *conversation) SendAudio(audio []byte) error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("conversation already ended")
	}
	if err := c.conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
		return fmt.Errorf("failed to write audio to assistant backend: %w", err)
	}
	return nil
}

func (c *conversation) End() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn == nil || c.ended {
		return nil
	}
	c.ended = true

	if err := c.conn.WriteJSON(controlFrame{Type: frameTypeEnd}); err != nil {
		c.conn.Close()
		c.conn = nil
		return fmt.Errorf("failed to send end frame: %w", err)
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return nil
}

func (c *conversation) emit(event events.Event) {
	if c.options.EventEmitter != nil {
		c.options.EventEmitter(event)
	}
}

// readAndProcessMessages pumps the socket until the backend ends the turn.
// Binary frames are response audio; text frames are JSON control messages.
func (c *conversation) readAndProcessMessages(_ context.Context) {
	conn := c.conn
	defer func() {
		c.connMu.Lock()
		if c.conn != nil {
			c.conn.Close()
			c.conn = nil
		}
		c.connMu.Unlock()
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Println("Failed to read assistant websocket message:", err)
				c.emit(events.NewEnded(fmt.Errorf("assistant stream failed: %w", err), false))
				return
			}

			c.connMu.Lock()
			wasEnded := c.ended
			c.connMu.Unlock()
			if !wasEnded {
				// Backend closed without an ended frame; synthesize one so the
				// relay always observes a terminal event.
				c.emit(events.NewEnded(errors.New("assistant stream closed unexpectedly"), false))
			}
			return
		}

		if msgType == websocket.BinaryMessage {
			c.emit(events.NewAudioFrame(msg))
			continue
		}

		if done := c.processControlFrame(msg); done {
			return
		}
	}
}

// processControlFrame dispatches one JSON frame; returns true on the terminal
// ended frame.
func (c *conversation) processControlFrame(msg []byte) bool {
	var parsed controlFrame
	if err := json.Unmarshal(msg, &parsed); err != nil {
		c.reportDecodeError(fmt.Errorf("failed to unmarshal assistant message: %w", err))
		return false
	}

	switch parsed.Type {
	case frameTypeTranscript:
		c.emit(events.NewTranscript(parsed.Text, parsed.Done))

	case frameTypeScreenOut:
		c.emit(events.NewScreenOut(parsed.Format, parsed.Data))

	case frameTypeEndOfUtterance:
		c.emit(events.NewEndOfUtterance())

	case frameTypeError:
		c.emit(events.NewConversationError(errors.New(parsed.Error)))

	case frameTypeEnded:
		var endErr error
		if parsed.Error != "" {
			endErr = errors.New(parsed.Error)
		}
		c.connMu.Lock()
		c.ended = true
		c.connMu.Unlock()
		c.emit(events.NewEnded(endErr, parsed.ContinueConversation))
		return true

	default:
		c.reportDecodeError(fmt.Errorf("skipped assistant message of unknown type %q", parsed.Type))
	}
	return false
}

func (c *conversation) reportDecodeError(err error) {
	log.Println("Assistant protocol error:", err)
	if c.onError != nil {
		c.onError(err)
	}
}
