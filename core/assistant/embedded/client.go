// Package embedded streams conversations to the assistant backend over a
// websocket: one JSON start frame per turn, binary frames for audio in both
// directions, JSON control frames for transcripts, screen output and
// lifecycle.
package embedded

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/assistant"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/audio"
	"github.com/AQEEL2547/Google-Assistant-Unofficial-Desktop-Client/core/auth"
	"github.com/gorilla/websocket"
)

const defaultEndpoint = "wss://embeddedassistant.googleapis.com/v1/assist"

type Client struct {
	endpoint    string
	tokenSource auth.TokenSource
	callbacks   assistant.ClientCallbacks

	mu           sync.Mutex
	conversation *conversation
	closed       bool
}

type ClientOption func(*Client)

func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithCallbacks registers the client-level listeners. Register before the
// first start command; replacing them mid-conversation is unsupported.
func WithCallbacks(callbacks assistant.ClientCallbacks) ClientOption {
	return func(c *Client) { c.callbacks = callbacks }
}

func NewClient(tokenSource auth.TokenSource, opts ...ClientOption) (*Client, error) {
	if tokenSource == nil {
		return nil, fmt.Errorf("token source is required")
	}

	client := &Client{
		endpoint:    defaultEndpoint,
		tokenSource: tokenSource,
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.callbacks.OnReady != nil {
		client.callbacks.OnReady()
	}
	return client, nil
}

// StartConversation dials the backend and starts one turn. The previous
// conversation, if any, is ended first; its socket may still flush buffered
// events.
func (c *Client) StartConversation(ctx context.Context, opts ...assistant.ConversationOption) error {
	options := assistant.ConversationOptions{
		InputEncoding:  audio.GetDefaultInputEncodingInfo(),
		OutputEncoding: audio.GetDefaultOutputEncodingInfo(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("client is closed")
	}
	previous := c.conversation
	c.mu.Unlock()

	if previous != nil {
		_ = previous.End()
	}

	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain access token: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.endpoint,
		http.Header{"Authorization": {"Bearer " + token}})
	if err != nil {
		return fmt.Errorf("failed to open socket connection to assistant backend: %w", err)
	}

	if err := conn.WriteJSON(newStartFrame(options)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send start frame: %w", err)
	}

	conv := newConversation(conn, options, c.reportError)
	c.mu.Lock()
	c.conversation = conv
	c.mu.Unlock()

	// The handle must be delivered before the read pump starts: a fast
	// backend can answer immediately, and no event may precede OnStarted.
	if c.callbacks.OnStarted != nil {
		c.callbacks.OnStarted(conv)
	}

	go conv.readAndProcessMessages(ctx)
	return nil
}

func (c *Client) Close(_ context.Context) error {
	c.mu.Lock()
	conv := c.conversation
	c.conversation = nil
	c.closed = true
	c.mu.Unlock()

	if conv != nil {
		if err := conv.End(); err != nil {
			return fmt.Errorf("failed to end active conversation: %w", err)
		}
	}
	return nil
}

func (c *Client) reportError(err error) {
	if c.callbacks.OnError != nil {
		c.callbacks.OnError(err)
	}
}
