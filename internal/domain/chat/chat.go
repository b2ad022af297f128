// Package chat is the client side of the assistant conversation: a transcript,
// a staged image attachment, and the single-request-at-a-time send loop.
package chat

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

var (
	// ErrEmptyMessage is returned when a send carries neither text nor image.
	ErrEmptyMessage = errors.New("nothing to send")
	// ErrBusy is returned while a previous send is still in flight.
	ErrBusy = errors.New("a message is already being sent")
)

// Message is one transcript turn.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type sendRequest struct {
	Message   string `json:"message"`
	Image     string `json:"image,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

type sendResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// Panel holds one conversation with the assistant. At most one send is in
// flight at a time; further sends are rejected with ErrBusy until it settles.
type Panel struct {
	api    *rest.Client
	logger zerolog.Logger

	mu         sync.Mutex
	transcript []Message
	sessionID  string
	inFlight   bool
	stagedData string
	stagedName string
}

func NewPanel(api *rest.Client, logger zerolog.Logger) *Panel {
	return &Panel{api: api, logger: logger}
}

// AttachImage stages raw image bytes for the next send, replacing any image
// staged earlier. The backend expects a data URL.
func (p *Panel) AttachImage(data []byte, name, mimeType string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stagedData = "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	p.stagedName = name
}

// ClearImage drops the staged attachment without sending it.
func (p *Panel) ClearImage() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stagedData = ""
	p.stagedName = ""
}

// StagedImage returns the display name of the staged attachment, "" when none.
func (p *Panel) StagedImage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stagedName
}

// Send posts text (plus any staged image) to the assistant. The user's turn is
// appended to the transcript before the request goes out and stays there even
// if the request fails; the staged image is consumed either way. On success
// the assistant's reply is appended and the conversation id is kept for the
// next send.
func (p *Panel) Send(ctx context.Context, text string) (*Message, error) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	if text == "" && p.stagedData == "" {
		p.mu.Unlock()
		return nil, ErrEmptyMessage
	}
	req := sendRequest{Message: text, Image: p.stagedData, SessionID: p.sessionID}
	p.transcript = append(p.transcript, Message{
		Role: "user", Content: text, Image: p.stagedName, Timestamp: time.Now(),
	})
	p.stagedData = ""
	p.stagedName = ""
	p.inFlight = true
	p.mu.Unlock()

	var resp sendResponse
	err := p.api.Post(ctx, "/chat/message", req, &resp)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if err != nil {
		p.logger.Debug().Err(err).Msg("chat send failed")
		return nil, err
	}
	p.sessionID = resp.SessionID
	reply := Message{Role: "assistant", Content: resp.Response, Timestamp: time.Now()}
	p.transcript = append(p.transcript, reply)
	return &reply, nil
}

// Transcript returns a copy of the conversation so far.
func (p *Panel) Transcript() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.transcript))
	copy(out, p.transcript)
	return out
}

// SessionID returns the conversation id assigned by the backend, "" before the
// first successful send.
func (p *Panel) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessionID
}

// History fetches earlier conversation turns from the backend.
func (p *Panel) History(ctx context.Context) ([]Message, error) {
	var out []Message
	if err := p.api.Get(ctx, "/chat/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
