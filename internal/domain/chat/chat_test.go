package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/healthdesk/healthdesk/internal/platform/rest"
)

func newPanel(t *testing.T, handler http.Handler) *Panel {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPanel(rest.New(srv.URL), zerolog.Nop())
}

func TestSendEmpty(t *testing.T) {
	p := newPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty send must not reach the backend")
	}))
	if _, err := p.Send(context.Background(), ""); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestSendPropagatesSessionID(t *testing.T) {
	var got sendRequest
	calls := 0
	p := newPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(sendResponse{Response: "Hello!", SessionID: "s-42"})
	}))

	reply, err := p.Send(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply.Content != "Hello!" || reply.Role != "assistant" {
		t.Errorf("reply = %+v", reply)
	}
	if got.SessionID != "" {
		t.Errorf("first send carried session id %q", got.SessionID)
	}
	if p.SessionID() != "s-42" {
		t.Errorf("session id = %q", p.SessionID())
	}

	if _, err := p.Send(context.Background(), "and again"); err != nil {
		t.Fatal(err)
	}
	if got.SessionID != "s-42" {
		t.Errorf("second send carried session id %q, want s-42", got.SessionID)
	}
	if calls != 2 {
		t.Errorf("calls = %d", calls)
	}

	// user, assistant, user, assistant
	if tr := p.Transcript(); len(tr) != 4 || tr[0].Role != "user" || tr[1].Role != "assistant" {
		t.Errorf("transcript = %+v", tr)
	}
}

func TestSendFailureKeepsUserTurn(t *testing.T) {
	p := newPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"detail": "AI service unavailable"})
	}))

	_, err := p.Send(context.Background(), "anyone there?")
	if err == nil {
		t.Fatal("expected failure")
	}
	if rest.Detail(err, "fallback") != "AI service unavailable" {
		t.Errorf("detail = %q", rest.Detail(err, "fallback"))
	}

	tr := p.Transcript()
	if len(tr) != 1 || tr[0].Role != "user" {
		t.Fatalf("transcript = %+v, want just the user turn", tr)
	}

	// The panel is free for a retry.
	if _, err := p.Send(context.Background(), "retry"); err == nil {
		t.Error("backend is still down, expected an error, not ErrBusy")
	} else if errors.Is(err, ErrBusy) {
		t.Error("a settled failure must release the in-flight slot")
	}
}

func TestSendRejectsConcurrent(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	p := newPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		json.NewEncoder(w).Encode(sendResponse{Response: "done", SessionID: "s-1"})
	}))

	done := make(chan error, 1)
	go func() {
		_, err := p.Send(context.Background(), "slow one")
		done <- err
	}()

	<-entered
	if _, err := p.Send(context.Background(), "impatient"); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}
}

func TestImageStagingConsumedOnFailure(t *testing.T) {
	var got sendRequest
	fail := true
	p := newPanel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sendRequest{}
		json.NewDecoder(r.Body).Decode(&got)
		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"detail": "AI service unavailable"})
			return
		}
		json.NewEncoder(w).Encode(sendResponse{Response: "I see a rash", SessionID: "s-1"})
	}))

	p.AttachImage([]byte("fake-png-bytes"), "rash.png", "image/png")
	if p.StagedImage() != "rash.png" {
		t.Fatalf("staged = %q", p.StagedImage())
	}

	if _, err := p.Send(context.Background(), "what is this?"); err == nil {
		t.Fatal("expected failure")
	}
	if !strings.HasPrefix(got.Image, "data:image/png;base64,") {
		t.Errorf("image payload = %q", got.Image)
	}
	if p.StagedImage() != "" {
		t.Error("a failed send still consumes the staged image")
	}

	// The next send goes out without the image.
	fail = false
	if _, err := p.Send(context.Background(), "text only"); err != nil {
		t.Fatal(err)
	}
	if got.Image != "" {
		t.Errorf("second send carried image %q", got.Image)
	}
}

func TestAttachImageReplaces(t *testing.T) {
	p := newPanel(t, http.NotFoundHandler())
	p.AttachImage([]byte("a"), "first.png", "image/png")
	p.AttachImage([]byte("b"), "second.jpg", "image/jpeg")
	if p.StagedImage() != "second.jpg" {
		t.Errorf("staged = %q", p.StagedImage())
	}
	p.ClearImage()
	if p.StagedImage() != "" {
		t.Error("ClearImage should drop the attachment")
	}
}
