// Package notify is the transient-notification surface: short-lived
// success/error messages reporting the outcome of a user action, written to
// a sink and retained in a bounded ring for inspection.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a single transient message.
type Notification struct {
	ID      string
	Level   Level
	Message string
	Time    time.Time
}

const defaultMaxRetained = 50

// Center records notifications and writes them to the sink as they arrive.
type Center struct {
	mu      sync.Mutex
	sink    io.Writer
	recent  []Notification
	maxKept int
}

func NewCenter(sink io.Writer) *Center {
	return &Center{sink: sink, maxKept: defaultMaxRetained}
}

func (c *Center) Success(msg string) { c.push(LevelSuccess, msg) }

func (c *Center) Error(msg string) { c.push(LevelError, msg) }

func (c *Center) Info(msg string) { c.push(LevelInfo, msg) }

func (c *Center) Successf(format string, args ...interface{}) {
	c.push(LevelSuccess, fmt.Sprintf(format, args...))
}

func (c *Center) Errorf(format string, args ...interface{}) {
	c.push(LevelError, fmt.Sprintf(format, args...))
}

func (c *Center) push(level Level, msg string) {
	n := Notification{
		ID:      uuid.New().String(),
		Level:   level,
		Message: msg,
		Time:    time.Now(),
	}

	c.mu.Lock()
	c.recent = append(c.recent, n)
	if len(c.recent) > c.maxKept {
		c.recent = c.recent[len(c.recent)-c.maxKept:]
	}
	sink := c.sink
	c.mu.Unlock()

	if sink != nil {
		fmt.Fprintf(sink, "[%s] %s\n", level, msg)
	}
}

// Recent returns a copy of the retained notifications, oldest first.
func (c *Center) Recent() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.recent))
	copy(out, c.recent)
	return out
}

// Last returns the most recent notification, nil when none exist.
func (c *Center) Last() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.recent) == 0 {
		return nil
	}
	n := c.recent[len(c.recent)-1]
	return &n
}
