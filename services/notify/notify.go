// Package notify holds the user-notification sinks handed to controllers.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/springreviewer/admin/core"
)

// Level is the severity of a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notice is one transient user notification.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Buffer collects notices in memory.
type Buffer struct {
	mu      sync.Mutex
	notices []Notice
}

var _ core.Notifier = (*Buffer)(nil)

func NewBuffer() *Buffer {
	return &Buffer{notices: make([]Notice, 0)}
}

func (b *Buffer) add(lvl Level, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, Notice{Level: lvl, Message: msg})
}

func (b *Buffer) Success(msg string) { b.add(LevelSuccess, msg) }
func (b *Buffer) Info(msg string)    { b.add(LevelInfo, msg) }
func (b *Buffer) Error(msg string)   { b.add(LevelError, msg) }

// Notices returns a copy of the collected notices, oldest first.
func (b *Buffer) Notices() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append(make([]Notice, 0, len(b.notices)), b.notices...)
}

// Messages returns the messages of the collected notices of the given level.
func (b *Buffer) Messages(lvl Level) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := make([]string, 0)
	for _, n := range b.notices {
		if n.Level == lvl {
			msgs = append(msgs, n.Message)
		}
	}
	return msgs
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = b.notices[:0]
}

// Console writes notices to w, one per line.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

var _ core.Notifier = (*Console)(nil)

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) write(prefix, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", prefix, msg)
}

func (c *Console) Success(msg string) { c.write("[ok]", msg) }
func (c *Console) Info(msg string)    { c.write("[info]", msg) }
func (c *Console) Error(msg string)   { c.write("[error]", msg) }

// Multi fans every notice out to all its notifiers.
type Multi []core.Notifier

var _ core.Notifier = Multi(nil)

func (m Multi) Success(msg string) {
	for _, n := range m {
		n.Success(msg)
	}
}

func (m Multi) Info(msg string) {
	for _, n := range m {
		n.Info(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}
