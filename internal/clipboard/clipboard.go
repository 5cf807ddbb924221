// Package clipboard connects the system clipboard to the history cache.
//
// When the platform has no usable clipboard, the most recent history entry
// stands in for reads and every write becomes a history push.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"quip/internal/history"
)

// Backend is a native clipboard.
type Backend interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemBackend struct{}

func (systemBackend) ReadAll() (string, error) { return clipboard.ReadAll() }
func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemBackend returns the platform clipboard, or nil if there is none.
func SystemBackend() Backend {
	if clipboard.Unsupported {
		return nil
	}
	return systemBackend{}
}

type Clipboard struct {
	history    *history.History
	useHistory bool
	backend    Backend
	log        *zap.Logger
}

type Option func(*Clipboard)

// WithBackend replaces the platform clipboard. A nil backend makes the
// history the only clipboard.
func WithBackend(b Backend) Option {
	return func(c *Clipboard) {
		c.backend = b
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Clipboard) {
		if l != nil {
			c.log = l
		}
	}
}

func New(h *history.History, useHistory bool, opts ...Option) *Clipboard {
	c := &Clipboard{
		history:    h,
		useHistory: useHistory,
		backend:    SystemBackend(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Native reports whether a platform clipboard is in use.
func (c *Clipboard) Native() bool {
	return c.backend != nil
}

// Set replaces the clipboard contents. pushed is true when data was also
// stored as a new history entry, which happens whenever history is enabled
// or there is no native clipboard.
func (c *Clipboard) Set(data []byte) (entry history.Entry, pushed bool, err error) {
	if c.backend != nil {
		if err := c.backend.WriteAll(string(data)); err != nil {
			return history.Entry{}, false, fmt.Errorf("write clipboard: %w", err)
		}
	}
	if !c.useHistory && c.backend != nil {
		return history.Entry{}, false, nil
	}

	entry, err = c.history.Push(data)
	if err != nil {
		return history.Entry{}, false, err
	}
	c.log.Debug("clipboard cached", zap.String("entry", entry.Name()), zap.Int("bytes", len(data)))
	return entry, true, nil
}

// Get returns the clipboard contents, falling back to the latest history
// entry without a native clipboard.
func (c *Clipboard) Get() ([]byte, error) {
	if c.backend != nil {
		text, err := c.backend.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return []byte(text), nil
	}

	data, _, err := c.history.Latest()
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Clear empties the clipboard. Without a native clipboard an empty entry is
// pushed to history.
func (c *Clipboard) Clear() error {
	if c.backend != nil {
		if err := c.backend.WriteAll(""); err != nil {
			return fmt.Errorf("clear clipboard: %w", err)
		}
		return nil
	}
	_, err := c.history.Push()
	return err
}
