package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quip/internal/preview"
)

// Entry is a handle to one history file. It never holds the file contents;
// ModTime is the modification time observed at the last scan or write.
type Entry struct {
	Path    string
	ModTime time.Time
}

func newEntry(path string) Entry {
	e := Entry{Path: path}
	if info, err := os.Stat(path); err == nil {
		e.ModTime = info.ModTime()
	}
	return e
}

// Name is the identifier the entry is stored under.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

func (e Entry) Exists() bool {
	info, err := os.Stat(e.Path)
	return err == nil && info.Mode().IsRegular()
}

// LastModified stats the backing file. It fails if the file is gone.
func (e Entry) LastModified() (time.Time, error) {
	info, err := os.Stat(e.Path)
	if err != nil {
		return time.Time{}, fmt.Errorf("stat entry %s: %w", e.Name(), err)
	}
	return info.ModTime(), nil
}

func (e Entry) Size() (int64, error) {
	info, err := os.Stat(e.Path)
	if err != nil {
		return 0, fmt.Errorf("stat entry %s: %w", e.Name(), err)
	}
	return info.Size(), nil
}

func (e Entry) Read() ([]byte, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", e.Name(), err)
	}
	return data, nil
}

// Write truncates the backing file and writes each chunk in order.
func (e Entry) Write(data ...[]byte) error {
	f, err := os.OpenFile(e.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open entry %s: %w", e.Name(), err)
	}
	for _, chunk := range data {
		if _, err := f.Write(chunk); err != nil {
			f.Close()
			return fmt.Errorf("write entry %s: %w", e.Name(), err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close entry %s: %w", e.Name(), err)
	}
	return nil
}

// create writes a new backing file, failing if one already exists.
func (e Entry) create(data ...[]byte) error {
	f, err := os.OpenFile(e.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", e.Name(), err)
	}
	for _, chunk := range data {
		if _, err := f.Write(chunk); err != nil {
			f.Close()
			return fmt.Errorf("write entry %s: %w", e.Name(), err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close entry %s: %w", e.Name(), err)
	}
	return nil
}

// Clear truncates the backing file to zero length. Failures are ignored.
func (e Entry) Clear() {
	if f, err := os.OpenFile(e.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644); err == nil {
		f.Close()
	}
}

// Preview reads the entry and renders it with opts.
func (e Entry) Preview(opts preview.Options) (string, error) {
	data, err := e.Read()
	if err != nil {
		return "", err
	}
	return preview.Format(data, opts), nil
}
