package history

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"
)

var removeAll = os.RemoveAll

// History mirrors a history directory as a sequence of entries sorted
// newest-first by modification time.
type History struct {
	dir            string
	entries        []Entry
	seq            *Sequencer
	followSymlinks bool
	log            *zap.Logger
}

type Option func(*History)

func WithLogger(l *zap.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.log = l
		}
	}
}

// WithSymlinks includes symlinks that resolve to regular files in scans.
// By default symlinks are skipped.
func WithSymlinks(follow bool) Option {
	return func(h *History) {
		h.followSymlinks = follow
	}
}

// New opens the history stored in dir. When initialize is set the directory
// is created if needed and scanned recursively; otherwise the sequence starts
// empty and identifiers start at 1 until the first Refresh.
func New(dir string, initialize bool, opts ...Option) (*History, error) {
	h := &History{
		dir: filepath.Clean(dir),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}

	if initialize {
		if err := h.ensureDir(); err != nil {
			return nil, err
		}
		entries, err := h.scanAll()
		if err != nil {
			return nil, err
		}
		sortEntries(entries)
		h.entries = entries
	}

	seed, skipped := largestIdentifier(h.entries)
	if len(skipped) > 0 {
		h.log.Debug("ignoring entries without a hex identifier", zap.Strings("names", skipped))
	}
	h.seq = NewSequencer(seed)
	h.log.Debug("history opened",
		zap.String("dir", h.dir),
		zap.Int("entries", len(h.entries)),
		zap.String("last_id", FormatIdentifier(seed)),
	)
	return h, nil
}

func (h *History) Dir() string {
	return h.dir
}

func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the sequence, newest first.
func (h *History) Entries() []Entry {
	return slices.Clone(h.entries)
}

// All iterates the sequence newest first, yielding age index and entry.
func (h *History) All() iter.Seq2[int, Entry] {
	return slices.All(h.entries)
}

// Backward iterates the sequence oldest first, yielding age index and entry.
func (h *History) Backward() iter.Seq2[int, Entry] {
	return slices.Backward(h.entries)
}

// Refresh adds regular files from the top level of the directory that are
// not yet known, updates cached modification times and re-sorts. Entries
// whose files have disappeared are kept. The sequencer is moved past any
// larger identifier found.
func (h *History) Refresh() error {
	dirEntries, err := os.ReadDir(h.dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read history dir: %w", err)
	}

	known := make(map[string]struct{}, len(h.entries))
	for i, e := range h.entries {
		known[e.Path] = struct{}{}
		if info, err := os.Stat(e.Path); err == nil {
			h.entries[i].ModTime = info.ModTime()
		}
	}

	added := 0
	for _, d := range dirEntries {
		path := filepath.Join(h.dir, d.Name())
		if _, ok := known[path]; ok {
			continue
		}
		e, ok := h.entryFor(path, d)
		if !ok {
			continue
		}
		h.entries = append(h.entries, e)
		known[path] = struct{}{}
		added++
	}

	sortEntries(h.entries)
	if seed, _ := largestIdentifier(h.entries); seed > h.seq.count {
		h.seq.count = seed
	}
	h.log.Debug("history refreshed", zap.Int("added", added), zap.Int("entries", len(h.entries)))
	return nil
}

// Push writes the concatenation of data to a new entry and puts it at the
// front of the sequence. An identifier is consumed even if the write fails;
// once identifiers run out every push fails with ErrExhausted.
func (h *History) Push(data ...[]byte) (Entry, error) {
	if err := h.ensureDir(); err != nil {
		return Entry{}, err
	}

	name, err := h.seq.Next()
	if err != nil {
		h.log.Warn("failed to push history entry", zap.Error(err))
		return Entry{}, fmt.Errorf("push: %w", err)
	}

	// existing files are never overwritten, even when the sequence was not initialised
	e := Entry{Path: filepath.Join(h.dir, name)}
	if err := e.create(data...); err != nil {
		h.log.Warn("failed to push history entry", zap.String("entry", e.Name()), zap.Error(err))
		return Entry{}, fmt.Errorf("push: %w", err)
	}

	e = newEntry(e.Path)
	if e.ModTime.IsZero() {
		e.ModTime = time.Now()
	}
	h.entries = slices.Insert(h.entries, 0, e)
	return e, nil
}

// Get returns the entry at the given age; 0 is the most recent.
func (h *History) Get(age int) (Entry, bool) {
	if age < 0 || age >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[age], true
}

// GetByName returns the first entry whose identifier equals name.
func (h *History) GetByName(name string) (Entry, bool) {
	i := slices.IndexFunc(h.entries, func(e Entry) bool { return e.Name() == name })
	if i < 0 {
		return Entry{}, false
	}
	return h.entries[i], true
}

// GetByTime returns the first entry modified exactly at t.
func (h *History) GetByTime(t time.Time) (Entry, bool) {
	i := slices.IndexFunc(h.entries, func(e Entry) bool { return e.ModTime.Equal(t) })
	if i < 0 {
		return Entry{}, false
	}
	return h.entries[i], true
}

// Latest returns the contents of the most recent entry. ok is false when the
// history is empty.
func (h *History) Latest() (data []byte, ok bool, err error) {
	if len(h.entries) == 0 {
		return nil, false, nil
	}
	data, err = h.entries[0].Read()
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

// DeleteAll forgets every entry and removes the history directory. It
// returns the number of filesystem objects removed, the directory included,
// so a missing directory yields 0.
func (h *History) DeleteAll() (int, error) {
	h.entries = nil

	count := 0
	err := filepath.WalkDir(h.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		count++
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("scan history dir: %w", err)
	}

	if err := removeAll(h.dir); err != nil {
		return 0, fmt.Errorf("remove history dir: %w", err)
	}
	h.log.Debug("history deleted", zap.String("dir", h.dir), zap.Int("removed", count))
	return count, nil
}

// DeleteOlderThan refreshes the sequence, then removes every entry modified
// strictly before threshold and returns how many were removed.
func (h *History) DeleteOlderThan(threshold time.Time) (int, error) {
	if err := h.Refresh(); err != nil {
		return 0, err
	}

	// sorted newest first, so everything from the first old entry on is old
	start := slices.IndexFunc(h.entries, func(e Entry) bool { return e.ModTime.Before(threshold) })
	if start < 0 {
		return 0, nil
	}

	for i, e := range h.entries[start:] {
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.entries = slices.Delete(h.entries, start, start+i)
			return i, fmt.Errorf("remove entry %s: %w", e.Name(), err)
		}
	}

	count := len(h.entries) - start
	clear(h.entries[start:])
	h.entries = h.entries[:start]
	h.log.Debug("history pruned", zap.Time("threshold", threshold), zap.Int("removed", count))
	return count, nil
}

func (h *History) ensureDir() error {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	return nil
}

func (h *History) scanAll() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(h.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if e, ok := h.entryFor(path, d); ok {
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan history dir: %w", err)
	}
	return entries, nil
}

// entryFor decides whether a directory listing item is a history entry.
func (h *History) entryFor(path string, d fs.DirEntry) (Entry, bool) {
	switch {
	case d.Type().IsRegular():
		info, err := d.Info()
		if err != nil {
			return Entry{}, false
		}
		return Entry{Path: path, ModTime: info.ModTime()}, true
	case d.Type()&fs.ModeSymlink != 0 && h.followSymlinks:
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return Entry{}, false
		}
		return Entry{Path: path, ModTime: info.ModTime()}, true
	}
	return Entry{}, false
}

// sortEntries orders newest first. Equal times fall back to the larger
// identifier so coarse filesystem clocks keep push order.
func sortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		an, aerr := ParseIdentifier(a.Name())
		bn, berr := ParseIdentifier(b.Name())
		switch {
		case aerr == nil && berr == nil:
			return cmp.Compare(bn, an)
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		}
		return 0
	})
}
