package clipboard

import (
	"errors"
	"testing"

	"quip/internal/history"
)

type fakeBackend struct {
	text     string
	writeErr error
	writes   int
}

func (f *fakeBackend) ReadAll() (string, error) { return f.text, nil }

func (f *fakeBackend) WriteAll(text string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	f.text = text
	return nil
}

func newHistory(t *testing.T) *history.History {
	t.Helper()
	h, err := history.New(t.TempDir(), true)
	if err != nil {
		t.Fatalf("history.New error: %v", err)
	}
	return h
}

func TestSet_NativeWithHistory(t *testing.T) {
	h := newHistory(t)
	fb := &fakeBackend{}
	c := New(h, true, WithBackend(fb))

	entry, pushed, err := c.Set([]byte("copied"))
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if !pushed || entry.Name() != "1" {
		t.Errorf("Set pushed = %v, entry = %q; want true, 1", pushed, entry.Name())
	}
	if fb.text != "copied" {
		t.Errorf("native text = %q, want %q", fb.text, "copied")
	}
	if h.Len() != 1 {
		t.Errorf("history Len = %d, want 1", h.Len())
	}

	got, err := c.Get()
	if err != nil || string(got) != "copied" {
		t.Errorf("Get = %q, %v", got, err)
	}
}

func TestSet_NativeWithoutHistory(t *testing.T) {
	h := newHistory(t)
	c := New(h, false, WithBackend(&fakeBackend{}))

	if _, pushed, err := c.Set([]byte("x")); err != nil || pushed {
		t.Errorf("Set = pushed %v, err %v; want false, nil", pushed, err)
	}
	if h.Len() != 0 {
		t.Errorf("history Len = %d, want 0", h.Len())
	}
}

func TestSet_NativeFailure(t *testing.T) {
	h := newHistory(t)
	c := New(h, true, WithBackend(&fakeBackend{writeErr: errors.New("no display")}))

	if _, _, err := c.Set([]byte("x")); err == nil {
		t.Fatal("expected Set to fail")
	}
	if h.Len() != 0 {
		t.Errorf("history Len = %d, want 0 after failed write", h.Len())
	}
}

func TestHistoryFallback(t *testing.T) {
	h := newHistory(t)
	c := New(h, false, WithBackend(nil))
	if c.Native() {
		t.Fatal("Native = true, want false")
	}

	got, err := c.Get()
	if err != nil || len(got) != 0 {
		t.Errorf("Get on empty history = %q, %v", got, err)
	}

	if _, pushed, err := c.Set([]byte("fallback")); err != nil || !pushed {
		t.Fatalf("Set = pushed %v, err %v", pushed, err)
	}
	got, err = c.Get()
	if err != nil || string(got) != "fallback" {
		t.Errorf("Get = %q, %v; want fallback", got, err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	got, err = c.Get()
	if err != nil || len(got) != 0 {
		t.Errorf("Get after Clear = %q, %v; want empty", got, err)
	}
	if h.Len() != 2 {
		t.Errorf("history Len = %d, want 2", h.Len())
	}
}

func TestClear_Native(t *testing.T) {
	fb := &fakeBackend{text: "something"}
	c := New(newHistory(t), true, WithBackend(fb))
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if fb.text != "" {
		t.Errorf("native text = %q, want empty", fb.text)
	}
}
