package cmd

import (
	"testing"

	"quip/internal/config"
	"quip/internal/history"
	"quip/internal/preview"
)

func TestEntryAt(t *testing.T) {
	h, err := history.New(t.TempDir(), true)
	if err != nil {
		t.Fatalf("history.New error: %v", err)
	}
	for _, s := range []string{"old", "new"} {
		if _, err := h.Push([]byte(s)); err != nil {
			t.Fatalf("Push error: %v", err)
		}
	}

	e, err := entryAt(h, "1")
	if err != nil {
		t.Fatalf("entryAt error: %v", err)
	}
	if e.Name() != "1" {
		t.Errorf("entryAt(1) = %q, want entry 1", e.Name())
	}

	for _, bad := range []string{"2", "-1", "x"} {
		if _, err := entryAt(h, bad); err == nil {
			t.Errorf("entryAt(%q) should fail", bad)
		}
	}
}

func TestPreviewOptions(t *testing.T) {
	cfg = config.Default()
	quiet = false

	opts, err := previewOptions()
	if err != nil {
		t.Fatalf("previewOptions error: %v", err)
	}
	if opts != preview.Default() {
		t.Errorf("previewOptions = %+v, want defaults", opts)
	}

	if err := rootCmd.PersistentFlags().Set("dim", "80:"); err != nil {
		t.Fatal(err)
	}
	quiet = true
	t.Cleanup(func() { quiet = false })

	opts, err = previewOptions()
	if err != nil {
		t.Fatalf("previewOptions error: %v", err)
	}
	want := preview.Options{Width: 80, Lines: preview.Unlimited, Ellipsis: false}
	if opts != want {
		t.Errorf("previewOptions = %+v, want %+v", opts, want)
	}
}
