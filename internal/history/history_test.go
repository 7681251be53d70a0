package history

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddAndLen(t *testing.T) {
	h := New()
	h.Add("one")
	h.Add("two")
	if h.Len() != 2 {
		t.Errorf("len = %d, want 2", h.Len())
	}
}

func TestAddSkipsBlank(t *testing.T) {
	h := New()
	h.Add("")
	h.Add("   ")
	if h.Len() != 0 {
		t.Errorf("len = %d, want 0", h.Len())
	}
}

func TestAddDedupesConsecutive(t *testing.T) {
	h := New()
	h.Add("ls")
	h.Add("ls")
	h.Add("pwd")
	h.Add("ls")
	if h.Len() != 3 {
		t.Errorf("len = %d, want 3", h.Len())
	}
}

func TestMaxEntries(t *testing.T) {
	h := New(WithMaxEntries(2))
	h.Add("a")
	h.Add("b")
	h.Add("c")
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	if got := h.Lines(); got[0] != "b" || got[1] != "c" {
		t.Errorf("lines = %v", got)
	}
}

func TestNavigatePreviousNext(t *testing.T) {
	h := New()
	h.Add("first")
	h.Add("second")

	line, ok := h.Previous("draft")
	if !ok || line != "second" {
		t.Fatalf("previous = %q ok=%v", line, ok)
	}
	line, ok = h.Previous("ignored")
	if !ok || line != "first" {
		t.Fatalf("previous = %q ok=%v", line, ok)
	}
	// No older entry; position holds.
	if _, ok := h.Previous("ignored"); ok {
		t.Error("previous past oldest should report false")
	}
	line, ok = h.Next()
	if !ok || line != "second" {
		t.Fatalf("next = %q ok=%v", line, ok)
	}
	// Past the newest entry the stashed draft comes back.
	line, ok = h.Next()
	if !ok || line != "draft" {
		t.Fatalf("next = %q ok=%v, want stashed draft", line, ok)
	}
	if h.Navigating() {
		t.Error("walk should have ended after restoring the stash")
	}
}

func TestNavigatePrefix(t *testing.T) {
	h := New()
	h.Add("git status")
	h.Add("ls")
	h.Add("git push")

	h.StartPrefix("git ")
	line, ok := h.Previous("git ")
	if !ok || line != "git push" {
		t.Fatalf("previous = %q ok=%v", line, ok)
	}
	line, ok = h.Previous("")
	if !ok || line != "git status" {
		t.Fatalf("previous = %q ok=%v", line, ok)
	}
}

func TestNavigateSubstring(t *testing.T) {
	h := New()
	h.Add("make test")
	h.Add("ls")
	h.Add("go test ./...")

	h.StartSubstring("test")
	line, ok := h.Previous("")
	if !ok || line != "go test ./..." {
		t.Fatalf("previous = %q ok=%v", line, ok)
	}
	line, ok = h.Previous("")
	if !ok || line != "make test" {
		t.Fatalf("previous = %q ok=%v", line, ok)
	}
}

func TestAddResetsNavigation(t *testing.T) {
	h := New()
	h.Add("a")
	if _, ok := h.Previous("draft"); !ok {
		t.Fatal("expected a previous entry")
	}
	h.Add("b")
	if h.Navigating() {
		t.Error("add must reset the walk")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := New()
	h.Add("one")
	h.Add(`two "quoted"`)
	if err := h.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded := New()
	if err := loaded.Load(path); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("len = %d, want 2", loaded.Len())
	}
	lines := loaded.Lines()
	if lines[0] != "one" || lines[1] != `two "quoted"` {
		t.Errorf("lines = %v", lines)
	}
	for _, e := range loaded.Entries() {
		if e.ID == "" {
			t.Error("entry lost its id")
		}
		if e.When.IsZero() {
			t.Error("entry lost its timestamp")
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	h := New()
	if err := h.Load(filepath.Join(t.TempDir(), "nope.jsonl")); err != nil {
		t.Errorf("missing file should not error, got %v", err)
	}
}

func TestLoadSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"id":"1","when":"2026-01-02T03:04:05Z","line":"good"}
not json at all
{"id":"2"}
{"id":"3","when":"2026-01-02T03:04:06Z","line":"also good"}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	h := New()
	if err := h.Load(path); err != nil {
		t.Fatal(err)
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	if got := h.Lines(); got[0] != "good" || got[1] != "also good" {
		t.Errorf("lines = %v", got)
	}
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	h := New()
	h.Add("one")
	if err := h.Save(path); err != nil {
		t.Fatal(err)
	}
	if err := Append(path, Entry{ID: "x", Line: "two"}); err != nil {
		t.Fatal(err)
	}
	loaded := New()
	if err := loaded.Load(path); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("len = %d, want 2", loaded.Len())
	}
}
