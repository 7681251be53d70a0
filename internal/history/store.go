package history

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Load reads entries from a JSON-lines file into the history, oldest
// first. A missing file is not an error. Lines that fail to parse are
// skipped so one corrupt record never loses the rest of the file.
func (h *History) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !gjson.Valid(line) {
			continue
		}
		text := gjson.Get(line, "line")
		if !text.Exists() {
			continue
		}
		e := Entry{
			ID:   gjson.Get(line, "id").String(),
			Line: text.String(),
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if when, err := time.Parse(time.RFC3339, gjson.Get(line, "when").String()); err == nil {
			e.When = when
		}
		h.entries = append(h.entries, e)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read history file: %w", err)
	}
	h.trim()
	h.ResetNavigation()
	return nil
}

// Save writes all entries to path as JSON lines, replacing the file.
// The parent directory is created if needed.
func (h *History) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	var buf bytes.Buffer
	for _, e := range h.entries {
		buf.WriteString(marshalEntry(e))
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Append adds one entry to the end of the file without rewriting it.
func Append(path string, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(marshalEntry(e) + "\n"); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

func marshalEntry(e Entry) string {
	out, _ := sjson.Set("", "id", e.ID)
	out, _ = sjson.Set(out, "when", e.When.UTC().Format(time.RFC3339))
	out, _ = sjson.Set(out, "line", e.Line)
	return out
}
