// Package flatfile stores documents the way the published site reads them:
// an index JSON list, a snippet JSON map and one HTML artifact per post.
// Every write replaces the whole file atomically (temp file + rename), so a
// reader never sees a half-written file, but writes to different files are
// not coordinated.
package flatfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"folio/internal/domain"
)

// readFile returns the file contents, or nil when the file does not exist
// or holds only whitespace
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

// writeJSON pretty-prints v with four-space indentation and unescaped
// slashes and markup, matching the files the public site already consumes
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return writeFile(path, bytes.TrimRight(buf.Bytes(), "\n"))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// isEmptyJSONList reports whether data is an empty JSON array. Older site
// tooling wrote an empty snippet map as [].
func isEmptyJSONList(data []byte) bool {
	return string(bytes.Join(bytes.Fields(data), nil)) == "[]"
}

// checkID rejects ids that could escape the store directory
func checkID(id string) error {
	if id == "" || id == "." || id == ".." ||
		strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return &domain.ValidationError{Field: "id", Message: fmt.Sprintf("invalid document id %q", id)}
	}
	return nil
}
