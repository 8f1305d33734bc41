package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	blogRepo "folio/internal/domain/repositories/blog"
)

// unsafeNameChars matches everything outside ASCII letters, digits, Latin
// accented letters, dot, underscore and hyphen
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9\x{00C0}-\x{024F}\x{1E00}-\x{1EFF}._-]`)

// UploadStore writes uploaded media into a directory served under urlPrefix
type UploadStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

// NewUploadStore creates an upload sink writing to dir. Stored files are
// addressed as urlPrefix + file name.
func NewUploadStore(dir, urlPrefix string) blogRepo.UploadStore {
	return newUploadStore(dir, urlPrefix, time.Now)
}

func newUploadStore(dir, urlPrefix string, now func() time.Time) *UploadStore {
	if urlPrefix != "" && !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &UploadStore{dir: dir, urlPrefix: urlPrefix, now: now}
}

// Store saves r as <unix-seconds>_<sanitized name>. A short random token is
// added when that name is already taken.
func (s *UploadStore) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	base := SanitizeFilename(filename)
	stamp := s.now().Unix()
	name := fmt.Sprintf("%d_%s", stamp, base)

	if _, err := os.Stat(filepath.Join(s.dir, name)); err == nil {
		name = fmt.Sprintf("%d_%s_%s", stamp, uuid.NewString()[:8], base)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat upload %s: %w", name, err)
	}

	if err := atomic.WriteFile(filepath.Join(s.dir, name), r); err != nil {
		return "", fmt.Errorf("write upload %s: %w", name, err)
	}

	return s.urlPrefix + name, nil
}

// SanitizeFilename reduces a client-supplied file name to a safe base name
func SanitizeFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	name = unsafeNameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "upload"
	}
	return name
}
