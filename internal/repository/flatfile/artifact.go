package flatfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
)

const artifactExt = ".html"

// ArtifactRepository stores each artifact as <dir>/<id>.html
type ArtifactRepository struct {
	dir string
}

// NewArtifactRepository creates an artifact store rooted at dir
func NewArtifactRepository(dir string) blogRepo.ArtifactRepository {
	return &ArtifactRepository{dir: dir}
}

func (r *ArtifactRepository) Get(ctx context.Context, id string) (string, error) {
	if err := checkID(id); err != nil {
		return "", err
	}

	data, err := os.ReadFile(r.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("artifact %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read artifact %s: %w", id, err)
	}
	return string(data), nil
}

func (r *ArtifactRepository) Put(ctx context.Context, id, content string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return writeFile(r.path(id), []byte(content))
}

func (r *ArtifactRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	err := os.Remove(r.path(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove artifact %s: %w", id, err)
	}
	return nil
}

func (r *ArtifactRepository) Exists(ctx context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}

	_, err := os.Stat(r.path(id))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat artifact %s: %w", id, err)
	}
}

func (r *ArtifactRepository) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	ids := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), artifactExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), artifactExt))
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ArtifactRepository) path(id string) string {
	return filepath.Join(r.dir, id+artifactExt)
}
