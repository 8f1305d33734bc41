package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "db", "folio.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestIndexRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIndexRepository(openTestDB(t))

	a := models.IndexEntry{ID: "a", Title: "A", Authors: []string{"Ada", "Grace"}, Date: "d1"}
	b := models.IndexEntry{ID: "b", Title: "B", Authors: []string{}, Date: "d2", Thumbnail: "/t.png"}
	for _, e := range []models.IndexEntry{a, b} {
		if err := repo.Put(ctx, e); err != nil {
			t.Fatalf("Put(%s) error = %v", e.ID, err)
		}
	}

	a.Title = "A2"
	if err := repo.Put(ctx, a); err != nil {
		t.Fatalf("Put(a) error = %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]models.IndexEntry{a, b}, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.Get(ctx, "zzz"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	entry, err := repo.Get(ctx, "b")
	if err != nil {
		t.Fatalf("Get(b) error = %v", err)
	}
	if diff := cmp.Diff(b, *entry); diff != "" {
		t.Errorf("Get(b) mismatch (-want +got):\n%s", diff)
	}
}

func TestSnippetRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSnippetRepository(openTestDB(t))

	if err := repo.Put(ctx, "a", "one"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Put(ctx, "a", "two"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Put(ctx, "b", "three"); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(ctx, "a")
	if err != nil || got != "two" {
		t.Errorf("Get(a) = %q, %v", got, err)
	}

	if err := repo.Delete(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(b) error = %v, want ErrNotFound", err)
	}

	all, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if diff := cmp.Diff(map[string]string{"a": "two"}, all); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestArtifactRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewArtifactRepository(openTestDB(t))

	for _, id := range []string{"z", "m", "a"} {
		if err := repo.Put(ctx, id, "<p>"+id+"</p>"); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Put(ctx, "m", "<p>updated</p>"); err != nil {
		t.Fatal(err)
	}

	ids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "m", "z"}, ids); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	got, err := repo.Get(ctx, "m")
	if err != nil || got != "<p>updated</p>" {
		t.Errorf("Get(m) = %q, %v", got, err)
	}

	exists, err := repo.Exists(ctx, "q")
	if err != nil || exists {
		t.Errorf("Exists(q) = %v, %v", exists, err)
	}

	if err := repo.Delete(ctx, "m"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(ctx, "m"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get(m) after delete error = %v, want ErrNotFound", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "folio.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewSnippetRepository(db).Put(ctx, "kept", "yes"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	got, err := NewSnippetRepository(db).Get(ctx, "kept")
	if err != nil || got != "yes" {
		t.Errorf("Get(kept) after reopen = %q, %v", got, err)
	}
}
