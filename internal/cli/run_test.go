package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/blocktypes"
	"folio/internal/repository/flatfile"
	"folio/internal/search"
	serviceBlog "folio/internal/service/blog"
	"folio/internal/service/blog/export"
)

// flatfileOpener returns an open func over flat-file stores in dir, counting
// how often services are built
func flatfileOpener(t *testing.T, dir string, opened *int) func(string) func(context.Context) (*Services, error) {
	t.Helper()
	return func(string) func(context.Context) (*Services, error) {
		return func(ctx context.Context) (*Services, error) {
			*opened++
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			index := flatfile.NewIndexRepository(filepath.Join(dir, "BlogData.json"))
			snippets := flatfile.NewSnippetRepository(filepath.Join(dir, "Snippets.json"))
			artifacts := flatfile.NewArtifactRepository(filepath.Join(dir, "blogs"))
			uploads := flatfile.NewUploadStore(filepath.Join(dir, "uploads"), "/uploads/")

			idx, err := search.NewMemOnly()
			if err != nil {
				return nil, err
			}
			blocks, err := blocktypes.NewRegistry()
			if err != nil {
				return nil, err
			}

			return &Services{
				Docs:      serviceBlog.NewDocumentService(index, snippets, artifacts, uploads, idx, export.NewRegistry(), logger),
				Search:    serviceBlog.NewSearchService(index, snippets, idx, logger),
				Reconcile: serviceBlog.NewReconcileService(index, snippets, artifacts, logger),
				Blocks:    blocks,
				Logger:    logger,
				close:     idx.Close,
			}, nil
		}
	}
}

func runCLI(t *testing.T, open func(string) func(context.Context) (*Services, error), args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr, open)
	return code, stdout.String(), stderr.String()
}

func TestRunWorkflow(t *testing.T) {
	dir := t.TempDir()
	var opened int
	open := flatfileOpener(t, dir, &opened)

	code, out, errOut := runCLI(t, open, "seed")
	if code != 0 {
		t.Fatalf("seed exit = %d, stderr = %s", code, errOut)
	}
	for _, id := range []string{"hello-folio", "working-with-images", "reconciling-stores"} {
		if !strings.Contains(out, "Created "+id+"\n") {
			t.Errorf("seed output missing %s:\n%s", id, out)
		}
	}

	code, out, _ = runCLI(t, open, "list", "--recent")
	if code != 0 {
		t.Fatalf("list exit = %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "ID") || !strings.HasPrefix(lines[1], "reconciling-stores") {
		t.Errorf("list --recent output:\n%s", out)
	}

	code, out, _ = runCLI(t, open, "show", "hello-folio")
	if code != 0 {
		t.Fatalf("show exit = %d", code)
	}
	var shown struct {
		Title  string            `json:"title"`
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("show output is not JSON: %v\n%s", err, out)
	}
	if shown.Title != "Hello, Folio" || len(shown.Blocks) != 3 {
		t.Errorf("show = %+v", shown)
	}

	code, out, _ = runCLI(t, open, "export", "hello-folio", "-f", "text")
	if code != 0 || !strings.Contains(out, "Hello, Folio") || strings.Contains(out, "<h1") {
		t.Errorf("export exit = %d, output:\n%s", code, out)
	}

	code, out, _ = runCLI(t, open, "reindex")
	if code != 0 || out != "Indexed 3 posts\n" {
		t.Errorf("reindex exit = %d, output = %q", code, out)
	}

	code, out, _ = runCLI(t, open, "reconcile", "--dry-run")
	if code != 0 || !strings.Contains(out, `"dry_run": true`) {
		t.Errorf("reconcile exit = %d, output:\n%s", code, out)
	}

	code, out, _ = runCLI(t, open, "delete", "hello-folio")
	if code != 0 || out != "Deleted hello-folio\n" {
		t.Errorf("delete exit = %d, output = %q", code, out)
	}

	code, _, errOut = runCLI(t, open, "show", "hello-folio")
	if code != 1 || !strings.Contains(errOut, "not found") {
		t.Errorf("show after delete exit = %d, stderr = %q", code, errOut)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", nil, 1, "", "Usage: folioctl"},
		{"global help", []string{"--help"}, 0, "Commands:", ""},
		{"unknown command", []string{"publish"}, 1, "", `unknown command "publish"`},
		{"command help", []string{"reconcile", "--help"}, 0, "--dry-run", ""},
		{"bad flag", []string{"list", "--nope"}, 1, "", "unknown flag"},
		{"missing id", []string{"show"}, 1, "", "document id required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opened int
			code, out, errOut := runCLI(t, flatfileOpener(t, t.TempDir(), &opened), tt.args...)

			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d", code, tt.wantCode)
			}
			if tt.wantStdout != "" && !strings.Contains(out, tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", out, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(errOut, tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", errOut, tt.wantStderr)
			}
			if opened != 0 {
				t.Errorf("services opened %d times for a usage error", opened)
			}
		})
	}
}

func TestRunOpenFailure(t *testing.T) {
	open := func(string) func(context.Context) (*Services, error) {
		return func(context.Context) (*Services, error) {
			return nil, errors.New("DATABASE_URL is required")
		}
	}

	code, _, errOut := runCLI(t, open, "list")
	if code != 1 || !strings.Contains(errOut, "DATABASE_URL is required") {
		t.Errorf("exit = %d, stderr = %q", code, errOut)
	}
}

func TestRunPassesEnvFile(t *testing.T) {
	var got string
	open := func(envFile string) func(context.Context) (*Services, error) {
		got = envFile
		return func(context.Context) (*Services, error) {
			return nil, errors.New("stop")
		}
	}

	runCLI(t, open, "--env-file", "staging.env", "reindex")
	if got != "staging.env" {
		t.Errorf("env file = %q, want staging.env", got)
	}
}
