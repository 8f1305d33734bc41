package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"folio/internal/domain"
)

const sampleMarkup = `<div class="prose max-w-none text-lg">` +
	`<h2 class="text-2xl">Intro</h2>` +
	`<p class="mb-4 leading-relaxed">Hello <strong>world</strong><br />
second line</p>` +
	`<pre><code>x &lt; y</code></pre>` +
	`<p class="mb-4 leading-relaxed">Bye<script>alert(1)</script></p>` +
	`</div>`

func TestRegistryFormats(t *testing.T) {
	r := NewRegistry()
	if diff := cmp.Diff([]string{"html", "markdown", "text"}, r.Formats()); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
	if r.Get("TEXT") == nil {
		t.Error("Get is not case-insensitive")
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	_, _, err := NewRegistry().Export(context.Background(), "docx", sampleMarkup)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Export() error = %v, want ErrValidation", err)
	}
}

func TestExporters(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		format   string
		contains []string
		excludes []string
	}{
		{
			format:   "html",
			contains: []string{sampleMarkup},
		},
		{
			format:   "markdown",
			contains: []string{"## Intro", "**world**", "x < y"},
			excludes: []string{"<script>", "alert(1)"},
		},
		{
			format:   "text",
			contains: []string{"Intro\n", "Hello world\n", "second line", "x < y"},
			excludes: []string{"<p", "<br", "strong", "alert(1)", "\n\n\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			body, exporter, err := r.Export(context.Background(), tt.format, sampleMarkup)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if exporter.Format() != tt.format {
				t.Errorf("Format() = %q", exporter.Format())
			}
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("%s export missing %q:\n%s", tt.format, s, body)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(body, s) {
					t.Errorf("%s export contains %q:\n%s", tt.format, s, body)
				}
			}
		})
	}
}
