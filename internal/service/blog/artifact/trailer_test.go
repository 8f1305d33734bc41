package artifact

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	models "folio/internal/domain/models/blog"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		blocks []models.Block
	}{
		{
			name: "all block types",
			blocks: []models.Block{
				{ID: "a", Content: models.HeaderContent{Level: "h2", Text: "Head"}},
				{ID: "b", Content: models.ParagraphContent{Text: "line one\nline two"}},
				{ID: "c", Content: models.CodeContent{Text: "x := <-ch"}},
				{ID: "d", Content: models.ImageContent{Src: "a.png", Caption: "cap"}},
				{ID: "e", Content: models.TextImageLeftContent{TextImage: models.TextImage{Text: "t", Src: "s"}}},
				{ID: "f", Content: models.TextImageRightContent{TextImage: models.TextImage{Text: "t", Src: "s", Caption: "c"}}},
				{ID: "g", Content: models.IframeContent{Src: "https://example.com"}},
			},
		},
		{
			name: "text containing the delimiters",
			blocks: []models.Block{
				{ID: "a", Content: models.ParagraphContent{Text: "tricky --> and <!-- EDITOR_DATA inside"}},
			},
		},
		{
			name:   "empty",
			blocks: []models.Block{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Encode("<div>markup</div>", tt.blocks)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			got, err := Decode(text)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(tt.blocks, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if m := Markup(text); m != "<div>markup</div>" {
				t.Errorf("Markup() = %q", m)
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	text, err := Encode("<p>x</p>", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "<p>x</p>\n<!-- EDITOR_DATA\n[]\n-->"
	if text != want {
		t.Errorf("Encode() = %q, want %q", text, want)
	}
}

func TestDecodeUsesLastTrailer(t *testing.T) {
	// Unescaped paragraph text may contain the opening marker
	markup := `<p><!-- EDITOR_DATA [{"id":"fake"}] --></p>`
	text, err := Encode(markup, []models.Block{{ID: "real", Content: models.CodeContent{Text: "ok"}}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "real" {
		t.Errorf("Decode() = %+v, want the appended trailer", got)
	}
	if Markup(text) != markup {
		t.Errorf("Markup() = %q", Markup(text))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		notFound bool
	}{
		{"no trailer", "<p>plain</p>", true},
		{"unterminated", "<p></p>\n<!-- EDITOR_DATA\n[]", true},
		{"bad json", "<p></p>\n<!-- EDITOR_DATA\n{not json\n-->", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			if err == nil {
				t.Fatal("Decode() error = nil")
			}
			if got := errors.Is(err, ErrTrailerNotFound); got != tt.notFound {
				t.Errorf("errors.Is(ErrTrailerNotFound) = %v, want %v (err %v)", got, tt.notFound, err)
			}
		})
	}
}

func TestDecodeNullTrailer(t *testing.T) {
	got, err := Decode("<p></p>\n<!-- EDITOR_DATA\nnull\n-->")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Decode(null) = %#v, want empty slice", got)
	}
}

func TestEncodedPayloadNeverContainsCloseMarker(t *testing.T) {
	text, err := Encode("", []models.Block{{ID: "x", Content: models.ParagraphContent{Text: "-->"}}})
	if err != nil {
		t.Fatal(err)
	}

	payload := strings.TrimSuffix(strings.TrimPrefix(text, "\n"+openMarker+"\n"), "\n"+closeMarker)
	if strings.Contains(payload, closeMarker) {
		t.Errorf("payload contains close marker: %s", payload)
	}
	if !json.Valid([]byte(payload)) {
		t.Errorf("payload is not valid JSON: %s", payload)
	}
}
