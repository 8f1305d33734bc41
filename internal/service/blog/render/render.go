// Package render turns a block sequence into the static markup published for
// a post.
//
// Trust boundary: paragraph and split-layout text is emitted without
// escaping so the limited inline formatting produced by the editor
// survives. Any markup an author types there reaches the published page.
// This is accepted for a single-author tool and must not be extended to
// untrusted input. Every other field (header text, code, src, caption) is
// escaped.
package render

import (
	"html"
	"strings"

	models "folio/internal/domain/models/blog"
	"folio/internal/service/blog/sanitizer"
)

// Result is the output of a render pass
type Result struct {
	Markup string
	// SnippetSource is the plain text of the first paragraph or split-layout
	// block with visible text, untruncated. Empty when there is none.
	SnippetSource string
}

const (
	containerOpen  = `<div class="prose max-w-none text-lg">`
	containerClose = `</div>`
)

// Render produces the markup for blocks in order. Unknown block types
// produce no output. Render is pure and deterministic.
func Render(blocks []models.Block) Result {
	var b strings.Builder
	var snippet string

	b.WriteString(containerOpen)

	for _, block := range blocks {
		switch c := block.Content.(type) {
		case models.HeaderContent:
			tag := c.Tag()
			b.WriteString(`<` + tag + ` class="text-2xl font-bold mt-6 mb-4 text-[var(--primary-color)]">`)
			b.WriteString(html.EscapeString(c.Text))
			b.WriteString(`</` + tag + `>`)

		case models.ParagraphContent:
			b.WriteString(`<p class="mb-4 leading-relaxed">`)
			b.WriteString(nl2br(c.Text))
			b.WriteString(`</p>`)
			snippet = firstText(snippet, c.Text)

		case models.CodeContent:
			b.WriteString(`<pre class="bg-gray-100 p-4 rounded-lg overflow-x-auto my-4 text-sm font-mono"><code>`)
			b.WriteString(html.EscapeString(c.Text))
			b.WriteString(`</code></pre>`)

		case models.ImageContent:
			b.WriteString(`<figure class="my-6"><img src="` + html.EscapeString(c.Src) +
				`" alt="` + html.EscapeString(c.Caption) + `" class="w-full rounded-lg shadow-md">`)
			if c.Caption != "" {
				b.WriteString(`<figcaption class="text-sm text-[var(--accent-color)] mt-2 text-center">`)
				b.WriteString(html.EscapeString(c.Caption))
				b.WriteString(`</figcaption>`)
			}
			b.WriteString(`</figure>`)

		case models.TextImageLeftContent:
			writeSplit(&b, "md:flex-row", c.TextImage)
			snippet = firstText(snippet, c.Text)

		case models.TextImageRightContent:
			writeSplit(&b, "md:flex-row-reverse", c.TextImage)
			snippet = firstText(snippet, c.Text)

		case models.IframeContent:
			b.WriteString(`<div class="my-6 w-full h-64 md:h-96"><iframe src="` + html.EscapeString(c.Src) +
				`" class="w-full h-full border-0 rounded-lg shadow-md"></iframe></div>`)

		default:
			// Unsupported or unknown block: skipped, never an error
		}
	}

	b.WriteString(containerClose)

	return Result{Markup: b.String(), SnippetSource: snippet}
}

func writeSplit(b *strings.Builder, direction string, c models.TextImage) {
	b.WriteString(`<div class="flex flex-col ` + direction + ` gap-6 my-6 items-center">`)
	b.WriteString(`<div class="md:w-1/2"><img src="` + html.EscapeString(c.Src) + `" class="w-full rounded-lg shadow-md"></div>`)
	b.WriteString(`<div class="md:w-1/2"><p>` + nl2br(c.Text) + `</p></div>`)
	b.WriteString(`</div>`)
}

// firstText keeps current once set, otherwise returns the plain text of
// candidate
func firstText(current, candidate string) string {
	if current != "" {
		return current
	}
	return sanitizer.PlainText(candidate)
}

var lineBreaks = strings.NewReplacer(
	"\r\n", "<br />\r\n",
	"\n\r", "<br />\n\r",
	"\n", "<br />\n",
	"\r", "<br />\r",
)

// nl2br inserts a line-break element before every newline sequence
func nl2br(s string) string {
	return lineBreaks.Replace(s)
}
