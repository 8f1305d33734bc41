package blog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BlockType identifies the variant of a content block
type BlockType string

const (
	BlockTypeHeader         BlockType = "header"
	BlockTypeParagraph      BlockType = "paragraph"
	BlockTypeCode           BlockType = "code"
	BlockTypeImage          BlockType = "image"
	BlockTypeTextImageLeft  BlockType = "text-image-left"
	BlockTypeTextImageRight BlockType = "text-image-right"
	BlockTypeIframe         BlockType = "iframe"
)

// KnownBlockTypes lists every block type the renderer understands, in
// editor palette order.
var KnownBlockTypes = []BlockType{
	BlockTypeHeader,
	BlockTypeParagraph,
	BlockTypeCode,
	BlockTypeImage,
	BlockTypeTextImageLeft,
	BlockTypeTextImageRight,
	BlockTypeIframe,
}

// IsKnown reports whether t is one of the supported block types
func (t BlockType) IsKnown() bool {
	for _, known := range KnownBlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DefaultHeaderLevel is used when a header carries no valid level
const DefaultHeaderLevel = "h2"

// BlockContent is the typed payload of a block. The set of implementations
// is closed; anything the schema does not recognise decodes to
// UnknownContent so it survives a load/save cycle untouched.
type BlockContent interface {
	BlockType() BlockType
	isBlockContent()
}

// HeaderContent is a heading of level h1..h6
type HeaderContent struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// ParagraphContent holds rich text. Text may carry inline markup from the
// editor and is rendered unescaped.
type ParagraphContent struct {
	Text string `json:"text"`
}

// CodeContent is a preformatted code listing
type CodeContent struct {
	Text string `json:"text"`
}

// ImageContent is a standalone figure
type ImageContent struct {
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// TextImage is the shared payload of the two split layouts
type TextImage struct {
	Text    string `json:"text"`
	Src     string `json:"src"`
	Caption string `json:"caption"`
}

// TextImageLeftContent renders the image in the left column
type TextImageLeftContent struct {
	TextImage
}

// TextImageRightContent renders the image in the right column
type TextImageRightContent struct {
	TextImage
}

// IframeContent is an embedded frame
type IframeContent struct {
	Src string `json:"src"`
}

// UnknownContent preserves a block whose type is not supported
type UnknownContent struct {
	Type BlockType
	Raw  json.RawMessage
}

func (HeaderContent) BlockType() BlockType         { return BlockTypeHeader }
func (ParagraphContent) BlockType() BlockType      { return BlockTypeParagraph }
func (CodeContent) BlockType() BlockType           { return BlockTypeCode }
func (ImageContent) BlockType() BlockType          { return BlockTypeImage }
func (TextImageLeftContent) BlockType() BlockType  { return BlockTypeTextImageLeft }
func (TextImageRightContent) BlockType() BlockType { return BlockTypeTextImageRight }
func (IframeContent) BlockType() BlockType         { return BlockTypeIframe }
func (c UnknownContent) BlockType() BlockType      { return c.Type }

func (HeaderContent) isBlockContent()         {}
func (ParagraphContent) isBlockContent()      {}
func (CodeContent) isBlockContent()           {}
func (ImageContent) isBlockContent()          {}
func (TextImageLeftContent) isBlockContent()  {}
func (TextImageRightContent) isBlockContent() {}
func (IframeContent) isBlockContent()         {}
func (UnknownContent) isBlockContent()        {}

// Tag returns the heading element name, falling back to DefaultHeaderLevel
// when Level is not h1..h6.
func (c HeaderContent) Tag() string {
	if IsHeaderLevel(c.Level) {
		return c.Level
	}
	return DefaultHeaderLevel
}

// IsHeaderLevel reports whether level is one of h1..h6
func IsHeaderLevel(level string) bool {
	return len(level) == 2 && level[0] == 'h' && level[1] >= '1' && level[1] <= '6'
}

// Block is one addressable unit of a document
type Block struct {
	ID      string
	Content BlockContent
}

// Type returns the block's variant
func (b Block) Type() BlockType {
	if b.Content == nil {
		return ""
	}
	return b.Content.BlockType()
}

// Src returns the media reference of image-bearing blocks, or "" for
// blocks without one.
func (b Block) Src() string {
	switch c := b.Content.(type) {
	case ImageContent:
		return c.Src
	case TextImageLeftContent:
		return c.Src
	case TextImageRightContent:
		return c.Src
	case IframeContent:
		return c.Src
	default:
		return ""
	}
}

// AcceptsUpload reports whether an uploaded file can be bound to the block
func (b Block) AcceptsUpload() bool {
	switch b.Content.(type) {
	case ImageContent, TextImageLeftContent, TextImageRightContent:
		return true
	default:
		return false
	}
}

// WithSrc returns a copy of the block with its media reference replaced.
// Blocks that do not accept uploads are returned unchanged.
func (b Block) WithSrc(src string) Block {
	switch c := b.Content.(type) {
	case ImageContent:
		c.Src = src
		b.Content = c
	case TextImageLeftContent:
		c.Src = src
		b.Content = c
	case TextImageRightContent:
		c.Src = src
		b.Content = c
	}
	return b
}

// blockJSON is the wire shape shared by the editor payload and the
// artifact trailer: {"id": ..., "type": ..., "content": {...}}
type blockJSON struct {
	ID      string          `json:"id"`
	Type    BlockType       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON implements json.Marshaler
func (b Block) MarshalJSON() ([]byte, error) {
	wire := blockJSON{ID: b.ID, Type: b.Type()}

	switch c := b.Content.(type) {
	case nil:
		wire.Content = json.RawMessage(`{}`)
	case UnknownContent:
		if len(c.Raw) == 0 {
			wire.Content = json.RawMessage(`{}`)
		} else {
			wire.Content = c.Raw
		}
	default:
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("marshal %s block content: %w", wire.Type, err)
		}
		wire.Content = raw
	}

	return json.Marshal(wire)
}

// UnmarshalJSON implements json.Unmarshaler. Missing or null content fields
// decode to "", and fields a known type does not define are dropped.
func (b *Block) UnmarshalJSON(data []byte) error {
	var wire blockJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	content, err := decodeContent(wire.Type, wire.Content)
	if err != nil {
		return fmt.Errorf("block %q: %w", wire.ID, err)
	}

	b.ID = wire.ID
	b.Content = content
	return nil
}

func decodeContent(t BlockType, raw json.RawMessage) (BlockContent, error) {
	if isNullJSON(raw) {
		raw = json.RawMessage(`{}`)
	}

	var content BlockContent
	var err error

	switch t {
	case BlockTypeHeader:
		var c HeaderContent
		err = unmarshalContent(raw, &c)
		content = c
	case BlockTypeParagraph:
		var c ParagraphContent
		err = unmarshalContent(raw, &c)
		content = c
	case BlockTypeCode:
		var c CodeContent
		err = unmarshalContent(raw, &c)
		content = c
	case BlockTypeImage:
		var c ImageContent
		err = unmarshalContent(raw, &c)
		content = c
	case BlockTypeTextImageLeft:
		var c TextImageLeftContent
		err = unmarshalContent(raw, &c.TextImage)
		content = c
	case BlockTypeTextImageRight:
		var c TextImageRightContent
		err = unmarshalContent(raw, &c.TextImage)
		content = c
	case BlockTypeIframe:
		var c IframeContent
		err = unmarshalContent(raw, &c)
		content = c
	default:
		content = UnknownContent{Type: t, Raw: compactRaw(raw)}
	}

	return content, err
}

// compactRaw returns a compacted copy of raw, or a plain copy if raw does not
// compact
func compactRaw(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return append(json.RawMessage(nil), raw...)
	}
	return json.RawMessage(buf.Bytes())
}

func unmarshalContent(raw json.RawMessage, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	return nil
}

func isNullJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || strings.EqualFold(string(trimmed), "null")
}
