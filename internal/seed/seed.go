// Package seed creates sample posts for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"folio/internal/blocktypes"
	models "folio/internal/domain/models/blog"
	blogSvc "folio/internal/domain/services/blog"
)

// sampleBlock is a block type plus the content fields that differ from the
// catalog defaults
type sampleBlock struct {
	Type   models.BlockType
	Fields map[string]string
}

// samplePost is one seeded document
type samplePost struct {
	Title   string
	Authors string
	Date    string
	Blocks  []sampleBlock
}

func samplePosts() []samplePost {
	return []samplePost{
		{
			Title:   "Hello, Folio",
			Authors: "Ada Lovelace",
			Date:    "January 5, 2025",
			Blocks: []sampleBlock{
				{Type: models.BlockTypeHeader, Fields: map[string]string{"level": "h1", "text": "Hello, Folio"}},
				{Type: models.BlockTypeParagraph, Fields: map[string]string{
					"text": "Posts are built from <strong>blocks</strong>.\nEach block renders to a fixed HTML fragment.",
				}},
				{Type: models.BlockTypeCode, Fields: map[string]string{"text": "fmt.Println(\"hello\")"}},
			},
		},
		{
			Title:   "Working With Images",
			Authors: "Grace Hopper, Ada Lovelace",
			Date:    "February 12, 2025",
			Blocks: []sampleBlock{
				{Type: models.BlockTypeParagraph, Fields: map[string]string{
					"text": "Image blocks accept an upload when the post is saved.",
				}},
				{Type: models.BlockTypeTextImageLeft, Fields: map[string]string{
					"text":    "Split layouts put the image beside the text.",
					"caption": "Placeholder",
				}},
				{Type: models.BlockTypeIframe, Fields: map[string]string{"src": "https://www.youtube.com/embed/dQw4w9WgXcQ"}},
			},
		},
		{
			Title:   "Reconciling Stores",
			Authors: "Edsger Dijkstra",
			Date:    "March 3, 2025",
			Blocks: []sampleBlock{
				{Type: models.BlockTypeHeader, Fields: map[string]string{"text": "Why reconcile?"}},
				{Type: models.BlockTypeParagraph, Fields: map[string]string{
					"text": "Saves write three stores in sequence. A crash in between leaves them out of step until the next reconcile pass.",
				}},
			},
		},
	}
}

// Seeder saves the sample posts through the document service
type Seeder struct {
	docs   blogSvc.DocumentService
	blocks *blocktypes.Registry
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(docs blogSvc.DocumentService, blocks *blocktypes.Registry, logger *slog.Logger) *Seeder {
	return &Seeder{
		docs:   docs,
		blocks: blocks,
		logger: logger,
	}
}

// Seed saves every sample post as a new document and returns the ids
// assigned. Titles already present get a numeric suffix.
func (s *Seeder) Seed(ctx context.Context) ([]string, error) {
	var ids []string

	for _, post := range samplePosts() {
		blocks := make([]models.Block, 0, len(post.Blocks))
		for _, sb := range post.Blocks {
			b, err := s.blocks.NewBlockWith(sb.Type, sb.Fields)
			if err != nil {
				return ids, fmt.Errorf("build %s block for %q: %w", sb.Type, post.Title, err)
			}
			blocks = append(blocks, b)
		}

		result, err := s.docs.SaveDocument(ctx, &blogSvc.SaveDocumentRequest{
			Title:   post.Title,
			Authors: post.Authors,
			Date:    post.Date,
			Blocks:  blocks,
		}, nil)
		if err != nil {
			return ids, fmt.Errorf("seed %q: %w", post.Title, err)
		}

		s.logger.Info("seeded post", "doc_id", result.Document.ID, "blocks", len(blocks))
		ids = append(ids, result.Document.ID)
	}

	return ids, nil
}
