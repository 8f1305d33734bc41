package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
	blogRepo "folio/internal/domain/repositories/blog"
	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/service/blog/artifact"
	"folio/internal/service/blog/export"
	"folio/internal/service/blog/render"
)

// Store names used in StorageError
const (
	storeIndex    = "index"
	storeSnippet  = "snippet"
	storeArtifact = "artifact"
	storeUpload   = "upload"
)

// documentService implements DocumentService on top of the three stores.
//
// Writes are sequential and not atomic as a group: artifact, then snippet,
// then index. A failure part-way leaves the earlier writes in place and is
// reported as a StorageError; Reconcile repairs the drift. Concurrent saves
// of the same id are last-writer-wins.
type documentService struct {
	index     blogRepo.IndexRepository
	snippets  blogRepo.SnippetRepository
	artifacts blogRepo.ArtifactRepository
	uploads   blogRepo.UploadStore
	search    blogSvc.SearchIndex
	exporters *export.Registry
	logger    *slog.Logger
}

// NewDocumentService creates a new document service. searchIndex may be nil.
func NewDocumentService(
	index blogRepo.IndexRepository,
	snippets blogRepo.SnippetRepository,
	artifacts blogRepo.ArtifactRepository,
	uploads blogRepo.UploadStore,
	searchIndex blogSvc.SearchIndex,
	exporters *export.Registry,
	logger *slog.Logger,
) blogSvc.DocumentService {
	return &documentService{
		index:     index,
		snippets:  snippets,
		artifacts: artifacts,
		uploads:   uploads,
		search:    searchIndex,
		exporters: exporters,
		logger:    logger,
	}
}

// ListDocuments returns all index entries in stored order
func (s *documentService) ListDocuments(ctx context.Context) ([]models.IndexEntry, error) {
	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, domain.NewStorageError(storeIndex, "list", "", err)
	}
	return entries, nil
}

// LoadDocument assembles the editor view of id. A missing index entry
// yields a new, unnamed document; blocks are still recovered from an
// artifact left under that id.
func (s *documentService) LoadDocument(ctx context.Context, id string) (*blogSvc.LoadedDocument, error) {
	loaded := &blogSvc.LoadedDocument{
		Document: models.Document{Authors: []string{}, Blocks: []models.Block{}},
		IsNew:    true,
	}

	if id == "" {
		return loaded, nil
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	entry, err := s.index.Get(ctx, id)
	switch {
	case err == nil:
		loaded.ID = entry.ID
		loaded.Title = entry.Title
		loaded.Authors = entry.Authors
		loaded.Date = entry.Date
		loaded.Thumbnail = entry.Thumbnail
		loaded.IsNew = false
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Debug("load of unindexed document", "doc_id", id)
	default:
		return nil, domain.NewStorageError(storeIndex, "get", id, err)
	}

	text, err := s.artifacts.Get(ctx, id)
	switch {
	case err == nil:
		blocks, decodeErr := artifact.Decode(text)
		if decodeErr != nil {
			s.logger.Warn("artifact has no readable editor data",
				"doc_id", id,
				"error", decodeErr,
			)
			break
		}
		loaded.Blocks = blocks
	case errors.Is(err, domain.ErrNotFound):
		if !loaded.IsNew {
			s.logger.Warn("index entry without artifact", "doc_id", id)
		}
	default:
		return nil, domain.NewStorageError(storeArtifact, "get", id, err)
	}

	return loaded, nil
}

// SaveDocument validates, renders and persists a document
func (s *documentService) SaveDocument(ctx context.Context, req *blogSvc.SaveDocumentRequest, uploads []blogSvc.Upload) (*blogSvc.SaveResult, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Title = strings.TrimSpace(req.Title)

	authors, err := validateSaveRequest(req)
	if err != nil {
		return nil, err
	}

	blocks := models.NormalizeBlocks(req.Blocks)

	id, previousID, err := s.resolveID(ctx, req)
	if err != nil {
		return nil, err
	}

	created := previousID != ""
	if !created {
		created, err = s.isUnindexed(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	blocks, err = s.bindUploads(ctx, id, blocks, uploads)
	if err != nil {
		return nil, err
	}

	result := render.Render(blocks)
	text, err := artifact.Encode(result.Markup, blocks)
	if err != nil {
		return nil, err
	}

	if err := s.artifacts.Put(ctx, id, text); err != nil {
		return nil, domain.NewStorageError(storeArtifact, "put", id, err)
	}

	snippet := TruncateSnippet(result.SnippetSource)
	if err := s.snippets.Put(ctx, id, snippet); err != nil {
		return nil, domain.NewStorageError(storeSnippet, "put", id, err)
	}

	doc := models.Document{
		ID:        id,
		Title:     req.Title,
		Authors:   authors,
		Date:      strings.TrimSpace(req.Date),
		Thumbnail: ResolveThumbnail(req.Thumbnail, blocks),
		Blocks:    blocks,
	}

	if err := s.index.Put(ctx, doc.Entry()); err != nil {
		return nil, domain.NewStorageError(storeIndex, "put", id, err)
	}

	s.indexForSearch(doc.Entry(), snippet)

	if previousID != "" {
		if err := s.removeFromStores(ctx, previousID); err != nil {
			s.logger.Warn("renamed document left stale entries under its old id",
				"doc_id", id,
				"previous_id", previousID,
				"error", err,
			)
		}
	}

	s.logger.Info("document saved",
		"doc_id", id,
		"created", created,
		"blocks", len(blocks),
		"renamed_from", previousID,
	)

	return &blogSvc.SaveResult{
		Document:   doc,
		Snippet:    snippet,
		Created:    created,
		PreviousID: previousID,
	}, nil
}

// DeleteDocument removes id from every store. Each removal is attempted
// even when another fails; unknown ids are a no-op.
func (s *documentService) DeleteDocument(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.removeFromStores(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "doc_id", id)
	return nil
}

// ExportDocument converts the published markup of id to format
func (s *documentService) ExportDocument(ctx context.Context, id, format string) (*blogSvc.Export, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	text, err := s.artifacts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
		}
		return nil, domain.NewStorageError(storeArtifact, "get", id, err)
	}

	body, exporter, err := s.exporters.Export(ctx, format, artifact.Markup(text))
	if err != nil {
		return nil, err
	}

	return &blogSvc.Export{
		ID:          id,
		Format:      exporter.Format(),
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}

// resolveID returns the id to save under and, for a rename, the id being
// replaced. New documents get a unique slug of the title; existing ids are
// kept regardless of title changes unless a rename was requested.
func (s *documentService) resolveID(ctx context.Context, req *blogSvc.SaveDocumentRequest) (id, previousID string, err error) {
	if req.ID == "" {
		id, err = s.uniqueID(ctx, req.Title, "")
		return id, "", err
	}

	if !req.Rename {
		return req.ID, "", nil
	}

	id, err = s.uniqueID(ctx, req.Title, req.ID)
	if err != nil {
		return "", "", err
	}
	if id == req.ID {
		return id, "", nil
	}
	return id, req.ID, nil
}

// uniqueID checks Slugify(title) against both the artifact and index
// stores. self is treated as free so a document never collides with itself.
func (s *documentService) uniqueID(ctx context.Context, title, self string) (string, error) {
	return UniqueID(ctx, Slugify(title), func(ctx context.Context, candidate string) (bool, error) {
		if candidate == self {
			return false, nil
		}

		exists, err := s.artifacts.Exists(ctx, candidate)
		if err != nil {
			return false, domain.NewStorageError(storeArtifact, "exists", candidate, err)
		}
		if exists {
			return true, nil
		}

		unindexed, err := s.isUnindexed(ctx, candidate)
		return !unindexed, err
	})
}

func (s *documentService) isUnindexed(ctx context.Context, id string) (bool, error) {
	_, err := s.index.Get(ctx, id)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, domain.ErrNotFound):
		return true, nil
	default:
		return false, domain.NewStorageError(storeIndex, "get", id, err)
	}
}

// bindUploads stores each upload whose BlockID names an image-bearing block
// and points that block at the stored URL. Uploads for unknown blocks are
// dropped before anything is written.
func (s *documentService) bindUploads(ctx context.Context, docID string, blocks []models.Block, uploads []blogSvc.Upload) ([]models.Block, error) {
	for _, up := range uploads {
		pos := -1
		for i, b := range blocks {
			if b.ID == up.BlockID && b.AcceptsUpload() {
				pos = i
				break
			}
		}
		if pos < 0 {
			s.logger.Debug("dropping upload for unknown block",
				"doc_id", docID,
				"block_id", up.BlockID,
				"filename", up.Filename,
			)
			continue
		}

		url, err := s.uploads.Store(ctx, up.Filename, up.Body)
		if err != nil {
			return nil, domain.NewStorageError(storeUpload, "put", docID, err)
		}
		blocks[pos] = blocks[pos].WithSrc(url)

		s.logger.Debug("upload stored", "doc_id", docID, "block_id", up.BlockID, "url", url)
	}
	return blocks, nil
}

// removeFromStores deletes id from the index, snippet and artifact stores,
// attempting all three and joining the failures
func (s *documentService) removeFromStores(ctx context.Context, id string) error {
	var errs []error

	if err := s.index.Delete(ctx, id); err != nil {
		errs = append(errs, domain.NewStorageError(storeIndex, "delete", id, err))
	}
	if err := s.snippets.Delete(ctx, id); err != nil {
		errs = append(errs, domain.NewStorageError(storeSnippet, "delete", id, err))
	}
	if err := s.artifacts.Delete(ctx, id); err != nil {
		errs = append(errs, domain.NewStorageError(storeArtifact, "delete", id, err))
	}

	if s.search != nil {
		if err := s.search.Delete(id); err != nil {
			s.logger.Warn("search index delete failed", "doc_id", id, "error", err)
		}
	}

	return errors.Join(errs...)
}

func (s *documentService) indexForSearch(entry models.IndexEntry, snippet string) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexDocument(entry, snippet); err != nil {
		s.logger.Warn("search index update failed", "doc_id", entry.ID, "error", err)
	}
}
