package blog

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"folio/internal/domain"
	blogRepo "folio/internal/domain/repositories/blog"
	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/service/blog/artifact"
	"folio/internal/service/blog/render"
)

type reconcileService struct {
	index     blogRepo.IndexRepository
	snippets  blogRepo.SnippetRepository
	artifacts blogRepo.ArtifactRepository
	logger    *slog.Logger
}

// NewReconcileService creates the store reconciliation service
func NewReconcileService(
	index blogRepo.IndexRepository,
	snippets blogRepo.SnippetRepository,
	artifacts blogRepo.ArtifactRepository,
	logger *slog.Logger,
) blogSvc.ReconcileService {
	return &reconcileService{
		index:     index,
		snippets:  snippets,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Reconcile compares the stores against the artifacts:
//   - indexed documents get their snippet regenerated when missing or stale
//   - snippets with neither index entry nor artifact are removed
//   - index entries without an artifact are reported, and removed with Prune
//   - artifacts without an index entry are reported, never deleted
//   - with Rerender, artifacts are rewritten from their own trailer
func (s *reconcileService) Reconcile(ctx context.Context, opts blogSvc.ReconcileOptions) (*blogSvc.ReconcileReport, error) {
	report := &blogSvc.ReconcileReport{
		DryRun:              opts.DryRun,
		SnippetsRegenerated: []string{},
		SnippetsRemoved:     []string{},
		MissingArtifacts:    []string{},
		EntriesPruned:       []string{},
		Unindexed:           []string{},
		Undecodable:         []string{},
		Rerendered:          []string{},
	}
	write := !opts.DryRun

	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, domain.NewStorageError(storeIndex, "list", "", err)
	}
	artifactIDs, err := s.artifacts.List(ctx)
	if err != nil {
		return nil, domain.NewStorageError(storeArtifact, "list", "", err)
	}
	snippets, err := s.snippets.All(ctx)
	if err != nil {
		return nil, domain.NewStorageError(storeSnippet, "list", "", err)
	}

	indexed := make(map[string]bool, len(entries))
	for _, e := range entries {
		indexed[e.ID] = true
	}
	stored := make(map[string]bool, len(artifactIDs))
	for _, id := range artifactIDs {
		stored[id] = true
	}

	for _, e := range entries {
		if stored[e.ID] {
			continue
		}
		report.MissingArtifacts = append(report.MissingArtifacts, e.ID)
		if !opts.Prune {
			continue
		}
		if write {
			if err := s.index.Delete(ctx, e.ID); err != nil {
				return report, domain.NewStorageError(storeIndex, "delete", e.ID, err)
			}
		}
		indexed[e.ID] = false
		report.EntriesPruned = append(report.EntriesPruned, e.ID)
	}

	for _, id := range artifactIDs {
		text, err := s.artifacts.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return report, domain.NewStorageError(storeArtifact, "get", id, err)
		}

		blocks, err := artifact.Decode(text)
		if err != nil {
			s.logger.Warn("artifact has no readable editor data", "doc_id", id, "error", err)
			report.Undecodable = append(report.Undecodable, id)
			continue
		}

		if !indexed[id] {
			report.Unindexed = append(report.Unindexed, id)
		}

		result := render.Render(blocks)

		if indexed[id] {
			want := TruncateSnippet(result.SnippetSource)
			if have, ok := snippets[id]; !ok || have != want {
				if write {
					if err := s.snippets.Put(ctx, id, want); err != nil {
						return report, domain.NewStorageError(storeSnippet, "put", id, err)
					}
				}
				report.SnippetsRegenerated = append(report.SnippetsRegenerated, id)
			}
		}

		if opts.Rerender {
			rerendered, err := artifact.Encode(result.Markup, blocks)
			if err != nil {
				return report, err
			}
			if rerendered != text {
				if write {
					if err := s.artifacts.Put(ctx, id, rerendered); err != nil {
						return report, domain.NewStorageError(storeArtifact, "put", id, err)
					}
				}
				report.Rerendered = append(report.Rerendered, id)
			}
		}
	}

	orphans := make([]string, 0)
	for id := range snippets {
		if !stored[id] && !indexed[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		if write {
			if err := s.snippets.Delete(ctx, id); err != nil {
				return report, domain.NewStorageError(storeSnippet, "delete", id, err)
			}
		}
		report.SnippetsRemoved = append(report.SnippetsRemoved, id)
	}

	s.logger.Info("reconciliation finished",
		"dry_run", opts.DryRun,
		"snippets_regenerated", len(report.SnippetsRegenerated),
		"snippets_removed", len(report.SnippetsRemoved),
		"missing_artifacts", len(report.MissingArtifacts),
		"entries_pruned", len(report.EntriesPruned),
		"unindexed", len(report.Unindexed),
		"undecodable", len(report.Undecodable),
		"rerendered", len(report.Rerendered),
	)

	return report, nil
}
