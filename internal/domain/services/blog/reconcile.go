package blog

import "context"

// ReconcileService repairs drift between the three stores. The artifact
// store is treated as the source of truth because only it carries the
// structured blocks.
type ReconcileService interface {
	Reconcile(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error)
}

// ReconcileOptions selects what a reconciliation pass may change
type ReconcileOptions struct {
	DryRun   bool `json:"dry_run"`  // Report only, write nothing
	Prune    bool `json:"prune"`    // Remove index entries whose artifact is gone
	Rerender bool `json:"rerender"` // Rewrite artifacts from their trailers
}

// ReconcileReport lists the document ids affected by each repair
type ReconcileReport struct {
	DryRun              bool     `json:"dry_run"`
	SnippetsRegenerated []string `json:"snippets_regenerated"`
	SnippetsRemoved     []string `json:"snippets_removed"`
	MissingArtifacts    []string `json:"missing_artifacts"` // Index entries without an artifact
	EntriesPruned       []string `json:"entries_pruned"`
	Unindexed           []string `json:"unindexed"`   // Artifacts without an index entry
	Undecodable         []string `json:"undecodable"` // Artifacts whose trailer cannot be read
	Rerendered          []string `json:"rerendered"`
}

// Clean reports whether the pass found nothing to repair
func (r *ReconcileReport) Clean() bool {
	return len(r.SnippetsRegenerated) == 0 &&
		len(r.SnippetsRemoved) == 0 &&
		len(r.MissingArtifacts) == 0 &&
		len(r.Unindexed) == 0 &&
		len(r.Undecodable) == 0
}
