package blocktypes

import models "folio/internal/domain/models/blog"

// BlockTypeInfo describes one entry of the editor palette
type BlockTypeInfo struct {
	Type          models.BlockType  `yaml:"type" json:"type"`
	Label         string            `yaml:"label" json:"label"`
	Description   string            `yaml:"description" json:"description"`
	AcceptsUpload bool              `yaml:"accepts_upload" json:"accepts_upload"`
	Default       map[string]string `yaml:"default" json:"default"`
}

// catalogFile is the root of config/blocks.yaml
type catalogFile struct {
	BlockTypes []BlockTypeInfo `yaml:"block_types"`
}
