package blocktypes

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"folio/internal/domain"
	models "folio/internal/domain/models/blog"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry is the catalog of block types the editor can insert
type Registry struct {
	types  []BlockTypeInfo
	byType map[models.BlockType]*BlockTypeInfo
}

// NewRegistry loads the embedded catalog and checks it covers exactly the
// block types the schema knows
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/blocks.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read block catalog: %w", err)
	}
	return parseRegistry(data)
}

func parseRegistry(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block catalog: %w", err)
	}

	r := &Registry{
		types:  file.BlockTypes,
		byType: make(map[models.BlockType]*BlockTypeInfo, len(file.BlockTypes)),
	}

	for i := range r.types {
		info := &r.types[i]
		if !info.Type.IsKnown() {
			return nil, fmt.Errorf("block catalog lists unknown type %q", info.Type)
		}
		if _, dup := r.byType[info.Type]; dup {
			return nil, fmt.Errorf("block catalog lists %q twice", info.Type)
		}
		if info.Default == nil {
			info.Default = map[string]string{}
		}
		r.byType[info.Type] = info
	}

	for _, t := range models.KnownBlockTypes {
		if _, ok := r.byType[t]; !ok {
			return nil, fmt.Errorf("block catalog is missing type %q", t)
		}
	}

	return r, nil
}

// List returns the catalog in palette order
func (r *Registry) List() []BlockTypeInfo {
	out := make([]BlockTypeInfo, len(r.types))
	copy(out, r.types)
	return out
}

// Get returns the catalog entry for t
func (r *Registry) Get(t models.BlockType) (*BlockTypeInfo, bool) {
	info, ok := r.byType[t]
	return info, ok
}

// NewBlock creates a block of type t with a fresh id and default content
func (r *Registry) NewBlock(t models.BlockType) (models.Block, error) {
	return r.NewBlockWith(t, nil)
}

// NewBlockWith is NewBlock with some content fields replaced. Keys the
// block type does not define are ignored.
func (r *Registry) NewBlockWith(t models.BlockType, fields map[string]string) (models.Block, error) {
	info, ok := r.byType[t]
	if !ok {
		return models.Block{}, &domain.ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown block type %q", t),
		}
	}

	values := make(map[string]string, len(info.Default)+len(fields))
	for k, v := range info.Default {
		values[k] = v
	}
	for k, v := range fields {
		values[k] = v
	}

	content, err := json.Marshal(values)
	if err != nil {
		return models.Block{}, fmt.Errorf("encode default content: %w", err)
	}
	wire, err := json.Marshal(map[string]any{
		"id":      uuid.NewString(),
		"type":    t,
		"content": json.RawMessage(content),
	})
	if err != nil {
		return models.Block{}, fmt.Errorf("encode block: %w", err)
	}

	var block models.Block
	if err := json.Unmarshal(wire, &block); err != nil {
		return models.Block{}, fmt.Errorf("decode default %s block: %w", t, err)
	}
	return block, nil
}
