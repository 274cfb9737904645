// Package process resolves message ids to texts through bundles of templates
package process

import (
	"fmt"

	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/util"
	"github.com/relex/slog-protocol/util/stringtemplate"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Bundle maps message ids to text templates, e.g. "disk.full" => "disk ${disk} is full"
//
// A Bundle is immutable after construction
type Bundle struct {
	sources   map[string]string
	templates map[string]stringtemplate.Expander
}

// EmptyBundle contains no messages
var EmptyBundle = &Bundle{}

// NewBundle compiles the given templates by message id
func NewBundle(texts map[string]string) (*Bundle, error) {
	bundle := &Bundle{
		sources:   make(map[string]string, len(texts)),
		templates: make(map[string]stringtemplate.Expander, len(texts)),
	}
	for id, text := range texts {
		if id == "" {
			return nil, fmt.Errorf("empty message id: %w", defs.ErrInvalidArgument)
		}
		tmpl, err := stringtemplate.NewExpander(text)
		if err != nil {
			return nil, fmt.Errorf("message '%s': %w", id, err)
		}
		bundle.sources[id] = text
		bundle.templates[id] = tmpl
	}
	return bundle, nil
}

// LoadBundle loads a YAML file of message ids to templates
func LoadBundle(path string) (*Bundle, error) {
	bundle := &Bundle{}
	if err := util.UnmarshalYamlFile(path, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

// Lookup finds the template of the given message id, or returns an error wrapping defs.ErrNotFound
func (b *Bundle) Lookup(id string) (stringtemplate.Expander, error) {
	tmpl, found := b.templates[id]
	if !found {
		return stringtemplate.Empty, fmt.Errorf("message '%s': %w", id, defs.ErrNotFound)
	}
	return tmpl, nil
}

// IDs returns all message ids in ascending order
func (b *Bundle) IDs() []string {
	ids := maps.Keys(b.sources)
	slices.Sort(ids)
	return ids
}

// Len returns the number of messages
func (b *Bundle) Len() int {
	return len(b.templates)
}

// UnmarshalYAML loads a mapping of message ids to templates
func (b *Bundle) UnmarshalYAML(value *yaml.Node) error {
	texts := make(map[string]string)
	if err := value.Decode(&texts); err != nil {
		return util.NewYamlErrorf(value, "messages must be a mapping of ids to texts: %s", err)
	}
	loaded, err := NewBundle(texts)
	if err != nil {
		return util.NewYamlError(value, err.Error())
	}
	*b = *loaded
	return nil
}

// MarshalYAML writes the source templates
func (b *Bundle) MarshalYAML() (interface{}, error) {
	return b.sources, nil
}
