package bconfig

// Header carries the type tag which selects the implementation of a polymorphic config, e.g. an output format
//
// Embed it inline so that "type" appears as the first property in YAML
type Header struct {
	Type string `yaml:"type"`
}

// GetType returns the type tag
func (header *Header) GetType() string {
	return header.Type
}
