// Package formats registers the list of all formatter implementations
package formats

import (
	"github.com/relex/slog-protocol/base/bconfig"
	"github.com/relex/slog-protocol/format"
	"github.com/relex/slog-protocol/format/fmsgpack"
	"github.com/relex/slog-protocol/format/ftext"
	"github.com/relex/slog-protocol/format/fyaml"
)

func init() {
	bconfig.RegisterConfigConstructors(format.ConfigCreatorTable{
		"text":    func() format.Config { return &ftext.Config{} },
		"msgpack": func() format.Config { return &fmsgpack.Config{} },
		"yaml":    func() format.Config { return &fyaml.Config{} },
	})
}

// Register registers all formatter config types
func Register() {
	// trigger init()
}
