package process

import (
	"errors"
	"fmt"

	"github.com/puzpuzpuz/xsync"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/defs"
	"github.com/relex/slog-protocol/util/stringtemplate"
)

// Processor formats message texts from a Bundle and message parameters
//
// Message ids missing from the bundle are used as literal templates, so "${user} logged in" works without any bundle.
// A Processor is safe for concurrent use.
type Processor struct {
	logger    logger.Logger
	bundle    *Bundle
	fallbacks *xsync.MapOf[stringtemplate.Expander]
}

// NewProcessor creates a Processor over the given bundle, nil for none
func NewProcessor(parentLogger logger.Logger, bundle *Bundle) *Processor {
	if bundle == nil {
		bundle = EmptyBundle
	}
	return &Processor{
		logger:    parentLogger.WithField(defs.LabelComponent, "MessageProcessor"),
		bundle:    bundle,
		fallbacks: xsync.NewMapOf[stringtemplate.Expander](),
	}
}

// Bundle returns the message bundle
func (p *Processor) Bundle() *Bundle {
	return p.bundle
}

// Text formats the text of a message
func (p *Processor) Text(msg base.Message) string {
	return p.Format(msg.MessageID(), msg.Params())
}

// Format formats a message id with the given parameters
func (p *Processor) Format(id string, params parammap.View) string {
	return p.template(id).Run(ParamLookup(params))
}

func (p *Processor) template(id string) stringtemplate.Expander {
	tmpl, err := p.bundle.Lookup(id)
	if err == nil {
		return tmpl
	}
	if !errors.Is(err, defs.ErrNotFound) {
		logger.Panicf("unexpected lookup error: %s", err)
	}
	if cached, found := p.fallbacks.Load(id); found {
		return cached
	}
	literal, parseErr := stringtemplate.NewExpander(id)
	if parseErr != nil {
		p.logger.Debugf("message '%s' is neither in bundle nor a valid template: %s", id, parseErr)
		literal = stringtemplate.Literal(id)
	}
	actual, _ := p.fallbacks.LoadOrStore(id, literal)
	return actual
}

// ParamLookup creates a template Lookup over message parameters. Non-string values are formatted by fmt.
func ParamLookup(params parammap.View) stringtemplate.Lookup {
	return func(name string) (string, bool) {
		value, found := params.Get(name)
		if !found {
			return "", false
		}
		switch v := value.(type) {
		case string:
			return v, true
		case nil:
			return "null", true
		default:
			return fmt.Sprint(v), true
		}
	}
}
