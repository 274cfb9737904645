package protocol

import (
	"fmt"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/defs"
)

// Protocol is a root protocol or a group of messages and nested groups
//
// A Protocol is not thread-safe. Messages and groups are kept in insertion order.
type Protocol struct {
	factory      *Factory
	parent       *Protocol
	header       string
	params       *parammap.Map
	entries      []entry
	propagations []propagation
}

// entry is either a message or a nested group
type entry struct {
	message *Message
	group   *Protocol
}

// propagation adds tags to messages whose tags match the selector
type propagation struct {
	selector bmatch.TagSelector
	tags     []string
}

// Factory returns the factory which created this protocol
func (p *Protocol) Factory() *Factory {
	return p.factory
}

// Parent returns the enclosing protocol, or nil for root
func (p *Protocol) Parent() *Protocol {
	return p.parent
}

// IsGroup checks whether this protocol is nested in another
func (p *Protocol) IsGroup() bool {
	return p.parent != nil
}

// Header returns the message id of group header, or empty if not set
func (p *Protocol) Header() string {
	return p.header
}

// SetHeader sets the message id of group header
func (p *Protocol) SetHeader(id string) *Protocol {
	p.header = id
	return p
}

// Params returns the group parameters including inherited ones
func (p *Protocol) Params() parammap.View {
	return p.params.View()
}

// Set puts a parameter for all messages and groups added later or earlier to this protocol
func (p *Protocol) Set(key string, value interface{}) error {
	return p.params.Put(key, value)
}

// Len returns the number of direct entries (messages and groups)
func (p *Protocol) Len() int {
	return len(p.entries)
}

// Group creates a nested group at the end of this protocol
func (p *Protocol) Group() *Protocol {
	group := &Protocol{
		factory: p.factory,
		parent:  p,
		params:  parammap.New(p.params),
	}
	p.entries = append(p.entries, entry{group: group})
	return group
}

// Add starts a new message of the given level
func (p *Protocol) Add(level base.Level) *MessageBuilder {
	return &MessageBuilder{
		protocol: p,
		level:    level,
		params:   parammap.New(p.params),
	}
}

// Debug starts a new DEBUG message
func (p *Protocol) Debug() *MessageBuilder {
	return p.Add(base.LevelDebug)
}

// Info starts a new INFO message
func (p *Protocol) Info() *MessageBuilder {
	return p.Add(base.LevelInfo)
}

// Warn starts a new WARN message
func (p *Protocol) Warn() *MessageBuilder {
	return p.Add(base.LevelWarn)
}

// Error starts a new ERROR message
func (p *Protocol) Error() *MessageBuilder {
	return p.Add(base.LevelError)
}

// Propagate adds the given tags to messages in this protocol and all nested groups, if their tags match the selector
//
// Rules are applied in order of addition, innermost protocols first, so tags added by one rule can be matched by later ones.
func (p *Protocol) Propagate(selector bmatch.TagSelector, tags ...string) error {
	if len(tags) == 0 {
		return fmt.Errorf("no tags to propagate for %s: %w", selector, defs.ErrInvalidArgument)
	}
	for _, tag := range tags {
		if tag == "" {
			return fmt.Errorf("empty tag name: %w", defs.ErrInvalidArgument)
		}
	}
	p.propagations = append(p.propagations, propagation{selector, append([]string(nil), tags...)})
	p.factory.logger.Debugf("propagate %v for %s", tags, selector)
	return nil
}

// Matches checks whether any message in this protocol or nested groups matches
func (p *Protocol) Matches(levelLimit base.Level, matcher *bmatch.Matcher) bool {
	for _, e := range p.entries {
		if e.message != nil {
			if matcher.Matches(levelLimit, e.message.tagged()) {
				return true
			}
		} else if e.group.Matches(levelLimit, matcher) {
			return true
		}
	}
	return false
}

// Count returns the number of messages in the tree which match at the level limit, i.e. the messages Visit reports
func (p *Protocol) Count(levelLimit base.Level, matcher *bmatch.Matcher) int {
	count := 0
	for _, e := range p.entries {
		if e.message != nil {
			if matcher.Matches(levelLimit, e.message.tagged()) {
				count++
			}
		} else {
			count += e.group.Count(levelLimit, matcher)
		}
	}
	return count
}

func (m *Message) tagged() taggedMessage {
	return taggedMessage{m, m.EffectiveTags()}
}
