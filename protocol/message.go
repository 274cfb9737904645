package protocol

import (
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/parammap"
)

// Message is a message stored in a protocol
//
// Its parameters inherit those of the enclosing groups
type Message struct {
	owner     *Protocol
	level     base.Level
	tags      base.TagSet
	params    *parammap.Map
	id        string
	throwable error
}

// Level returns the level as added
func (m *Message) Level() base.Level {
	return m.level
}

// Tags returns the tags as added, without propagated ones
func (m *Message) Tags() base.TagSet {
	return m.tags
}

// Params returns the parameters including inherited ones
func (m *Message) Params() parammap.View {
	return m.params.View()
}

// MessageID returns the message id, which is also a template if no text is found by the id
func (m *Message) MessageID() string {
	return m.id
}

// Throwable returns the attached error or nil
func (m *Message) Throwable() error {
	return m.throwable
}

// Owner returns the protocol or group containing this message
func (m *Message) Owner() *Protocol {
	return m.owner
}

// EffectiveTags returns the tags with propagation rules of all enclosing protocols applied, innermost first
func (m *Message) EffectiveTags() base.TagSet {
	tags := m.tags
	for p := m.owner; p != nil; p = p.parent {
		for _, rule := range p.propagations {
			if rule.selector.Match(tags) {
				tags = tags.With(rule.tags...)
			}
		}
	}
	return tags
}

// taggedMessage is a Message seen with its effective tags
type taggedMessage struct {
	*Message
	effectiveTags base.TagSet
}

func (m taggedMessage) Tags() base.TagSet {
	return m.effectiveTags
}
