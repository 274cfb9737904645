package protocol

import (
	"fmt"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/defs"
)

// MessageBuilder collects attributes of a new message until Message() is called
//
// Errors from any step are kept and returned by Message()
type MessageBuilder struct {
	protocol  *Protocol
	level     base.Level
	tags      []string
	params    *parammap.Map
	throwable error
	err       error
}

// WithTags adds tags
func (b *MessageBuilder) WithTags(tags ...string) *MessageBuilder {
	for _, tag := range tags {
		if tag == "" && b.err == nil {
			b.err = fmt.Errorf("empty tag name: %w", defs.ErrInvalidArgument)
		}
	}
	b.tags = append(b.tags, tags...)
	return b
}

// WithParam sets a parameter, shadowing any parameter of the same key from enclosing groups
func (b *MessageBuilder) WithParam(key string, value interface{}) *MessageBuilder {
	if err := b.params.Put(key, value); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithThrowable attaches an error
func (b *MessageBuilder) WithThrowable(err error) *MessageBuilder {
	b.throwable = err
	return b
}

// Message adds the message to the protocol
//
// The id is looked up in the message bundle, or used as template itself if not found
func (b *MessageBuilder) Message(id string) (*Message, error) {
	if b.err != nil {
		return nil, b.err
	}
	if id == "" {
		return nil, fmt.Errorf("empty message id: %w", defs.ErrInvalidArgument)
	}
	msg := &Message{
		owner:     b.protocol,
		level:     b.level,
		tags:      base.NewTagSet(b.tags...),
		params:    b.params,
		id:        id,
		throwable: b.throwable,
	}
	b.protocol.entries = append(b.protocol.entries, entry{message: msg})
	b.protocol.factory.messageCounter.WithLabelValues(b.level.String()).Inc()
	return msg, nil
}
