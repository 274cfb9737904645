package format

import (
	"errors"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/process"
	"github.com/relex/slog-protocol/protocol"
)

// Node is a group or message in a Document
type Node struct {
	Text      string                 `yaml:"text" msgpack:"text"`
	Level     string                 `yaml:"level,omitempty" msgpack:"level,omitempty"`
	Tags      []string               `yaml:"tags,omitempty" msgpack:"tags,omitempty"`
	Params    map[string]interface{} `yaml:"params,omitempty" msgpack:"params,omitempty"`
	Throwable string                 `yaml:"throwable,omitempty" msgpack:"throwable,omitempty"`
	Entries   []*Node                `yaml:"entries,omitempty" msgpack:"entries,omitempty"`
}

// Document is a serializable snapshot of the visible contents of a protocol
type Document struct {
	LevelLimit string  `yaml:"levelLimit" msgpack:"levelLimit"`
	Filter     string  `yaml:"filter" msgpack:"filter"`
	Entries    []*Node `yaml:"entries" msgpack:"entries"`
}

// NewDocument collects visible messages and groups of a protocol into a Document
//
// Params of messages and groups include those inherited from enclosing groups.
func NewDocument(source *protocol.Protocol, levelLimit base.Level, matcher *bmatch.Matcher) (*Document, error) {
	collector := &documentCollector{
		processor: source.Factory().Processor(),
		root:      &Node{},
	}
	collector.stack = []*Node{collector.root}
	if err := source.Visit(levelLimit, matcher, collector); err != nil {
		return nil, err
	}
	entries := collector.root.Entries
	if entries == nil {
		entries = []*Node{}
	}
	return &Document{
		LevelLimit: levelLimit.String(),
		Filter:     matcher.String(),
		Entries:    entries,
	}, nil
}

type documentCollector struct {
	processor *process.Processor
	root      *Node
	stack     []*Node
}

func (c *documentCollector) top() *Node {
	return c.stack[len(c.stack)-1]
}

func (c *documentCollector) VisitGroupStart(group *protocol.Protocol, depth int) error {
	node := &Node{
		Text:   c.processor.Format(group.Header(), group.Params()),
		Params: nilIfEmpty(group.Params().ToMap()),
	}
	c.top().Entries = append(c.top().Entries, node)
	c.stack = append(c.stack, node)
	return nil
}

func (c *documentCollector) VisitMessage(msg base.Message, depth int) error {
	node := &Node{
		Text:   c.processor.Text(msg),
		Level:  msg.Level().String(),
		Tags:   msg.Tags().Names(),
		Params: nilIfEmpty(msg.Params().ToMap()),
	}
	if len(node.Tags) == 0 {
		node.Tags = nil
	}
	if msg.Throwable() != nil {
		node.Throwable = msg.Throwable().Error()
	}
	c.top().Entries = append(c.top().Entries, node)
	return nil
}

func (c *documentCollector) VisitGroupEnd(group *protocol.Protocol, depth int) error {
	if len(c.stack) <= 1 {
		return errors.New("unbalanced group end")
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

func nilIfEmpty(m map[string]interface{}) map[string]interface{} {
	if len(m) == 0 {
		return nil
	}
	return m
}
