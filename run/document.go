package run

import (
	"errors"
	"fmt"

	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bparse"
	"github.com/relex/slog-protocol/protocol"
	"github.com/relex/slog-protocol/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GroupDocument describes the contents of a protocol or group, e.g.
//
//	params: {host: db1}
//	propagations:
//	  - {selector: "anyOf(kernel, system)", tags: [infra]}
//	entries:
//	  - {level: WARN, message: disk.full, tags: [system], params: {disk: /dev/sda}}
//	  - group:
//	      header: connections
//	      entries:
//	        - {level: ERROR, message: connection lost, throwable: i/o timeout}
type GroupDocument struct {
	Header       string                 `yaml:"header"`
	Params       map[string]interface{} `yaml:"params"`
	Propagations []PropagationDocument  `yaml:"propagations"`
	Entries      []EntryDocument        `yaml:"entries"`
}

// PropagationDocument is a tag propagation rule of a document
//
// Unlike PropagationConfig, the selector is parsed while building, through the expression cache shared by documents
type PropagationDocument struct {
	Selector string   `yaml:"selector"`
	Tags     []string `yaml:"tags"`
}

// EntryDocument is either a message or a group
type EntryDocument struct {
	Level     *base.Level            `yaml:"level"` // default INFO
	Message   string                 `yaml:"message"`
	Tags      []string               `yaml:"tags"`
	Params    map[string]interface{} `yaml:"params"`
	Throwable string                 `yaml:"throwable"`
	Group     *GroupDocument         `yaml:"group"`
}

// LoadDocumentFile loads a protocol document
func LoadDocumentFile(filepath string) (*GroupDocument, error) {
	doc := &GroupDocument{}
	if err := util.UnmarshalYamlFile(filepath, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Build adds the contents of this document to the protocol, parsing selectors through the given cache
func (doc *GroupDocument) Build(p *protocol.Protocol, expressions *bparse.Cache) error {
	return doc.build(p, expressions, "")
}

func (doc *GroupDocument) build(p *protocol.Protocol, expressions *bparse.Cache, location string) error {
	if doc.Header != "" {
		p.SetHeader(doc.Header)
	}
	for _, key := range sortedKeys(doc.Params) {
		if err := p.Set(key, doc.Params[key]); err != nil {
			return fmt.Errorf("%sparams: %w", location, err)
		}
	}
	for i, prop := range doc.Propagations {
		propLocation := fmt.Sprintf("%spropagations[%d]", location, i)
		if prop.Selector == "" {
			return fmt.Errorf("%s.selector is undefined", propLocation)
		}
		selector, err := expressions.TagSelector(prop.Selector)
		if err != nil {
			return fmt.Errorf("%s.selector: %w", propLocation, err)
		}
		if err := p.Propagate(selector, prop.Tags...); err != nil {
			return fmt.Errorf("%s: %w", propLocation, err)
		}
	}
	for i, entry := range doc.Entries {
		entryLocation := fmt.Sprintf("%sentries[%d]", location, i)
		switch {
		case entry.Group != nil && entry.Message != "":
			return fmt.Errorf("%s: message and group cannot be both defined", entryLocation)
		case entry.Group != nil:
			if err := entry.Group.build(p.Group(), expressions, entryLocation+".group."); err != nil {
				return err
			}
		case entry.Message != "":
			if err := entry.build(p); err != nil {
				return fmt.Errorf("%s: %w", entryLocation, err)
			}
		default:
			return fmt.Errorf("%s: either message or group must be defined", entryLocation)
		}
	}
	return nil
}

func (entry *EntryDocument) build(p *protocol.Protocol) error {
	level := base.LevelInfo
	if entry.Level != nil {
		level = *entry.Level
	}
	builder := p.Add(level).WithTags(entry.Tags...)
	for _, key := range sortedKeys(entry.Params) {
		builder.WithParam(key, entry.Params[key])
	}
	if entry.Throwable != "" {
		builder.WithThrowable(errors.New(entry.Throwable))
	}
	_, err := builder.Message(entry.Message)
	return err
}

func sortedKeys(m map[string]interface{}) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
