package protocol

import (
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
)

// Visitor receives the contents of a protocol seen through a level limit and a matcher
//
// Messages passed to VisitMessage report their effective tags. Returning error stops the walk.
type Visitor interface {
	VisitGroupStart(group *Protocol, depth int) error
	VisitMessage(msg base.Message, depth int) error
	VisitGroupEnd(group *Protocol, depth int) error
}

// Visit walks matching messages depth-first in insertion order. Groups without matching messages are skipped.
//
// The protocol itself is not reported as a group; its direct entries are at depth 0.
func (p *Protocol) Visit(levelLimit base.Level, matcher *bmatch.Matcher, visitor Visitor) error {
	return p.visitEntries(levelLimit, matcher, visitor, 0)
}

func (p *Protocol) visitEntries(levelLimit base.Level, matcher *bmatch.Matcher, visitor Visitor, depth int) error {
	for _, e := range p.entries {
		if e.message != nil {
			tagged := e.message.tagged()
			if !matcher.Matches(levelLimit, tagged) {
				continue
			}
			if err := visitor.VisitMessage(tagged, depth); err != nil {
				return err
			}
			continue
		}
		if !e.group.Matches(levelLimit, matcher) {
			continue
		}
		if err := visitor.VisitGroupStart(e.group, depth); err != nil {
			return err
		}
		if err := e.group.visitEntries(levelLimit, matcher, visitor, depth+1); err != nil {
			return err
		}
		if err := visitor.VisitGroupEnd(e.group, depth); err != nil {
			return err
		}
	}
	return nil
}
