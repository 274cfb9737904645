package ftext

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/base/parammap"
	"github.com/relex/slog-protocol/process"
	"github.com/relex/slog-protocol/protocol"
	"github.com/relex/slog-protocol/util"
)

// Formatter renders one line per message, e.g.
//
//	WARN  disk /dev/sda is full {disk=/dev/sda}
//	> database
//	  ERROR connection lost
//	    ! dial tcp: i/o timeout
type Formatter struct {
	logger       logger.Logger
	indent       string
	maxValueSize int
	showTags     bool
	showParams   bool
}

// Format writes the visible contents of the protocol
func (f *Formatter) Format(writer io.Writer, source *protocol.Protocol, levelLimit base.Level, matcher *bmatch.Matcher) error {
	buffered := bufio.NewWriter(writer)
	v := &textVisitor{
		Formatter: f,
		processor: source.Factory().Processor(),
		writer:    buffered,
	}
	if err := source.Visit(levelLimit, matcher, v); err != nil {
		return err
	}
	f.logger.Debugf("formatted %d messages in %d groups", v.numMessages, v.numGroups)
	return buffered.Flush()
}

type textVisitor struct {
	*Formatter
	processor   *process.Processor
	writer      *bufio.Writer
	numMessages int
	numGroups   int
}

func (v *textVisitor) VisitGroupStart(group *protocol.Protocol, depth int) error {
	v.numGroups++
	v.writeIndent(depth)
	v.writer.WriteString("> ")
	v.writer.WriteString(v.processor.Format(group.Header(), group.Params()))
	return v.writer.WriteByte('\n')
}

func (v *textVisitor) VisitMessage(msg base.Message, depth int) error {
	v.numMessages++
	v.writeIndent(depth)
	fmt.Fprintf(v.writer, "%-5s %s", msg.Level(), v.processor.Text(msg))
	if v.showTags && !msg.Tags().IsEmpty() {
		v.writer.WriteString(" [")
		v.writer.WriteString(strings.Join(msg.Tags().Names(), ","))
		v.writer.WriteByte(']')
	}
	if v.showParams && !msg.Params().IsEmpty() {
		v.writer.WriteByte(' ')
		if err := v.writeParams(msg.Params()); err != nil {
			return err
		}
	}
	if err := v.writer.WriteByte('\n'); err != nil {
		return err
	}
	if throwable := msg.Throwable(); throwable != nil {
		v.writeIndent(depth + 1)
		v.writer.WriteString("! ")
		v.writer.WriteString(throwable.Error())
		return v.writer.WriteByte('\n')
	}
	return nil
}

func (v *textVisitor) VisitGroupEnd(group *protocol.Protocol, depth int) error {
	return nil
}

func (v *textVisitor) writeIndent(depth int) {
	for i := 0; i < depth; i++ {
		v.writer.WriteString(v.indent)
	}
}

// writeParams writes "{key=value, ...}" in ascending order of keys
func (v *textVisitor) writeParams(params parammap.View) error {
	v.writer.WriteByte('{')
	first := true
	err := params.Range(func(key string, value interface{}) bool {
		if !first {
			v.writer.WriteString(", ")
		}
		first = false
		v.writer.WriteString(key)
		v.writer.WriteByte('=')
		v.writer.WriteString(v.formatValue(value))
		return true
	})
	v.writer.WriteByte('}')
	return err
}

func (v *textVisitor) formatValue(value interface{}) string {
	var text string
	if value == nil {
		text = "null"
	} else {
		text = fmt.Sprint(value)
	}
	if v.maxValueSize > 0 && len(text) > v.maxValueSize {
		return util.TruncateUTF8(text, v.maxValueSize-3) + "..."
	}
	return text
}
