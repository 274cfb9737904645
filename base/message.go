package base

import (
	"github.com/relex/slog-protocol/base/parammap"
)

// Message is the view of a protocol message for matching and rendering
//
// Implementations must not change any of the returned values while a match is in progress
type Message interface {
	// Level returns the message's own level
	Level() Level

	// Tags returns the effective tags
	Tags() TagSet

	// Params returns the parameters including inherited ones
	Params() parammap.View

	// MessageID returns the id used to resolve message text, may be empty
	MessageID() string

	// Throwable returns the attached error or nil
	Throwable() error
}

// StaticMessage is a plain Message implementation, e.g. for tests or ad-hoc matching
type StaticMessage struct {
	MsgLevel     Level
	MsgTags      TagSet
	MsgParams    *parammap.Map
	MsgID        string
	MsgThrowable error
}

// Level implements Message
func (m *StaticMessage) Level() Level {
	return m.MsgLevel
}

// Tags implements Message
func (m *StaticMessage) Tags() TagSet {
	return m.MsgTags
}

// Params implements Message
func (m *StaticMessage) Params() parammap.View {
	if m.MsgParams == nil {
		return parammap.EmptyView
	}
	return m.MsgParams.View()
}

// MessageID implements Message
func (m *StaticMessage) MessageID() string {
	return m.MsgID
}

// Throwable implements Message
func (m *StaticMessage) Throwable() error {
	return m.MsgThrowable
}
