package fmsgpack

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-protocol/base"
	"github.com/relex/slog-protocol/base/bmatch"
	"github.com/relex/slog-protocol/format"
	"github.com/relex/slog-protocol/protocol"
	"github.com/vmihailenco/msgpack/v4"
)

// Formatter encodes format.Document as MessagePack map with sorted keys
type Formatter struct {
	logger           logger.Logger
	compress         bool
	compressionLevel int
}

// Format writes the visible contents of the protocol
func (f *Formatter) Format(writer io.Writer, source *protocol.Protocol, levelLimit base.Level, matcher *bmatch.Matcher) error {
	doc, err := format.NewDocument(source, levelLimit, matcher)
	if err != nil {
		return err
	}
	if !f.compress {
		return encode(writer, doc)
	}
	gzWriter, err := gzip.NewWriterLevel(writer, f.compressionLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize gzip: %w", err)
	}
	if err := encode(gzWriter, doc); err != nil {
		return err
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to finish gzip: %w", err)
	}
	f.logger.Debugf("encoded %d entries with gzip level %d", len(doc.Entries), f.compressionLevel)
	return nil
}

func encode(writer io.Writer, doc *format.Document) error {
	encoder := msgpack.NewEncoder(writer)
	encoder.SortMapKeys(true)
	encoder.UseCompactEncoding(true)
	return encoder.Encode(doc)
}

// Decode reads a document written by Formatter, decompressing if needed
func Decode(reader io.Reader, compressed bool) (*format.Document, error) {
	if compressed {
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer gzReader.Close()
		reader = gzReader
	}
	doc := &format.Document{}
	if err := msgpack.NewDecoder(reader).Decode(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
