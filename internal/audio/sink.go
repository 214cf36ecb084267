package audio

import (
	"io"
	"log/slog"
)

// Sink consumes transformed PCM chunks. Write is called once per chunk,
// synchronously, in strictly increasing stream-offset order, and never
// re-entrantly. The buffer is owned by the caller and must not be retained
// past the call's return. A non-nil error halts the stream immediately.
type Sink interface {
	Write(chunk []byte) error
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(chunk []byte) error

// Write calls f(chunk).
func (f SinkFunc) Write(chunk []byte) error {
	return f(chunk)
}

// WriterSink forwards transformed PCM to an io.Writer such as a file or
// stdout.
type WriterSink struct {
	writer io.Writer
}

// NewWriterSink creates a sink backed by the given writer.
func NewWriterSink(writer io.Writer) *WriterSink {
	slog.Debug("creating new writer sink")
	return &WriterSink{writer: writer}
}

// Write forwards the chunk to the underlying writer.
func (s *WriterSink) Write(chunk []byte) error {
	_, err := s.writer.Write(chunk)
	return err
}
