package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ak7sky/cidrsum/internal/core/model"
)

// Sink receives report lines. Close flushes whatever is buffered.
type Sink interface {
	WriteLine(line string) error
	Close() error
}

type writerSink struct {
	w      *bufio.Writer
	closer io.Closer
}

// NewStdoutSink writes to the process standard output.
func NewStdoutSink() Sink {
	return &writerSink{w: bufio.NewWriter(os.Stdout)}
}

// NewFileSink creates or truncates the file at path.
func NewFileSink(path string) (Sink, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return &writerSink{w: bufio.NewWriter(file), closer: file}, nil
}

func (sink *writerSink) WriteLine(line string) error {
	if _, err := sink.w.WriteString(line); err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	if err := sink.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}

func (sink *writerSink) Close() error {
	err := sink.w.Flush()
	if sink.closer != nil {
		if closeErr := sink.closer.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrIO, err)
	}
	return nil
}
