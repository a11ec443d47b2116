package rgbledos

import (
	"bufio"
	"context"
	"io"
)

// LineSource supplies operator input one line at a time.
type LineSource interface {
	// ReadLine blocks until a line is available. It returns io.EOF when input is exhausted.
	ReadLine(ctx context.Context) (string, error)
}

// ReaderSource reads lines from an io.Reader such as a console.
// Lines are read by a single goroutine; a ReadLine abandoned on cancellation loses no input.
type ReaderSource struct {
	lines chan string
	// err is written once before lines is closed.
	err error
}

var _ LineSource = &ReaderSource{}

// NewReaderSource starts reading lines from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	s := &ReaderSource{lines: make(chan string)}
	go s.scan(r)
	return s
}

func (s *ReaderSource) scan(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.lines <- scanner.Text()
	}

	s.err = scanner.Err()
	if s.err == nil {
		s.err = io.EOF
	}
	close(s.lines)
}

func (s *ReaderSource) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", s.err
		}
		return line, nil
	}
}

// ScriptedSource replays a fixed list of lines, then reports io.EOF.
type ScriptedSource struct {
	lines []string
}

var _ LineSource = &ScriptedSource{}

// NewScriptedSource creates a source that returns lines in order.
func NewScriptedSource(lines ...string) *ScriptedSource {
	return &ScriptedSource{lines: lines}
}

func (s *ScriptedSource) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}
