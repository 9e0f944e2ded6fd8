package net

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadLine reads one '\n'-terminated command line from r, stripping the
// terminator and an optional preceding '\r' so both Unix and telnet
// style clients work. A line longer than max bytes is an error; the
// caller drops the connection rather than guessing where the command
// was supposed to end.
func ReadLine(r *bufio.Reader, max int) (string, error) {
	var buf []byte
	for {
		chunk, err := r.ReadSlice('\n')
		buf = append(buf, chunk...)
		if len(buf) > max {
			return "", fmt.Errorf("line exceeds %d bytes", max)
		}
		if err == nil {
			break
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return "", err
	}
	line := strings.TrimSuffix(string(buf), "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// WriteLine writes line followed by '\n'. The terminator is appended
// before the single Write call so a reply never reaches the client as a
// torn pair of segments.
func WriteLine(w io.Writer, line string) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	return nil
}
