package request

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxSSELineSize is the maximum size of a single SSE line (1 MB). The
// default bufio.Scanner limit is 64 KiB, which is too small for large events
// such as tool-call arguments or long completions. If a line exceeds this
// limit the scanner returns a wrapped bufio.ErrTooLong via the Next() error
// path.
const maxSSELineSize = 1 * 1024 * 1024

// streamDoneSentinel is the payload the API sends as its final event to mark
// a successful end of stream.
const streamDoneSentinel = "[DONE]"

// ErrStreamDone is returned by [SSEScanner.Next] when the [DONE] sentinel is
// read. It is distinct from io.EOF, which Next returns when the server
// closes the stream without sending the sentinel. Both mean the stream
// ended; the sentinel is the explicit confirmation.
var ErrStreamDone = errors.New("stream done")

// SSEScanner reads Server-Sent Events (SSE) from an io.Reader. It handles
// multi-line data fields, skips comments and empty lines, and detects the
// [DONE] sentinel used by OpenAI-compatible APIs.
type SSEScanner struct {
	scanner *bufio.Scanner
}

// NewSSEScanner creates an SSEScanner that reads SSE events from the given
// reader. The scanner supports individual SSE lines up to 1 MB.
func NewSSEScanner(reader io.Reader) *SSEScanner {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxSSELineSize)
	return &SSEScanner{
		scanner: scanner,
	}
}

// Next returns the next SSE data payload as a string. It skips empty lines
// and comment lines (starting with ':'). Multi-line data fields (multiple
// consecutive "data:" lines) are joined with newlines into a single payload
// string.
//
// Next returns [ErrStreamDone] when the [DONE] sentinel is encountered and
// io.EOF when the underlying stream ends without one.
func (sseScanner *SSEScanner) Next() (string, error) {
	var dataLines []string

	for sseScanner.scanner.Scan() {
		line := sseScanner.scanner.Text()

		// Empty line signals end of an event; flush accumulated data lines.
		if line == "" {
			if len(dataLines) > 0 {
				return strings.Join(dataLines, "\n"), nil
			}
			continue
		}

		// Skip SSE comments.
		if strings.HasPrefix(line, ":") {
			continue
		}

		// Parse "data:" prefix.
		if strings.HasPrefix(line, "data:") {
			data := strings.TrimPrefix(line, "data:")
			data = strings.TrimSpace(data)

			if data == streamDoneSentinel {
				return "", ErrStreamDone
			}

			dataLines = append(dataLines, data)
			continue
		}

		// Ignore other SSE fields (event:, id:, retry:).
	}

	if err := sseScanner.scanner.Err(); err != nil {
		return "", fmt.Errorf("SSE scanner error: %w", err)
	}

	// The stream ended mid-event; return what was buffered.
	if len(dataLines) > 0 {
		return strings.Join(dataLines, "\n"), nil
	}

	return "", io.EOF
}
