package tee

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrEnded = errors.New("response already ended")

// ResponseSaver records a response as raw HTTP/1.1 lines in a buffer.
// It optionally writes the response to an underlying http.ResponseWriter.
type ResponseSaver struct {
	rw        http.ResponseWriter
	b         *bytes.Buffer
	status    int
	reason    string
	lines     []string
	bodyStart int
	committed bool
	ended     bool
	CreatedAt time.Time
}

// Status sets the status line. It is ignored once the response is committed.
func (t *ResponseSaver) Status(code int, reason string) {
	if t.committed {
		return
	}
	t.status = code
	t.reason = reason
}

// Header queues a header line. A line with the same (case-insensitive)
// name as a queued one replaces it. Ignored once the response is committed.
func (t *ResponseSaver) Header(line string) {
	if t.committed {
		return
	}
	name, _ := splitLine(line)
	for i, queued := range t.lines {
		if queuedName, _ := splitLine(queued); strings.EqualFold(queuedName, name) {
			t.lines[i] = line
			return
		}
	}
	t.lines = append(t.lines, line)
}

// Write commits the headers and streams b to the client.
func (t *ResponseSaver) Write(b []byte) (int, error) {
	if t.ended {
		return 0, ErrEnded
	}
	t.commit()
	if t.rw != nil {
		if _, err := t.rw.Write(b); err != nil {
			return 0, err
		}
		if f, ok := t.rw.(http.Flusher); ok {
			f.Flush()
		}
	}
	return t.b.Write(b)
}

// End commits the headers, writes the body and closes the response.
func (t *ResponseSaver) End(body []byte) error {
	if t.ended {
		return ErrEnded
	}
	t.commit()
	t.ended = true
	if t.rw != nil && len(body) > 0 {
		if _, err := t.rw.Write(body); err != nil {
			return err
		}
	}
	_, err := t.b.Write(body)
	return err
}

// commit writes status and headers to the buffer and the underlying writer.
func (t *ResponseSaver) commit() {
	if t.committed {
		return
	}
	t.committed = true
	if t.status == 0 {
		t.status = http.StatusOK
	}
	if t.reason == "" {
		t.reason = http.StatusText(t.status)
	}
	t.b.WriteString(fmt.Sprintf("HTTP/1.1 %d %s\r\n", t.status, t.reason))
	for _, line := range t.lines {
		t.b.WriteString(line + "\r\n")
	}
	t.b.WriteString("\r\n")
	t.bodyStart = t.b.Len()
	if t.rw != nil {
		for _, line := range t.lines {
			name, value := splitLine(line)
			t.rw.Header().Set(name, value)
		}
		t.rw.WriteHeader(t.status)
	}
}

// Response returns the recorded response as a byte slice.
func (t *ResponseSaver) Response() []byte {
	return t.b.Bytes()
}

// Body returns everything written after the header block.
func (t *ResponseSaver) Body() []byte {
	if !t.committed {
		return nil
	}
	return t.b.Bytes()[t.bodyStart:]
}

// Lines returns the queued header lines in order.
func (t *ResponseSaver) Lines() []string {
	return append([]string(nil), t.lines...)
}

// StatusCode returns the status code of the response, 0 if none was set.
func (t *ResponseSaver) StatusCode() int {
	return t.status
}

// StatusLine returns the recorded status line, empty until committed.
func (t *ResponseSaver) StatusLine() string {
	if !t.committed {
		return ""
	}
	return fmt.Sprintf("HTTP/1.1 %d %s", t.status, t.reason)
}

// Committed reports whether status and headers have been written.
func (t *ResponseSaver) Committed() bool {
	return t.committed
}

// Ended reports whether End has been called.
func (t *ResponseSaver) Ended() bool {
	return t.ended
}

// NewResponseSaver returns a new ResponseSaver.
// If w is not nil, the response will be written (tee'd) to it in addition to saving to buffer.
func NewResponseSaver(w http.ResponseWriter) *ResponseSaver {
	return &ResponseSaver{
		CreatedAt: time.Now(),
		rw:        w,
		b:         &bytes.Buffer{},
	}
}

// splitLine splits a raw header line into name and value.
// A bare line has an empty value.
func splitLine(line string) (string, string) {
	name, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(name), strings.TrimSpace(value)
}
