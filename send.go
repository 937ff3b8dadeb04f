package response

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	httpdate "github.com/zf-go/response/pkg/http-date"
)

// LastModified emits a Last-Modified header for t.
// If the request's If-Modified-Since is at or after t, it ends the response
// with 304 Not Modified and returns true. The caller must stop then.
func (b *Builder) LastModified(t time.Time) (bool, error) {
	if b.sent {
		return false, ErrAlreadySent
	}
	b.emitter.Header("Last-Modified: " + httpdate.Format(t))

	if b.request == nil {
		return false, nil
	}
	ifModifiedSince := b.request.Header.Get("If-Modified-Since")
	if ifModifiedSince == "" {
		return false, nil
	}
	since, err := httpdate.Parse(ifModifiedSince)
	if err != nil {
		b.log.Debug().Err(err).Str("ifModifiedSince", ifModifiedSince).Msg("Ignoring If-Modified-Since")
		return false, nil
	}
	// HTTP dates have second precision
	if since.Before(t.Truncate(time.Second)) {
		return false, nil
	}

	b.log.Trace().Time("lastModified", t).Msg("Not modified")
	b.emitter.Status(http.StatusNotModified, statusText[http.StatusNotModified])
	return true, b.end(nil)
}

// Send validates the status and emits status line, headers and body.
// Nothing is emitted if the status is not a known code.
func (b *Builder) Send() error {
	if b.sent {
		return ErrAlreadySent
	}
	reason, ok := StatusText(b.Status)
	if !ok {
		return &InvalidStatusCodeError{Code: b.Status}
	}

	b.emitter.Status(b.Status, reason)
	b.emitter.Header("Status: " + strconv.Itoa(b.Status))
	b.emitter.Header("Content-Type: " + b.ContentType + "; charset=" + b.Charset)
	for _, line := range b.headers.lines() {
		b.emitter.Header(line)
	}

	b.log.Trace().
		Int("status", b.Status).
		Int("bytes", len(b.Body)).
		Msg("Sending response")
	return b.end([]byte(b.Body))
}

// NotFound sends a 404 with message as the body.
func (b *Builder) NotFound(message string) error {
	b.Status = http.StatusNotFound
	b.Body = message
	return b.Send()
}

// Redirect ends the response with a Location header and an empty body.
// The status is 301 if permanent, 302 otherwise.
func (b *Builder) Redirect(url string, permanent bool) error {
	if b.sent {
		return ErrAlreadySent
	}
	code := http.StatusFound
	if permanent {
		code = http.StatusMovedPermanently
	}
	b.emitter.Header("Location: " + url)
	b.emitter.Status(code, statusText[code])

	b.log.Trace().Int("status", code).Str("location", url).Msg("Redirecting")
	return b.end(nil)
}

// Download ends the response with content as an attachment named name.
// Content-Length is only sent for a positive size.
// Status, body and stored headers of the builder are not used.
func (b *Builder) Download(content []byte, name string, size int64) error {
	if b.sent {
		return ErrAlreadySent
	}
	b.emitter.Header("Cache-Control: public, must-revalidate")
	b.emitter.Header("Pragma: public")
	b.emitter.Header("Content-Type: application/octet-stream")
	if size > 0 {
		b.emitter.Header("Content-Length: " + strconv.FormatInt(size, 10))
	}
	b.emitter.Header(`Content-Disposition: attachment; filename="` + quoteFilename(name) + `"`)
	b.emitter.Header("Content-Transfer-Encoding: binary")

	b.log.Trace().Str("filename", name).Int("bytes", len(content)).Msg("Sending download")
	return b.end(content)
}

// end marks the response as sent, moves stray output to the
// diagnostic channel and hands body to the emitter.
func (b *Builder) end(body []byte) error {
	b.sent = true
	if buffered := b.drainOutput(); len(buffered) > 0 {
		if err := b.WriteDiagnostic(string(buffered)); err != nil {
			b.log.Error().Err(err).Msg("Could not write stray output to diagnostics")
		}
	}
	return b.emitter.End(body)
}

// filenameReplacer escapes a filename for a quoted-string and drops
// line breaks, which would otherwise start a new header line.
var filenameReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r", "", "\n", "")

func quoteFilename(name string) string {
	return filenameReplacer.Replace(name)
}
