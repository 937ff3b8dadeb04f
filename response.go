package response

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrAlreadySent  = errors.New("response already sent")
	ErrNoViewEngine = errors.New("no view engine configured")
)

// ViewEngine renders named templates with variable bindings.
type ViewEngine interface {
	Render(name string, vars map[string]any) (string, error)
}

type Config struct {
	// Engine used by Render.
	Views ViewEngine
	// Router of the surrounding application.
	// The builder keeps it for handlers but never calls it.
	Router chi.Router
	// Sink for trace output and for stray output drained when the response is sent.
	// Defaults to os.Stderr.
	Diagnostics io.Writer
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

// Builder accumulates the response for a single request.
// The exported fields may be set directly or through the setters.
type Builder struct {
	Status      int
	Body        string
	ContentType string
	Charset     string

	headers     *headerMap
	emitter     Emitter
	request     *http.Request
	views       ViewEngine
	router      chi.Router
	diagnostics io.Writer
	output      *bytes.Buffer
	log         zerolog.Logger
	sent        bool
}

// New creates the builder for request r, emitting through e.
func New(e Emitter, r *http.Request, config Config) *Builder {
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = log.Logger
	} else {
		logger = *config.Logger
	}
	if r != nil && r.URL != nil {
		logger = logger.With().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Logger()
	}

	diagnostics := config.Diagnostics
	if diagnostics == nil {
		diagnostics = os.Stderr
	}

	return &Builder{
		Status:      http.StatusOK,
		ContentType: "text/html",
		Charset:     "utf-8",
		headers:     newHeaderMap(),
		emitter:     e,
		request:     r,
		views:       config.Views,
		router:      config.Router,
		diagnostics: diagnostics,
		output:      &bytes.Buffer{},
		log:         logger,
	}
}

// SetBody replaces the body. Non-empty contentType and charset
// replace the current ones.
func (b *Builder) SetBody(content, contentType, charset string) *Builder {
	b.Body = content
	if contentType != "" {
		b.ContentType = contentType
	}
	if charset != "" {
		b.Charset = charset
	}
	return b
}

// SetHeader stores a header, replacing any previous value of the same name.
// A nil value sends the bare header name.
func (b *Builder) SetHeader(name string, value HeaderValue) *Builder {
	b.headers.set(name, value)
	return b
}

func (b *Builder) SetStatus(code int) *Builder {
	b.Status = code
	return b
}

// Header returns the stored value of a header.
func (b *Builder) Header(name string) (HeaderValue, bool) {
	return b.headers.get(name)
}

// Headers returns the stored headers serialized, in insertion order.
func (b *Builder) Headers() []string {
	return b.headers.lines()
}

// CacheControl stores the Cache-Control header built from directives.
//
//	b.CacheControl(Token("public"), Param("max-age", 3600))
//	b.CacheControl(append([]Directive{Token("private")}, Params(m)...)...)
func (b *Builder) CacheControl(directives ...Directive) *Builder {
	return b.SetHeader("Cache-Control", Directives(directives))
}

// Render delegates to the configured view engine.
func (b *Builder) Render(template string, vars map[string]any) (string, error) {
	if b.views == nil {
		return "", ErrNoViewEngine
	}
	return b.views.Render(template, vars)
}

// Output is where stray output goes, i.e. anything that is not the body.
// It reaches the client only through Flush; whatever is left when the
// response is sent goes to the diagnostic channel.
func (b *Builder) Output() io.Writer {
	return b.output
}

// Request returns the incoming request.
func (b *Builder) Request() *http.Request {
	return b.request
}

// Router returns the router the builder was created with.
func (b *Builder) Router() chi.Router {
	return b.router
}

// Sent reports whether a terminal operation has already ended the response.
func (b *Builder) Sent() bool {
	return b.sent
}

// WriteDiagnostic appends content to the diagnostic channel.
func (b *Builder) WriteDiagnostic(content string) error {
	_, err := io.WriteString(b.diagnostics, content)
	return err
}

// Trace writes a representation of v to the diagnostic channel and flushes stray output.
func (b *Builder) Trace(v any) error {
	if err := b.WriteDiagnostic(Repr(v) + "\n"); err != nil {
		return err
	}
	return b.Flush()
}

// Flush sends buffered stray output to the client without ending the response.
// This commits status and headers queued so far.
func (b *Builder) Flush() error {
	if b.output.Len() == 0 || b.sent {
		return nil
	}
	_, err := b.emitter.Write(b.drainOutput())
	return err
}

func (b *Builder) drainOutput() []byte {
	buffered := append([]byte(nil), b.output.Bytes()...)
	b.output.Reset()
	return buffered
}
