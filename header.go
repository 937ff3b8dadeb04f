package response

import (
	"fmt"
	"sort"
	"strings"
)

// HeaderValue is the value of a header stored on the builder.
// It is either a Scalar or a list of Directives.
// A nil HeaderValue stands for a bare header line without a value.
type HeaderValue interface {
	headerValue() string
}

// Scalar is a plain header value, sent as "Name: value".
type Scalar string

func (s Scalar) headerValue() string {
	return string(s)
}

// Directive is one comma-separated fragment of a composite header
// such as Cache-Control. Without a Key it renders as the bare Value.
type Directive struct {
	Key   string
	Value string
}

func (d Directive) String() string {
	if d.Key == "" {
		return d.Value
	}
	return d.Key + "=" + d.Value
}

// Token returns a bare directive, e.g. "public".
func Token(name string) Directive {
	return Directive{Value: name}
}

// Param returns a key=value directive, e.g. "max-age=3600".
func Param(key string, value any) Directive {
	return Directive{Key: key, Value: fmt.Sprint(value)}
}

// Params turns a mapping into key=value directives, sorted by key.
func Params(m map[string]any) []Directive {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	directives := make([]Directive, 0, len(keys))
	for _, key := range keys {
		directives = append(directives, Param(key, m[key]))
	}
	return directives
}

// Directives is a header value made of directive fragments,
// sent as "Name: a, b=c".
type Directives []Directive

func (d Directives) headerValue() string {
	fragments := make([]string, 0, len(d))
	for _, directive := range d {
		fragments = append(fragments, directive.String())
	}
	return strings.Join(fragments, ", ")
}

// headerLine serializes a single header the way it is handed to the emitter.
func headerLine(name string, value HeaderValue) string {
	if value == nil {
		return name
	}
	return name + ": " + value.headerValue()
}

// headerMap keeps headers in insertion order.
// Overwriting a header keeps its original position.
type headerMap struct {
	names  []string
	values map[string]HeaderValue
}

func newHeaderMap() *headerMap {
	return &headerMap{values: make(map[string]HeaderValue)}
}

func (h *headerMap) set(name string, value HeaderValue) {
	if _, ok := h.values[name]; !ok {
		h.names = append(h.names, name)
	}
	h.values[name] = value
}

func (h *headerMap) get(name string) (HeaderValue, bool) {
	value, ok := h.values[name]
	return value, ok
}

// lines returns every header serialized, in insertion order.
func (h *headerMap) lines() []string {
	lines := make([]string, 0, len(h.names))
	for _, name := range h.names {
		lines = append(lines, headerLine(name, h.values[name]))
	}
	return lines
}
