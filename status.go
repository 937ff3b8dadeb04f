package response

import (
	"errors"
	"fmt"
	"sort"
)

// statusText maps every status code the builder is allowed to send
// to its reason phrase. It is never mutated.
var statusText = map[int]string{
	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Request Entity Too Large",
	414: "Request-URI Too Long",
	415: "Unsupported Media Type",
	416: "Requested Range Not Satisfiable",
	417: "Expectation Failed",
	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
}

// StatusText returns the reason phrase for code.
// The boolean is false if the code is not one the builder can send.
func StatusText(code int) (string, bool) {
	text, ok := statusText[code]
	return text, ok
}

// StatusCodes returns every known status code in ascending order.
func StatusCodes() []int {
	codes := make([]int, 0, len(statusText))
	for code := range statusText {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

var ErrInvalidStatusCode = errors.New("invalid status code")

// InvalidStatusCodeError is returned by Send when the builder holds
// a status code that is not in the status table.
type InvalidStatusCodeError struct {
	Code int
}

func (e *InvalidStatusCodeError) Error() string {
	return fmt.Sprintf("invalid status code '%d'", e.Code)
}

func (e *InvalidStatusCodeError) Is(target error) bool {
	return target == ErrInvalidStatusCode
}
