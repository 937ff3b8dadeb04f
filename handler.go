package response

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	tee "github.com/zf-go/response/pkg/response-writer-tee"
)

// HandlerFunc handles a request by filling in the builder.
// It may end the response itself with Send, NotFound, Redirect,
// Download or LastModified; otherwise the response is sent when it returns.
type HandlerFunc func(b *Builder) error

// Handler returns an http.Handler creating one builder per request.
// A handler error is logged and answered with a 500 unless the response
// has already been sent.
func (c Config) Handler(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var logger zerolog.Logger
		if c.Logger == nil {
			logger = log.Logger
		} else {
			logger = *c.Logger
		}
		logger = logger.With().Str("request", uuid.NewString()).Logger()

		config := c
		config.Logger = &logger
		rw := tee.NewResponseSaver(w)
		b := New(rw, r, config)

		if err := fn(b); err != nil {
			b.log.Error().Err(err).Msg("Handler failed")
			if !b.Sent() {
				sendInternalError(b)
			}
		} else if !b.Sent() {
			if err := b.Send(); err != nil {
				b.log.Error().Err(err).Msg("Could not send response")
				sendInternalError(b)
			}
		}

		logRequest(b.log, r, rw.StatusCode())
	})
}

func sendInternalError(b *Builder) {
	b.SetStatus(http.StatusInternalServerError).
		SetBody(statusText[http.StatusInternalServerError], "text/plain", "")
	if err := b.Send(); err != nil {
		b.log.Error().Err(err).Msg("Could not send error response")
	}
}

func logRequest(logger zerolog.Logger, r *http.Request, status int) {
	logger.Debug().
		Str("sourceIp", getRequestSourceIp(r)).
		Int("status", status).
		Msg("Sent response to client")
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	ipAndPort := r.RemoteAddr
	portSepIdx := strings.LastIndex(ipAndPort, ":")
	// if not found, return
	if portSepIdx < 0 {
		return ipAndPort
	}
	ip := ipAndPort[:portSepIdx]
	return ip
}
