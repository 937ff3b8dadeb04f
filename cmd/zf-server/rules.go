package main

import (
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	response "github.com/zf-go/response"
)

type Rules []Rule

// Rule sets response headers for matching GET requests.
// Default only applies when no Cache-Control is set yet, Override always does.
type Rule struct {
	Prefix   string            `yaml:"prefix"`
	Path     string            `yaml:"path"`
	Default  []string          `yaml:"default"`
	Override []string          `yaml:"override"`
	Query    map[string]string `yaml:"query"`
	Headers  map[string]string `yaml:"headers"`
}

func (r Rules) Apply(b *response.Builder) {
	// only apply rules for successes
	if b.Status != http.StatusOK {
		return
	}
	// if rule found, apply to response
	if rule := r.find(b.Request()); rule != nil {
		applyRuleToBuilder(*rule, b)
	}
}

func applyRuleToBuilder(rule Rule, b *response.Builder) {
	if len(rule.Override) > 0 {
		log.Trace().Msg("Overriding Cache-Control header")
		b.CacheControl(directives(rule.Override)...)
	} else if _, ok := b.Header("Cache-Control"); len(rule.Default) > 0 && !ok {
		log.Trace().Msg("Applying default Cache-Control header")
		b.CacheControl(directives(rule.Default)...)
	}
	// sorted, since the builder sends headers in insertion order
	names := make([]string, 0, len(rule.Headers))
	for name := range rule.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Trace().Msgf("Setting header %s", name)
		b.SetHeader(name, response.Scalar(rule.Headers[name]))
	}
}

func (r Rules) find(req *http.Request) *Rule {
	log.Trace().Msgf("Finding rule for request %s:%s", req.Method, req.URL.Path)
rulesLoop:
	for _, rule := range r {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			continue
		}
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		return &rule
	}
	return nil
}
