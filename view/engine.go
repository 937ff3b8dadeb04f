// Package view renders html/template templates loaded from a Store.
package view

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrTemplateNotFound = errors.New("template not found")

type parsedTemplate struct {
	tmpl     *template.Template
	modified time.Time
}

// Engine renders templates from a store.
// A parsed template is reused until the store holds a newer version.
type Engine struct {
	store  Store
	funcs  template.FuncMap
	mutex  *sync.RWMutex
	parsed map[string]parsedTemplate
	log    zerolog.Logger
}

// NewEngine creates an engine. The global zerolog logger is used if logger is nil.
func NewEngine(store Store, logger *zerolog.Logger) *Engine {
	l := log.Logger
	if logger != nil {
		l = *logger
	}
	return &Engine{
		store:  store,
		funcs:  template.FuncMap{},
		mutex:  &sync.RWMutex{},
		parsed: make(map[string]parsedTemplate),
		log:    l.With().Str("component", "view").Logger(),
	}
}

// Funcs adds functions available to templates parsed from now on.
func (e *Engine) Funcs(funcs template.FuncMap) *Engine {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	for name, fn := range funcs {
		e.funcs[name] = fn
	}
	// already parsed templates do not know the new functions
	e.parsed = make(map[string]parsedTemplate)
	return e
}

// Render executes the named template with vars.
func (e *Engine) Render(name string, vars map[string]any) (string, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}
	sb := &strings.Builder{}
	if err := tmpl.Execute(sb, vars); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}

// Modified returns when the named template was last changed.
func (e *Engine) Modified(name string) (time.Time, error) {
	t, ok, err := e.store.Get(name)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t.Modified, nil
}

func (e *Engine) template(name string) (*template.Template, error) {
	t, ok, err := e.store.Get(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	e.mutex.RLock()
	p, ok := e.parsed[name]
	e.mutex.RUnlock()
	if ok && p.modified.Equal(t.Modified) {
		return p.tmpl, nil
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.log.Trace().Str("template", name).Time("modified", t.Modified).Msg("Parsing template")
	tmpl, err := template.New(name).Funcs(e.funcs).Parse(t.Source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	e.parsed[name] = parsedTemplate{tmpl: tmpl, modified: t.Modified}
	return tmpl, nil
}
