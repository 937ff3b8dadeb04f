package main

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	response "github.com/zf-go/response"
)

type Config struct {
	Port      int             `yaml:"port"`
	Templates TemplatesConfig `yaml:"templates"`
	// Cache-Control directives for rendered pages, e.g. "public" or "max-age=60".
	CacheControl []string `yaml:"cacheControl"`
	// Path-specific rules, checked in order before the default above.
	Rules Rules `yaml:"rules"`
}

type TemplatesConfig struct {
	// SQLite file holding the templates ("memory" for an in-memory db).
	DB string `yaml:"db"`
	// Templates stored on startup, by name.
	Seed map[string]string `yaml:"seed"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}

// rules returns the configured rules followed by a catch-all default rule.
func (c Config) rules() Rules {
	rules := append(Rules{}, c.Rules...)
	if len(c.CacheControl) > 0 {
		rules = append(rules, Rule{Default: c.CacheControl})
	}
	return rules
}

// directives turns "name" and "name=value" strings into directives.
func directives(values []string) []response.Directive {
	ds := make([]response.Directive, 0, len(values))
	for _, value := range values {
		if key, arg, ok := strings.Cut(value, "="); ok {
			ds = append(ds, response.Param(strings.TrimSpace(key), strings.TrimSpace(arg)))
		} else {
			ds = append(ds, response.Token(strings.TrimSpace(value)))
		}
	}
	return ds
}
