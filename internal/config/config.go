// Package config loads urlrx defaults from YAML files.
//
// Keys are flag names; "wild-start" and "wild_start" are equivalent:
//
//	domain: example.com
//	wild-end: true
//	ignore-case: true
//	group: false
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order; missing files are ignored.
var DefaultPaths = []string{
	".urlrx.yaml",
	"~/.config/urlrx/config.yaml",
}

// YAML is a kong.ConfigurationLoader for YAML documents.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	data, err := json.Marshal(normalizeKeys(values))
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return kong.JSON(bytes.NewReader(data))
}

// normalizeKeys rewrites hyphenated keys to the underscore form kong's JSON
// resolver looks up.
func normalizeKeys(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeKeys(nested)
		}
		out[strings.ReplaceAll(k, "-", "_")] = v
	}
	return out
}
