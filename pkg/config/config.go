// Package config discovers and loads user configuration files.
//
// Configuration is a per-rule override map (see [rules.Overrides]) found by
// searching upward from the lint root for the first of:
//
//	.flowlintrc.json
//	.flowlintrc.yaml / .flowlintrc.yml
//	flowlint.toml
//
// Overrides may sit at the top level of the file or under a "rules" key,
// which lets the TOML form embed cleanly in a larger project manifest.
//
// Loading is non-fatal by design: a missing or malformed file yields the
// full default configuration plus a warning string for the caller to
// report. Field-level malformations are absorbed later by [rules.Merge].
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/flowlint/flowlint/pkg/rules"
)

// fileNames are the recognized configuration file names, in precedence
// order within one directory.
var fileNames = []string{
	".flowlintrc.json",
	".flowlintrc.yaml",
	".flowlintrc.yml",
	"flowlint.toml",
}

// Discover walks from startDir upward to the filesystem root and returns
// the first configuration file found.
func Discover(startDir string) (path string, ok bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		for _, name := range fileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load reads and decodes one configuration file into rule overrides.
// The decoder is chosen by file extension (.json, .yaml/.yml, .toml).
func Load(path string) (rules.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return toOverrides(raw), nil
}

// LoadForDir resolves the effective configuration for linting files under
// dir. It never fails: when no file is found the defaults apply, and when a
// file cannot be read or decoded the defaults apply and warning carries the
// reason. The returned path is the file that was used, if any.
func LoadForDir(dir string) (cfg rules.Config, path string, warning string) {
	path, ok := Discover(dir)
	if !ok {
		return rules.Defaults(), "", ""
	}
	overrides, err := Load(path)
	if err != nil {
		return rules.Defaults(), path, fmt.Sprintf("ignoring config %s: %v", path, err)
	}
	return rules.Merge(rules.Defaults(), overrides), path, ""
}

// toOverrides extracts the per-rule override map from the decoded file.
// Overrides nested under a "rules" key take precedence over the top level,
// and entries that are not field maps are dropped.
func toOverrides(raw map[string]any) rules.Overrides {
	if nested, ok := raw["rules"].(map[string]any); ok {
		raw = nested
	}
	overrides := make(rules.Overrides, len(raw))
	for id, v := range raw {
		if fields, ok := v.(map[string]any); ok {
			overrides[id] = fields
		}
	}
	return overrides
}
