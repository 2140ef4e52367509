package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/go-fit/fit/pkg/errors"
)

// Load reads and validates one scene file, dispatching on its extension:
// .yaml or .yml for the YAML schema, .fit for the DSL.
func Load(path string) (*Document, error) {
	const op = "scene.Load"
	data, err := os.ReadFile(path)
	if err != nil {
		e := errors.Wrap(op, errors.KindScene, err)
		e.Path = path
		return nil, e
	}

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(data)
	case ".fit":
		doc, err = ParseDSL(string(data))
	default:
		err = fmt.Errorf("unsupported scene format %q (want .yaml, .yml, or .fit)", filepath.Ext(path))
	}
	if err != nil {
		e := errors.Wrap(op, errors.KindScene, err)
		e.Path = path
		return nil, e
	}

	if err := doc.Validate(); err != nil {
		e := errors.Wrap(op, errors.KindScene, err)
		e.Path = path
		return nil, e
	}
	return doc, nil
}

// ParseYAML decodes the YAML scene schema.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml scene: %w", err)
	}
	return &doc, nil
}

// Glob expands scene path patterns, supporting ** via doublestar. Literal
// paths pass through untouched so missing files surface as load errors
// rather than silently matching nothing. Matches are sorted and deduplicated.
func Glob(patterns []string) ([]string, error) {
	const op = "scene.Glob"
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Wrap(op, errors.KindScene,
				fmt.Errorf("bad pattern %q: %w", pattern, err))
		}
		if len(matches) == 0 {
			return nil, errors.Wrap(op, errors.KindScene,
				fmt.Errorf("pattern %q matched no scene files", pattern))
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return paths, nil
}
