package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
)

// ErrValueNotFound is returned when no file defines the requested path.
var ErrValueNotFound = errors.New("config: value not found")

// Loader compiles a set of CUE files once, checks each against the
// schema and answers lookups from them.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

type rootInfo struct {
	value cue.Value
	path  string
}

// NewLoader creates a loader over the files at filePaths. Nothing is read
// until the first lookup. Files ending in .toml are read as TOML and
// checked against the same schema; every other file is CUE.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return newLoader(schemaSrc, func(ctx *cue.Context) ([]rootInfo, error) {
		var roots []rootInfo
		for _, filePath := range filePaths {
			//nolint:gosec // G304: configuration paths come from the user.
			content, err := os.ReadFile(filePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
			var value cue.Value
			if filepath.Ext(filePath) == ".toml" {
				value, err = compileTOML(ctx, content)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", filePath, err)
				}
			} else {
				value = ctx.CompileBytes(content, cue.Filename(filePath))
			}
			if err := value.Err(); err != nil {
				return nil, err
			}
			roots = append(roots, rootInfo{value: value, path: filePath})
		}
		return roots, nil
	})
}

// NewSourceLoader creates a loader over in-memory CUE sources.
func NewSourceLoader(sources []string, schemaSrc string) Loader {
	return newLoader(schemaSrc, func(ctx *cue.Context) ([]rootInfo, error) {
		var roots []rootInfo
		for i, src := range sources {
			name := fmt.Sprintf("source%d.cue", i)
			value := ctx.CompileString(src, cue.Filename(name))
			if err := value.Err(); err != nil {
				return nil, err
			}
			roots = append(roots, rootInfo{value: value, path: name})
		}
		return roots, nil
	})
}

// compileTOML turns a TOML document into a CUE value.
func compileTOML(ctx *cue.Context, content []byte) (cue.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		return cue.Value{}, err
	}
	return ctx.Encode(doc), nil
}

func newLoader(schemaSrc string, compile func(*cue.Context) ([]rootInfo, error)) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() ([]rootInfo, error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, err
				}
			}

			roots, err := compile(ctx)
			if err != nil {
				return nil, err
			}
			for i, info := range roots {
				if !schema.Exists() {
					continue
				}
				unified := schema.Unify(info.value)
				if err := unified.Validate(); err != nil {
					return nil, fmt.Errorf("%s: %w", info.path, err)
				}
				roots[i].value = unified
			}
			return roots, nil
		}),
	}
}

// AssignFirst decodes the value at path in the first file that defines it.
func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if !value.Exists() {
			continue
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("%s: %s: %w", info.path, path, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValueNotFound, path)
}

// Decode decodes every file into target in order, so that values in
// later files override those in earlier ones.
func (l Loader) Decode(target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}
	for _, info := range roots {
		if err := info.value.Decode(target); err != nil {
			return fmt.Errorf("%s: %w", info.path, err)
		}
	}
	return nil
}

// Load reads the configuration files at paths over the defaults.
func Load(paths ...string) (Config, error) {
	cfg := Default()
	if len(paths) == 0 {
		return cfg, nil
	}
	if err := NewLoader(paths, Schema).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads configuration from CUE source over the defaults.
func Parse(src string) (Config, error) {
	cfg := Default()
	if err := NewSourceLoader([]string{src}, Schema).Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
