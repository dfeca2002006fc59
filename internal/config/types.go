package config

import (
	"maps"
	"slices"

	"github.com/dshills/playground/internal/template"
)

// Type definition option names.
const (
	OptionFolders = "folders"
	OptionFiles   = "files"
	OptionLib     = "lib"
	OptionModule  = "module"
	OptionArgs    = "args"
	OptionFormat  = "format"
)

// requiredOptions are checked in this order so the first missing option is
// reported deterministically.
var requiredOptions = []string{OptionFolders, OptionFiles, OptionModule, OptionArgs}

// TypeDefinition is the decoded form of a registry entry.
type TypeDefinition struct {
	// Name is the registry key of the type.
	Name string
	// Folders are created inside the playground root, in order.
	Folders []string
	// Files maps relative paths to their lines.
	Files map[string][]string
	// Lib lists the packages installed into the environment.
	Lib []string
	// Module is run with "python -m".
	Module string
	// Args are passed after the module.
	Args []string
	// Format holds default values for template variables.
	Format map[string]string
}

// FilePaths returns the declared file paths in sorted order.
func (t *TypeDefinition) FilePaths() []string {
	return slices.Sorted(maps.Keys(t.Files))
}

// DecodeType converts a generic registry node into a TypeDefinition and
// validates it. Missing required options are reported as an *OptionError
// wrapping ErrOptionNotSet; options of the wrong shape wrap ErrInvalidValue.
func DecodeType(name string, node any) (*TypeDefinition, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, &OptionError{Key: name, Err: ErrInvalidValue}
	}

	for _, key := range requiredOptions {
		if _, ok := m[key]; !ok {
			return nil, &OptionError{Key: key, Type: name, Err: ErrOptionNotSet}
		}
	}

	def := &TypeDefinition{Name: name}
	invalid := func(key string) error {
		return &OptionError{Key: key, Type: name, Err: ErrInvalidValue}
	}

	if def.Folders, ok = stringList(m[OptionFolders]); !ok {
		return nil, invalid(OptionFolders)
	}
	if def.Args, ok = stringList(m[OptionArgs]); !ok {
		return nil, invalid(OptionArgs)
	}
	if def.Module, ok = m[OptionModule].(string); !ok || def.Module == "" {
		return nil, invalid(OptionModule)
	}

	files, ok := m[OptionFiles].(map[string]any)
	if !ok {
		return nil, invalid(OptionFiles)
	}
	def.Files = make(map[string][]string, len(files))
	for path, lines := range files {
		if path == "" {
			return nil, invalid(OptionFiles)
		}
		if def.Files[path], ok = stringList(lines); !ok {
			return nil, invalid(OptionFiles + "." + path)
		}
	}

	if lib, present := m[OptionLib]; present {
		if def.Lib, ok = stringList(lib); !ok {
			return nil, invalid(OptionLib)
		}
	}

	if format, present := m[OptionFormat]; present {
		if def.Format, ok = stringMap(format); !ok {
			return nil, invalid(OptionFormat)
		}
		if _, reserved := def.Format[template.NameVariable]; reserved {
			return nil, &template.ReservedNameError{Name: template.NameVariable}
		}
	}

	return def, nil
}

// formatDefaults extracts the format section of a raw type node without
// validating the rest of it.
func formatDefaults(name string, node map[string]any) (map[string]string, error) {
	raw, present := node[OptionFormat]
	if !present {
		return nil, nil
	}
	defaults, ok := stringMap(raw)
	if !ok {
		return nil, &OptionError{Key: OptionFormat, Type: name, Err: ErrInvalidValue}
	}
	return defaults, nil
}

func stringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return slices.Clone(list), true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func stringMap(v any) (map[string]string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(m))
	for key, val := range m {
		s, ok := val.(string)
		if !ok {
			return nil, false
		}
		out[key] = s
	}
	return out, true
}
