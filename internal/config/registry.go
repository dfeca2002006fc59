package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dshills/playground/internal/config/keypath"
	"github.com/dshills/playground/internal/config/loader"
	"github.com/dshills/playground/internal/template"
)

// inputSource names command-line values in format errors.
const inputSource = "input"

// Registry is the in-memory registry document: type name -> type node.
type Registry map[string]any

// Types returns the configured type names in sorted order.
func (r Registry) Types() []string {
	return slices.Sorted(maps.Keys(r))
}

// Clone returns a deep copy of the registry.
func (r Registry) Clone() Registry {
	return Registry(keypath.Clone(r))
}

// Type returns the raw node of a type.
func (r Registry) Type(name string) (map[string]any, error) {
	node, ok := r[name]
	if !ok {
		return nil, &TypeNotConfiguredError{Type: name}
	}
	m, ok := node.(map[string]any)
	if !ok {
		return nil, &OptionError{Key: name, Err: ErrInvalidValue}
	}
	return m, nil
}

// Variable is a template variable referenced by a type.
type Variable struct {
	Name       string
	Default    string
	HasDefault bool
}

func (v Variable) String() string {
	if v.HasDefault {
		return v.Name + "=" + v.Default
	}
	return v.Name
}

// Variables returns the template variables a type references, in the order
// they are first encountered, with the type's format default for each.
func (r Registry) Variables(typeName string) ([]Variable, error) {
	node, err := r.Type(typeName)
	if err != nil {
		return nil, err
	}
	defaults, err := formatDefaults(typeName, node)
	if err != nil {
		return nil, err
	}
	ids := template.Placeholders(node)
	vars := make([]Variable, 0, len(ids))
	for _, id := range ids {
		def, ok := defaults[id]
		vars = append(vars, Variable{Name: id, Default: def, HasDefault: ok})
	}
	return vars, nil
}

// Resolve formats a type for a playground called name and decodes the
// result. vars override the type's format defaults. The registry is not
// modified.
func (r Registry) Resolve(typeName, name string, vars map[string]string) (*TypeDefinition, error) {
	node, err := r.Type(typeName)
	if err != nil {
		return nil, err
	}

	defaults, err := formatDefaults(typeName, node)
	if err != nil {
		return nil, err
	}
	subs, err := template.Substitutions(name, defaults, vars)
	if err != nil {
		return nil, err
	}

	formatted, err := template.Format(node, subs)
	if err != nil {
		return nil, fmt.Errorf("formatting type %q: %w", typeName, err)
	}
	return DecodeType(typeName, formatted)
}

// Add parses raw as JSON, validates it as a type definition and stores it
// under typeName, replacing any existing definition.
func (r Registry) Add(typeName, raw string) error {
	value, err := loader.ParseValue(inputSource, []byte(raw))
	if err != nil {
		return err
	}
	return r.add(typeName, value)
}

func (r Registry) add(typeName string, value any) error {
	if typeName == "" || strings.Contains(typeName, keypath.Separator) {
		return &OptionError{Key: typeName, Err: ErrInvalidKey}
	}
	if _, err := DecodeType(typeName, value); err != nil {
		return err
	}
	r[typeName] = value
	return nil
}

// Set assigns a JSON value at a dotted key. A single-segment key replaces a
// whole type and behaves like Add. Longer keys edit an existing node and
// are not validated, so an edit may leave a type incomplete until a later
// edit completes it.
func (r Registry) Set(key, raw string) error {
	path := keypath.Parse(key)
	if len(path) == 0 {
		return &OptionError{Key: key, Err: ErrInvalidKey}
	}

	value, err := loader.ParseValue(inputSource, []byte(raw))
	if err != nil {
		return err
	}
	if len(path) == 1 {
		return r.add(path[0], value)
	}

	if _, ok := r[path[0]]; !ok {
		return &TypeNotConfiguredError{Type: path[0]}
	}
	if _, err := keypath.Set(path, value, r); err != nil {
		return &OptionError{Key: key, Err: fmt.Errorf("%w: %w", ErrInvalidKey, err)}
	}
	return nil
}

// Delete removes a whole type (single-segment key) or a nested option.
func (r Registry) Delete(key string) error {
	path := keypath.Parse(key)
	if len(path) == 0 {
		return &OptionError{Key: key, Err: ErrInvalidKey}
	}
	if _, ok := r[path[0]]; !ok {
		return &TypeNotConfiguredError{Type: path[0]}
	}
	if len(path) == 1 {
		delete(r, path[0])
		return nil
	}
	if _, err := keypath.Delete(path, r); err != nil {
		return &OptionError{Key: key, Err: fmt.Errorf("%w: %w", ErrInvalidKey, err)}
	}
	return nil
}

// DeleteTypes removes every named type present in the registry and
// returns the names actually removed. Absent names are skipped.
func (r Registry) DeleteTypes(names []string) []string {
	var removed []string
	for _, name := range names {
		if _, ok := r[name]; ok {
			delete(r, name)
			removed = append(removed, name)
		}
	}
	return removed
}

// Read returns the whole registry for an empty key, otherwise the value at
// key wrapped as {"value": ...}.
func (r Registry) Read(key string) (any, error) {
	if key == "" {
		return map[string]any(r), nil
	}
	value, err := keypath.Get(keypath.Parse(key), r)
	if err != nil {
		return nil, &OptionError{Key: key, Err: fmt.Errorf("%w: %w", ErrInvalidKey, err)}
	}
	return map[string]any{"value": value}, nil
}

// Merge validates every type in doc and then copies them into the registry,
// replacing definitions with the same name. Nothing is merged if any type
// is invalid. The merged names are returned in sorted order.
func (r Registry) Merge(doc map[string]any) ([]string, error) {
	names := slices.Sorted(maps.Keys(doc))
	for _, name := range names {
		if name == "" || strings.Contains(name, keypath.Separator) {
			return nil, &OptionError{Key: name, Err: ErrInvalidKey}
		}
		if _, err := DecodeType(name, doc[name]); err != nil {
			return nil, err
		}
	}
	keypath.Merge(r, doc)
	return names, nil
}
