package template

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// NameVariable is the reserved variable bound to the playground name.
const NameVariable = "name"

// segmentSeparator splits strings into independently matched segments.
const segmentSeparator = "/"

var placeholder = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// Format returns a copy of node with placeholders replaced from subs.
// Maps, []any and []string are rebuilt; strings are substituted; any other
// value is returned unchanged.
func Format(node any, subs map[string]string) (any, error) {
	switch n := node.(type) {
	case map[string]any:
		return formatMap(n, subs)
	case []any:
		out := make([]any, len(n))
		for i, elem := range n {
			v, err := Format(elem, subs)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case []string:
		out := make([]string, len(n))
		for i, elem := range n {
			v, err := FormatString(elem, subs)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case string:
		return FormatString(n, subs)
	default:
		return node, nil
	}
}

func formatMap(m map[string]any, subs map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for key, val := range m {
		newKey, err := FormatString(key, subs)
		if err != nil {
			return nil, err
		}
		if _, dup := out[newKey]; dup {
			return nil, &KeyCollisionError{Key: newKey}
		}

		newVal, err := Format(val, subs)
		if err != nil {
			return nil, err
		}
		out[newKey] = newVal
	}
	return out, nil
}

// FormatString substitutes every "/"-separated segment of s that is exactly
// a ${identifier} placeholder.
func FormatString(s string, subs map[string]string) (string, error) {
	if !strings.Contains(s, "${") {
		return s, nil
	}

	segments := strings.Split(s, segmentSeparator)
	for i, seg := range segments {
		m := placeholder.FindStringSubmatch(seg)
		if m == nil {
			continue
		}
		val, ok := subs[m[1]]
		if !ok {
			return "", &MissingSubstitutionError{Identifier: m[1]}
		}
		segments[i] = val
	}
	return strings.Join(segments, segmentSeparator), nil
}

// Substitutions builds the substitution map for a playground: the reserved
// name binding, then the type's defaults, then user overrides (last wins).
// Neither defaults nor overrides may redefine the reserved name.
func Substitutions(name string, defaults, overrides map[string]string) (map[string]string, error) {
	if _, ok := defaults[NameVariable]; ok {
		return nil, &ReservedNameError{Name: NameVariable}
	}
	if _, ok := overrides[NameVariable]; ok {
		return nil, &ReservedNameError{Name: NameVariable}
	}

	subs := make(map[string]string, 1+len(defaults)+len(overrides))
	subs[NameVariable] = name
	maps.Copy(subs, defaults)
	maps.Copy(subs, overrides)
	return subs, nil
}

// Placeholders returns the distinct identifiers referenced by node, in the
// order they are first encountered. Map keys are visited in sorted order.
func Placeholders(node any) []string {
	seen := make(map[string]bool)
	var ids []string
	collect(node, seen, &ids)
	return ids
}

func collect(node any, seen map[string]bool, ids *[]string) {
	switch n := node.(type) {
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(n)) {
			collect(k, seen, ids)
			collect(n[k], seen, ids)
		}
	case []any:
		for _, elem := range n {
			collect(elem, seen, ids)
		}
	case []string:
		for _, elem := range n {
			collect(elem, seen, ids)
		}
	case string:
		for _, seg := range strings.Split(n, segmentSeparator) {
			if m := placeholder.FindStringSubmatch(seg); m != nil && !seen[m[1]] {
				seen[m[1]] = true
				*ids = append(*ids, m[1])
			}
		}
	}
}
