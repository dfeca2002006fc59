// Package template substitutes ${variable} placeholders in playground type
// definitions.
//
// A type definition is a JSON tree of maps, sequences and strings. Format
// walks the tree and rewrites every string whose path segments are exact
// placeholders:
//
//	subs := map[string]string{"name": "demo"}
//	out, err := template.Format(map[string]any{
//	    "files": map[string]any{"${name}/__init__.py": []any{}},
//	}, subs)
//	// out: {"files": {"demo/__init__.py": []}}
//
// Strings are split on "/" and each segment is matched as a whole against
// ${identifier}. Placeholders embedded inside a segment, such as
// "print('${name}')", are left untouched. Map keys are formatted before
// their values.
//
// An identifier with no binding is an error (*MissingSubstitutionError).
package template
