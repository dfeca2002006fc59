package template

import (
	"errors"
	"reflect"
	"testing"
)

func TestFormatString(t *testing.T) {
	subs := map[string]string{"name": "demo", "pkg": "core"}

	tests := []struct {
		input    string
		expected string
	}{
		{"${name}", "demo"},
		{"plain", "plain"},
		{"", ""},
		{"${name}/__init__.py", "demo/__init__.py"},
		{"src/${pkg}/${name}.py", "src/core/${name}.py"},
		{"${pkg}/${name}", "core/demo"},
		{"print('${name}')", "print('${name}')"},
		{"a${name}b", "a${name}b"},
		{"${ name }", "${ name }"},
		{"$name", "$name"},
	}

	for _, tt := range tests {
		got, err := FormatString(tt.input, subs)
		if err != nil {
			t.Errorf("FormatString(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("FormatString(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormat_PackageFiles(t *testing.T) {
	node := map[string]any{
		"files": map[string]any{
			"${name}/__init__.py": []any{},
		},
	}

	got, err := Format(node, map[string]string{"name": "demo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"files": map[string]any{
			"demo/__init__.py": []any{},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Format = %#v, want %#v", got, want)
	}
}

func TestFormat_Shapes(t *testing.T) {
	subs := map[string]string{"name": "demo", "module": "app"}

	node := map[string]any{
		"folders": []any{"${name}", "docs"},
		"module":  "${module}",
		"args":    []string{"${name}", "--reload"},
		"count":   3.0,
		"enabled": true,
		"nothing": nil,
	}

	got, err := Format(node, subs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"folders": []any{"demo", "docs"},
		"module":  "app",
		"args":    []string{"demo", "--reload"},
		"count":   3.0,
		"enabled": true,
		"nothing": nil,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Format = %#v, want %#v", got, want)
	}
}

func TestFormat_DoesNotMutateInput(t *testing.T) {
	node := map[string]any{"${name}": []any{"${name}"}}

	if _, err := Format(node, map[string]string{"name": "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := node["${name}"]; !ok {
		t.Error("input map was modified")
	}
}

func TestFormat_IdempotentWithoutPlaceholders(t *testing.T) {
	subs := map[string]string{"name": "demo"}
	nodes := []any{
		map[string]any{"main.py": []any{"print(1)"}, "module": "main"},
		[]any{"a", "b", map[string]any{"c": "d"}},
		"text",
		12.5,
		map[string]any{"${name}": "${name}/x"},
	}

	for _, n := range nodes {
		once, err := Format(n, subs)
		if err != nil {
			t.Fatalf("Format(%v) failed: %v", n, err)
		}
		twice, err := Format(once, subs)
		if err != nil {
			t.Fatalf("second Format(%v) failed: %v", once, err)
		}
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Format not idempotent: %#v vs %#v", once, twice)
		}
	}
}

func TestFormat_MissingSubstitution(t *testing.T) {
	tests := []struct {
		name string
		node any
	}{
		{"string", "${missing}"},
		{"key", map[string]any{"${missing}/a.py": []any{}}},
		{"nested value", map[string]any{"args": []any{"ok", "${missing}"}}},
		{"string slice", []string{"${missing}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.node, map[string]string{"name": "demo"})

			var missing *MissingSubstitutionError
			if !errors.As(err, &missing) {
				t.Fatalf("expected *MissingSubstitutionError, got %v", err)
			}
			if missing.Identifier != "missing" {
				t.Errorf("Identifier = %q, want %q", missing.Identifier, "missing")
			}
			if !errors.Is(err, ErrMissingSubstitution) {
				t.Error("error should match ErrMissingSubstitution")
			}
		})
	}
}

func TestFormat_KeyCollision(t *testing.T) {
	node := map[string]any{
		"${name}": "a",
		"demo":    "b",
	}

	_, err := Format(node, map[string]string{"name": "demo"})
	if !errors.Is(err, ErrKeyCollision) {
		t.Errorf("expected ErrKeyCollision, got %v", err)
	}
}

func TestSubstitutions(t *testing.T) {
	got, err := Substitutions("demo",
		map[string]string{"pkg": "core", "port": "8000"},
		map[string]string{"port": "9000"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"name": "demo", "pkg": "core", "port": "9000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Substitutions = %v, want %v", got, want)
	}

	if got, err := Substitutions("only", nil, nil); err != nil || !reflect.DeepEqual(got, map[string]string{"name": "only"}) {
		t.Errorf("Substitutions with no variables = %v, %v", got, err)
	}
}

func TestSubstitutions_ReservedName(t *testing.T) {
	if _, err := Substitutions("demo", map[string]string{"name": "x"}, nil); !errors.Is(err, ErrReservedName) {
		t.Errorf("defaults: expected ErrReservedName, got %v", err)
	}
	if _, err := Substitutions("demo", nil, map[string]string{"name": "x"}); !errors.Is(err, ErrReservedName) {
		t.Errorf("overrides: expected ErrReservedName, got %v", err)
	}
}

func TestPlaceholders(t *testing.T) {
	node := map[string]any{
		"files": map[string]any{
			"${name}/__init__.py": []any{"print('${name}')"},
		},
		"module": "${package}",
		"args":   []any{"${port}", "${package}"},
	}

	got := Placeholders(node)
	want := []string{"port", "package", "name"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders = %v, want %v", got, want)
	}
}
