package config

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/playground/internal/template"
)

func consoleNode() map[string]any {
	return map[string]any{
		"folders": []any{},
		"files":   map[string]any{"main.py": []any{"print(1)"}},
		"lib":     []any{},
		"module":  "main",
		"args":    []any{},
	}
}

func TestDecodeType(t *testing.T) {
	def, err := DecodeType("console", consoleNode())
	if err != nil {
		t.Fatalf("DecodeType failed: %v", err)
	}

	if def.Name != "console" || def.Module != "main" {
		t.Errorf("unexpected definition: %+v", def)
	}
	if got := def.Files["main.py"]; !slices.Equal(got, []string{"print(1)"}) {
		t.Errorf("main.py = %v", got)
	}
	if len(def.Folders) != 0 || len(def.Args) != 0 {
		t.Errorf("folders/args should be empty: %+v", def)
	}
}

func TestDecodeType_LibOptional(t *testing.T) {
	node := consoleNode()
	delete(node, "lib")

	def, err := DecodeType("console", node)
	if err != nil {
		t.Fatalf("DecodeType failed: %v", err)
	}
	if def.Lib != nil {
		t.Errorf("Lib = %v, want nil", def.Lib)
	}
}

func TestDecodeType_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantKey string
		wantErr error
	}{
		{"missing folders", func(m map[string]any) { delete(m, "folders") }, "folders", ErrOptionNotSet},
		{"missing files", func(m map[string]any) { delete(m, "files") }, "files", ErrOptionNotSet},
		{"missing module", func(m map[string]any) { delete(m, "module") }, "module", ErrOptionNotSet},
		{"missing args", func(m map[string]any) { delete(m, "args") }, "args", ErrOptionNotSet},
		{"args not a list", func(m map[string]any) { m["args"] = "run" }, "args", ErrInvalidValue},
		{"folder not a string", func(m map[string]any) { m["folders"] = []any{1.0} }, "folders", ErrInvalidValue},
		{"module empty", func(m map[string]any) { m["module"] = "" }, "module", ErrInvalidValue},
		{"file lines invalid", func(m map[string]any) { m["files"] = map[string]any{"a.py": "x"} }, "files.a.py", ErrInvalidValue},
		{"lib invalid", func(m map[string]any) { m["lib"] = map[string]any{} }, "lib", ErrInvalidValue},
		{"format invalid", func(m map[string]any) { m["format"] = map[string]any{"port": 8000.0} }, "format", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := consoleNode()
			tt.mutate(node)

			_, err := DecodeType("console", node)

			var optErr *OptionError
			if !errors.As(err, &optErr) {
				t.Fatalf("expected *OptionError, got %T: %v", err, err)
			}
			if optErr.Key != tt.wantKey || optErr.Type != "console" {
				t.Errorf("OptionError = %+v, want key %q", optErr, tt.wantKey)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDecodeType_ReservedFormatName(t *testing.T) {
	node := consoleNode()
	node["format"] = map[string]any{"name": "x"}

	_, err := DecodeType("console", node)
	if !errors.Is(err, template.ErrReservedName) {
		t.Errorf("expected ErrReservedName, got %v", err)
	}
}

func TestDecodeType_NotAMap(t *testing.T) {
	_, err := DecodeType("console", []any{})
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestTypeDefinition_FilePaths(t *testing.T) {
	def := &TypeDefinition{Files: map[string][]string{"b.py": nil, "a.py": nil, "pkg/c.py": nil}}

	want := []string{"a.py", "b.py", "pkg/c.py"}
	if got := def.FilePaths(); !slices.Equal(got, want) {
		t.Errorf("FilePaths() = %v, want %v", got, want)
	}
}
