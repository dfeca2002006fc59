package config

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/dshills/playground/internal/config/keypath"
	"github.com/dshills/playground/internal/template"
)

func testRegistry(t *testing.T) Registry {
	t.Helper()
	reg, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults failed: %v", err)
	}
	return reg
}

func TestDefaults(t *testing.T) {
	reg := testRegistry(t)

	want := []string{"api", "console", "jupyter", "package"}
	if got := reg.Types(); !slices.Equal(got, want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}

	for _, name := range want {
		if _, err := reg.Resolve(name, "demo", nil); err != nil {
			t.Errorf("Resolve(%q) failed: %v", name, err)
		}
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := testRegistry(t)

	def, err := reg.Resolve("jupyter", "test/subfolder", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	wantLib := []string{"jupyter", "jupyterlab", "numpy", "pandas", "matplotlib", "faker", "arrow"}
	if !slices.Equal(def.Lib, wantLib) {
		t.Errorf("Lib = %v", def.Lib)
	}
	if def.Module != "jupyter" || !slices.Equal(def.Args, []string{"notebook", "analysis.ipynb"}) {
		t.Errorf("run command = %s %v", def.Module, def.Args)
	}
	if got := def.FilePaths(); !slices.Equal(got, []string{"analysis.ipynb", "dataprep.ipynb"}) {
		t.Errorf("FilePaths() = %v", got)
	}
}

func TestRegistry_ResolveFormatsPlaceholders(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		name     string
		typeName string
		vars     map[string]string
		check    func(*testing.T, *TypeDefinition)
	}{
		{
			name:     "default port",
			typeName: "api",
			check: func(t *testing.T, def *TypeDefinition) {
				if def.Args[len(def.Args)-1] != "8000" {
					t.Errorf("Args = %v", def.Args)
				}
			},
		},
		{
			name:     "overridden port",
			typeName: "api",
			vars:     map[string]string{"port": "9000"},
			check: func(t *testing.T, def *TypeDefinition) {
				if def.Args[len(def.Args)-1] != "9000" {
					t.Errorf("Args = %v", def.Args)
				}
			},
		},
		{
			name:     "package folder and files",
			typeName: "package",
			vars:     map[string]string{"package": "demo"},
			check: func(t *testing.T, def *TypeDefinition) {
				if !slices.Equal(def.Folders, []string{"demo", "tests"}) {
					t.Errorf("Folders = %v", def.Folders)
				}
				if _, ok := def.Files["demo/__init__.py"]; !ok {
					t.Errorf("Files = %v", def.FilePaths())
				}
				if _, ok := def.Files["demo/__main__.py"]; !ok {
					t.Errorf("Files = %v", def.FilePaths())
				}
				if def.Module != "pytest" || !slices.Equal(def.Args, []string{"tests"}) {
					t.Errorf("run command = %s %v", def.Module, def.Args)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := reg.Resolve(tt.typeName, "playground", tt.vars)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			tt.check(t, def)
		})
	}

	// The registry keeps its placeholders.
	args, err := keypath.Get(keypath.Parse("api.args"), reg)
	if err != nil {
		t.Fatal(err)
	}
	if list := args.([]any); list[len(list)-1] != "${port}" {
		t.Errorf("registry was modified: %v", list)
	}
}

func TestRegistry_Variables(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		typeName string
		want     []string
	}{
		{typeName: "api", want: []string{"port=8000"}},
		{typeName: "console", want: nil},
		{typeName: "package", want: []string{"package=app"}},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			vars, err := reg.Variables(tt.typeName)
			if err != nil {
				t.Fatalf("Variables failed: %v", err)
			}
			var got []string
			for _, v := range vars {
				got = append(got, v.String())
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Variables(%q) = %v, want %v", tt.typeName, got, tt.want)
			}
		})
	}

	if err := reg.Set("console.args", `["${name}", "${level}"]`); err != nil {
		t.Fatal(err)
	}
	vars, err := reg.Variables("console")
	if err != nil {
		t.Fatal(err)
	}
	want := []Variable{{Name: "name"}, {Name: "level"}}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("Variables(console) = %+v, want %+v", vars, want)
	}

	if _, err := reg.Variables("missing"); !errors.Is(err, ErrTypeNotConfigured) {
		t.Errorf("expected ErrTypeNotConfigured, got %v", err)
	}
}

func TestRegistry_ResolveErrors(t *testing.T) {
	reg := testRegistry(t)

	_, err := reg.Resolve("missing", "demo", nil)
	var typeErr *TypeNotConfiguredError
	if !errors.As(err, &typeErr) || typeErr.Type != "missing" {
		t.Errorf("expected TypeNotConfiguredError, got %v", err)
	}
	if !errors.Is(err, ErrTypeNotConfigured) {
		t.Errorf("expected ErrTypeNotConfigured, got %v", err)
	}

	_, err = reg.Resolve("api", "demo", map[string]string{"name": "other"})
	if !errors.Is(err, template.ErrReservedName) {
		t.Errorf("expected ErrReservedName, got %v", err)
	}

	if err := reg.Set("console.args", `["${undefined}"]`); err != nil {
		t.Fatal(err)
	}
	_, err = reg.Resolve("console", "demo", nil)
	if !errors.Is(err, template.ErrMissingSubstitution) {
		t.Errorf("expected ErrMissingSubstitution, got %v", err)
	}

	if err := reg.Set("console.args", `[]`); err != nil {
		t.Fatal(err)
	}
	if err := reg.Delete("console.module"); err != nil {
		t.Fatal(err)
	}
	_, err = reg.Resolve("console", "demo", nil)
	var optErr *OptionError
	if !errors.As(err, &optErr) || optErr.Key != "module" || optErr.Type != "console" {
		t.Errorf("expected OptionError for module, got %v", err)
	}
}

func TestRegistry_Add(t *testing.T) {
	reg := Registry{}

	err := reg.Add("web", `{"folders": [], "files": {}, "module": "flask", "args": ["run"]}`)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, ok := reg["web"]; !ok {
		t.Fatal("web type not added")
	}

	err = reg.Add("broken", `{"folders": [`)
	var fmtErr *FormatError
	if !errors.As(err, &fmtErr) || fmtErr.Path != "input" {
		t.Errorf("expected FormatError for input, got %v", err)
	}

	err = reg.Add("partial", `{"folders": []}`)
	if !errors.Is(err, ErrOptionNotSet) {
		t.Errorf("expected ErrOptionNotSet, got %v", err)
	}
	if _, ok := reg["partial"]; ok {
		t.Error("invalid type should not be added")
	}

	err = reg.Add("a.b", `{"folders": [], "files": {}, "module": "m", "args": []}`)
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestRegistry_Set(t *testing.T) {
	reg := testRegistry(t)

	if err := reg.Set("api.module", `"hypercorn"`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := keypath.Get(keypath.Parse("api.module"), reg); got != "hypercorn" {
		t.Errorf("api.module = %v", got)
	}

	if err := reg.Set("api.format.host", `"0.0.0.0"`); err != nil {
		t.Fatalf("Set new option failed: %v", err)
	}

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"missing intermediate", "api.nothing.here", `1`, keypath.ErrKeyNotFound},
		{"through a list", "api.args.x", `1`, ErrInvalidKey},
		{"unknown type", "nope.module", `"x"`, ErrTypeNotConfigured},
		{"empty key", "", `1`, ErrInvalidKey},
		{"bad json", "api.module", `hypercorn`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Set(tt.key, tt.value)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr == nil {
				var fmtErr *FormatError
				if !errors.As(err, &fmtErr) {
					t.Errorf("expected FormatError, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistry_SetWholeType(t *testing.T) {
	reg := testRegistry(t)

	if err := reg.Set("console", `{"folders": ["src"], "files": {}, "module": "src", "args": []}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	def, err := reg.Resolve("console", "demo", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(def.Folders, []string{"src"}) {
		t.Errorf("Folders = %v", def.Folders)
	}

	if err := reg.Set("console", `{"module": "x"}`); !errors.Is(err, ErrOptionNotSet) {
		t.Errorf("expected ErrOptionNotSet, got %v", err)
	}
}

func TestRegistry_Delete(t *testing.T) {
	reg := testRegistry(t)

	if err := reg.Delete("jupyter"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := reg["jupyter"]; ok {
		t.Error("jupyter should be removed")
	}

	if err := reg.Delete("api.format.port"); err != nil {
		t.Fatalf("Delete nested failed: %v", err)
	}
	if _, err := keypath.Get(keypath.Parse("api.format.port"), reg); !errors.Is(err, keypath.ErrKeyNotFound) {
		t.Errorf("api.format.port still present: %v", err)
	}

	var typeErr *TypeNotConfiguredError
	if err := reg.Delete("jupyter"); !errors.As(err, &typeErr) {
		t.Errorf("expected TypeNotConfiguredError, got %v", err)
	}

	var optErr *OptionError
	if err := reg.Delete("api.nothing"); !errors.As(err, &optErr) || optErr.Key != "api.nothing" {
		t.Errorf("expected OptionError, got %v", err)
	}
}

func TestRegistry_DeleteTypes(t *testing.T) {
	reg := testRegistry(t)

	removed := reg.DeleteTypes([]string{"api", "unknown", "console"})
	if !slices.Equal(removed, []string{"api", "console"}) {
		t.Errorf("removed = %v", removed)
	}
	if got := reg.Types(); !slices.Equal(got, []string{"jupyter", "package"}) {
		t.Errorf("Types() = %v", got)
	}
}

func TestRegistry_Read(t *testing.T) {
	reg := testRegistry(t)

	whole, err := reg.Read("")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(whole, map[string]any(reg)) {
		t.Error("empty key should return the whole registry")
	}

	got, err := reg.Read("api.files")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"value": reg["api"].(map[string]any)["files"]}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Read(api.files) = %v", got)
	}

	_, err = reg.Read("api.missing")
	if !errors.Is(err, ErrInvalidKey) || !errors.Is(err, keypath.ErrKeyNotFound) {
		t.Errorf("expected invalid key error, got %v", err)
	}
}

func TestRegistry_Merge(t *testing.T) {
	reg := testRegistry(t)

	doc := map[string]any{
		"console": map[string]any{"folders": []any{}, "files": map[string]any{}, "module": "code", "args": []any{}},
		"web":     map[string]any{"folders": []any{}, "files": map[string]any{}, "module": "flask", "args": []any{"run"}},
	}
	merged, err := reg.Merge(doc)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if !slices.Equal(merged, []string{"console", "web"}) {
		t.Errorf("merged = %v", merged)
	}
	if got, _ := keypath.Get(keypath.Parse("console.module"), reg); got != "code" {
		t.Errorf("console.module = %v", got)
	}

	// Merged values are copies.
	doc["web"].(map[string]any)["module"] = "changed"
	if got, _ := keypath.Get(keypath.Parse("web.module"), reg); got != "flask" {
		t.Errorf("web.module = %v", got)
	}
}

func TestRegistry_MergeInvalidIsAtomic(t *testing.T) {
	reg := testRegistry(t)

	doc := map[string]any{
		"a": map[string]any{"folders": []any{}, "files": map[string]any{}, "module": "m", "args": []any{}},
		"b": map[string]any{"folders": []any{}},
	}
	if _, err := reg.Merge(doc); !errors.Is(err, ErrOptionNotSet) {
		t.Fatalf("expected ErrOptionNotSet, got %v", err)
	}
	if _, ok := reg["a"]; ok {
		t.Error("no type should be merged when one is invalid")
	}
}

func TestRegistry_Clone(t *testing.T) {
	reg := testRegistry(t)
	clone := reg.Clone()

	if err := clone.Set("console.module", `"other"`); err != nil {
		t.Fatal(err)
	}
	if got, _ := keypath.Get(keypath.Parse("console.module"), reg); got != "main" {
		t.Errorf("original modified: %v", got)
	}
}
