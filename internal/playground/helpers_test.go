package playground

import (
	"context"
	"sync"

	"github.com/dshills/playground/internal/config"
)

// fakeEnv records environment calls and can fail or cancel on demand.
type fakeEnv struct {
	mu         sync.Mutex
	created    []string
	installed  []string
	verbose    bool
	createErr  error
	installErr error
	onCreate   func()
}

func (e *fakeEnv) Create(ctx context.Context, dir string) error {
	e.mu.Lock()
	e.created = append(e.created, dir)
	e.mu.Unlock()
	if e.onCreate != nil {
		e.onCreate()
	}
	return e.createErr
}

func (e *fakeEnv) Install(ctx context.Context, python, requirements string, verbose bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	e.installed = append(e.installed, python+" "+requirements)
	e.verbose = verbose
	e.mu.Unlock()
	return e.installErr
}

// fakeRunner records the last command run.
type fakeRunner struct {
	dir  string
	argv []string
	err  error
}

func (r *fakeRunner) Run(ctx context.Context, dir string, argv []string) error {
	r.dir = dir
	r.argv = argv
	return r.err
}

// recorder collects reporter messages.
type recorder struct {
	statuses []string
	details  []string
	success  []string
}

func (r *recorder) Status(msg string)  { r.statuses = append(r.statuses, msg) }
func (r *recorder) Detail(msg string)  { r.details = append(r.details, msg) }
func (r *recorder) Success(msg string) { r.success = append(r.success, msg) }

func testRegistry() config.Registry {
	return config.Registry{
		"console": map[string]any{
			"folders": []any{},
			"files":   map[string]any{"main.py": []any{"print(1)"}},
			"lib":     []any{},
			"module":  "main",
			"args":    []any{},
		},
		"package": map[string]any{
			"folders": []any{"${package}", "tests"},
			"files": map[string]any{
				"${package}/__init__.py": []any{},
				"tests/test_main.py":     []any{"def test_main():", "    assert True"},
			},
			"lib":    []any{"pytest"},
			"module": "pytest",
			"args":   []any{"tests"},
			"format": map[string]any{"package": "app"},
		},
		"broken": map[string]any{
			"folders": []any{},
			"files":   map[string]any{"src/main.py": []any{"print(1)"}},
			"module":  "main",
			"args":    []any{},
		},
		"escape": map[string]any{
			"folders": []any{"../outside"},
			"files":   map[string]any{},
			"module":  "main",
			"args":    []any{},
		},
	}
}
