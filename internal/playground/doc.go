// Package playground creates, runs and deletes playground directories.
//
// A playground is a directory scaffolded from a registry type: declared
// folders and files, a requirements/requirements.in file, a settings.json
// describing how to run it, and an isolated Python environment in .venv.
//
// Creation is all or nothing. If any step after the type has been
// resolved fails, or the context is cancelled, the playground directory
// is removed again:
//
//	m := playground.New(playground.WithReporter(printer))
//	root, err := m.Create(ctx, registry, playground.Request{
//	    Name: "demo",
//	    Type: "console",
//	})
package playground
