// Package config manages the playground type registry.
//
// The registry is a single JSON document mapping type names to type
// definitions:
//
//	{
//	    "console": {
//	        "folders": [],
//	        "files": {"main.py": ["print('Hello, World!')"]},
//	        "lib": [],
//	        "module": "main",
//	        "args": []
//	    }
//	}
//
// It is held in memory as a Registry (the generic JSON tree) so that any
// node can be addressed with a dotted key path.
//
// # Sub-packages
//
//   - keypath: dotted path get/set/delete into nested maps
//   - loader: JSON, TOML and YAML document parsing; environment overrides
//
// # Basic Usage
//
//	store := config.NewStore(path)
//	reg, err := store.Load()
//	if err != nil {
//	    return err
//	}
//	def, err := reg.Resolve("console", "demo", nil)
//
// Mutating commands go through Store.Update, which saves the registry only
// when the mutation succeeds:
//
//	err := store.Update(func(reg config.Registry) error {
//	    return reg.Set("api.module", `"uvicorn"`)
//	})
package config
