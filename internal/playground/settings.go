package playground

import (
	"errors"
	"io/fs"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/playground/internal/config/loader"
	"github.com/dshills/playground/internal/vfs"
)

// SettingsFile is the name of the settings document in a playground root.
const SettingsFile = "settings.json"

// Settings keys, in the order they are written.
const (
	keyPython = "python"
	keyModule = "module"
	keyArgs   = "args"
)

var settingsPretty = &pretty.Options{
	Width:    80,
	Indent:   "    ",
	SortKeys: false,
}

// Settings records how to run a playground.
type Settings struct {
	// Python is the interpreter inside the playground's environment.
	Python string
	// Module is run with "python -m".
	Module string
	// Args follow the module.
	Args []string
}

// EncodeSettings renders the settings document with keys in the order
// python, module, args and four-space indentation.
func EncodeSettings(s Settings) ([]byte, error) {
	args := s.Args
	if args == nil {
		args = []string{}
	}

	doc := []byte("{}")
	var err error
	if doc, err = sjson.SetBytes(doc, keyPython, s.Python); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, keyModule, s.Module); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, keyArgs, args); err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(doc, settingsPretty), nil
}

// DecodeSettings parses a settings document. source names the document in
// format errors and root names the playground in settings errors. A field
// that is absent or has the wrong type is reported as missing.
func DecodeSettings(root, source string, data []byte) (Settings, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		if _, err := (loader.JSONParser{}).Parse(source, data); err != nil {
			return Settings{}, err
		}
	}

	var s Settings
	var missing []string

	if v := gjson.GetBytes(data, keyPython); v.Type == gjson.String && v.Str != "" {
		s.Python = v.Str
	} else {
		missing = append(missing, keyPython)
	}

	if v := gjson.GetBytes(data, keyModule); v.Type == gjson.String && v.Str != "" {
		s.Module = v.Str
	} else {
		missing = append(missing, keyModule)
	}

	if args, ok := stringArray(gjson.GetBytes(data, keyArgs)); ok {
		s.Args = args
	} else {
		missing = append(missing, keyArgs)
	}

	if len(missing) > 0 {
		return Settings{}, &InvalidSettingsError{Path: root, Missing: missing}
	}
	return s, nil
}

// ReadSettings loads the settings document of the playground at root.
func ReadSettings(fsys vfs.VFS, root string) (Settings, error) {
	path := fsys.Join(root, SettingsFile)
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, &SettingsNotFoundError{Path: root}
		}
		return Settings{}, err
	}
	return DecodeSettings(root, path, data)
}

func stringArray(v gjson.Result) ([]string, bool) {
	if !v.IsArray() {
		return nil, false
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, false
		}
		out = append(out, item.Str)
	}
	return out, true
}
