package loader

import (
	"errors"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// YAMLParser parses YAML documents.
type YAMLParser struct{}

// Parse implements Parser.
func (YAMLParser) Parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
				perr.Line, _ = strconv.Atoi(m[1])
			}
		}
		return nil, perr
	}
	if config == nil {
		config = make(map[string]any)
	}
	return normalize(config).(map[string]any), nil
}
