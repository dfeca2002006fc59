package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// JSONParser parses JSON documents whose top-level value is an object.
// Numbers are kept as json.Number so integers round-trip exactly.
type JSONParser struct{}

// Parse implements Parser.
func (JSONParser) Parse(source string, data []byte) (map[string]any, error) {
	value, err := decodeJSON(source, data)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case nil:
		return nil, &ParseError{Path: source, Message: "top-level value must be an object"}
	default:
		perr := &ParseError{Path: source, Message: "top-level value must be an object, got " + jsonKind(v)}
		start := len(data) - len(bytes.TrimLeft(data, " \t\r\n"))
		perr.Line, perr.Column = position(data, int64(start))
		return nil, perr
	}
}

// ParseValue parses an arbitrary JSON value, such as a command-line
// argument.
func ParseValue(source string, data []byte) (any, error) {
	return decodeJSON(source, data)
}

func decodeJSON(source string, data []byte) (any, error) {
	// Unmarshal reports syntax errors with offsets into data, including
	// trailing garbage after the first value.
	if !json.Valid(data) {
		var discard any
		return nil, jsonParseError(source, data, json.Unmarshal(data, &discard))
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, jsonParseError(source, data, err)
	}
	return value, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func jsonParseError(source string, data []byte, err error) error {
	perr := &ParseError{Path: source, Message: err.Error(), Err: err}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		perr.Line, perr.Column = position(data, syntaxErr.Offset)
	}
	return perr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	column = int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, column
}
