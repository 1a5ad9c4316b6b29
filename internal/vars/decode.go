package vars

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/gi8lino/templator/internal/output"
)

// schemaBytes holds the embedded JSON Schema for .json variable files.
// It is set by the schemas package init or by SetSchema() in tests.
var schemaBytes []byte

// SetSchema sets the JSON Schema bytes used to validate .json variable
// files. This is called by the schemas package init() or can be called
// in tests.
func SetSchema(data []byte) {
	schemaBytes = data
}

// DecodeFile reads one variable input file and returns its key/value
// pairs. The format is dispatched on the file suffix: .env or .json.
// Any other suffix is a configuration error, raised before the file is
// opened.
func DecodeFile(path, delimiter string) (Map, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".env", ".json":
	default:
		return nil, fmt.Errorf("input file %q does not end with '.env' or '.json'", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file %q: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return decodeJSON(data, path)
	}
	return decodeEnv(data, delimiter, path)
}

// decodeEnv splits each non-empty line on the delimiter. Blank lines
// and #-comments are skipped. Lines without the delimiter or without a
// key are skipped with a warning. If the same key appears on several
// lines, the last occurrence wins.
func decodeEnv(data []byte, delimiter, path string) (Map, error) {
	vars := Map{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	// lines may exceed bufio's default 64KB token limit
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(data)+1)
	nr := 0
	for sc.Scan() {
		nr++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, delimiter)
		if !ok {
			output.Warn("skipping line without delimiter", "file", path, "line", nr, "delimiter", delimiter)
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			output.Warn("skipping line with empty key", "file", path, "line", nr)
			continue
		}
		vars[key] = strings.Trim(strings.TrimSpace(value), `'"`)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	return vars, nil
}

// decodeJSON decodes a flat JSON object, coercing scalar values to
// strings. The embedded schema rejects nested objects and arrays up
// front, so deep structures are never silently stringified. Duplicate
// keys resolve to the last occurrence, as encoding/json parses them.
func decodeJSON(data []byte, path string) (Map, error) {
	if err := validateFlat(data, path); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}

	vars := make(Map, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			vars[key] = v
		case json.Number:
			vars[key] = v.String() // keep the literal form
		case bool:
			vars[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("decoding %q: key %q has a non-scalar value", path, key)
		}
	}
	return vars, nil
}

// validateFlat validates raw JSON bytes against the embedded
// flat-object schema.
func validateFlat(data []byte, path string) error {
	if len(schemaBytes) == 0 {
		return fmt.Errorf("JSON schema not loaded; import the schemas package or call vars.SetSchema")
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("decoding %q: %w", path, err)
	}
	if !result.Valid() {
		parts := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			parts = append(parts, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return fmt.Errorf("decoding %q: %s", path, strings.Join(parts, "; "))
	}
	return nil
}
