// Package export converts keymap entry lists to and from interchange
// formats.
//
// JSON is the canonical form produced by [keymap.List.MarshalJSON]. YAML and
// TOML are derived from it by decoding into a generic tree and re-encoding,
// so every format carries exactly the same fields. TOML documents require a
// top-level table, so the list is stored under the "entries" key there.
package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/rkm/internal/errors"
	"github.com/thoreinstein/rkm/pkg/fileutil"
	"github.com/thoreinstein/rkm/pkg/keymap"
)

// Format names an interchange format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// tomlRoot is the table key holding the entry array in TOML documents.
const tomlRoot = "entries"

// Formats returns the supported format names.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTOML)}
}

// ParseFormat resolves a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(errors.ErrUnknownFormat, "%q (valid: %s)", s, strings.Join(Formats(), ", "))
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Encode renders list in format f.
func Encode(list keymap.List, f Format) ([]byte, error) {
	if list == nil {
		list = keymap.List{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}

	switch f {
	case FormatJSON:
		return append(data, '\n'), nil
	case FormatYAML:
		tree, err := genericTree(data)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return nil, errors.Wrap(err, "marshaling yaml")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "marshaling yaml")
		}
		return buf.Bytes(), nil
	case FormatTOML:
		tree, err := genericTree(data)
		if err != nil {
			return nil, err
		}
		out, err := toml.Marshal(map[string]any{tomlRoot: tree})
		if err != nil {
			return nil, errors.Wrap(err, "marshaling toml")
		}
		return out, nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownFormat, "%q", string(f))
}

// Decode parses data written in format f. Every entry is validated.
func Decode(data []byte, f Format) (keymap.List, error) {
	var jsonData []byte
	switch f {
	case FormatJSON:
		jsonData = data
	case FormatYAML:
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Wrap(err, "unmarshaling yaml")
		}
		if tree == nil {
			return keymap.List{}, nil
		}
		out, err := json.Marshal(tree)
		if err != nil {
			return nil, errors.Wrap(err, "converting yaml")
		}
		jsonData = out
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "unmarshaling toml")
		}
		entries, ok := doc[tomlRoot]
		if !ok {
			return keymap.List{}, nil
		}
		out, err := json.Marshal(entries)
		if err != nil {
			return nil, errors.Wrap(err, "converting toml")
		}
		jsonData = out
	default:
		return nil, errors.Wrapf(errors.ErrUnknownFormat, "%q", string(f))
	}

	var list keymap.List
	if err := json.Unmarshal(jsonData, &list); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", f)
	}
	return list, nil
}

// WriteFile encodes list and writes it to path atomically.
func WriteFile(path string, list keymap.List, f Format) error {
	data, err := Encode(list, f)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, data, 0o644)
}

// ReadFile decodes the file at path. The format is taken from the extension
// when f is empty.
func ReadFile(path string, f Format) (keymap.List, error) {
	if f == "" {
		var ok bool
		if f, ok = FormatFromPath(path); !ok {
			return nil, errors.Wrapf(errors.ErrUnknownFormat, "cannot infer format of %s", path)
		}
	}
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, f)
}

// genericTree decodes JSON into maps and slices. Whole numbers become int64
// so YAML and TOML print them without a fractional part.
func genericTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, errors.Wrap(err, "decoding json")
	}
	return normalize(tree), nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if child == nil {
				delete(t, k)
				continue
			}
			t[k] = normalize(child)
		}
		return t
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}
