// Package jsondoc reads, validates and rewrites JSON documents owned by the Matter tree.
// Documents stay as raw bytes so edits keep key order and every field this tool does not touch.
package jsondoc

import (
	"bytes"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/pretty"
)

// Kind names an embedded schema.
type Kind string

const (
	ZclManifest Kind = "zcl.schema.json"
	ClusterList Kind = "zap-cluster-list.schema.json"
	ZapDocument Kind = "zap-document.schema.json"
)

const (
	ManifestIndent = "    "
	ZapIndent      = "  "
)

const schemaBaseURL = "https://github.com/supby/zclext/schemas/"

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasMu sync.Mutex
	schemas   = map[Kind]*jsonschema.Schema{}
)

func compiledSchema(kind Kind) (*jsonschema.Schema, error) {
	schemasMu.Lock()
	defer schemasMu.Unlock()

	if s, ok := schemas[kind]; ok {
		return s, nil
	}

	data, err := schemaFS.ReadFile("schemas/" + string(kind))
	if err != nil {
		return nil, errors.Wrapf(err, "unknown document kind %s", kind)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	url := schemaBaseURL + string(kind)
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, errors.Wrapf(err, "adding schema %s", kind)
	}

	s, err := compiler.Compile(url)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling schema %s", kind)
	}

	schemas[kind] = s
	return s, nil
}

// Validate checks that data is well-formed JSON with the shape zclext relies on for kind.
func Validate(kind Kind, data []byte) error {
	s, err := compiledSchema(kind)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return errors.Wrap(err, "invalid JSON")
	}

	if err := s.Validate(v); err != nil {
		return errors.Wrapf(err, "unexpected %s document", strings.TrimSuffix(string(kind), ".schema.json"))
	}

	return nil
}

// ReadFile reads and validates a document.
func ReadFile(filename string, kind Kind) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}

	if err := Validate(kind, data); err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}

	return data, nil
}

// Format re-indents data without reordering keys. Arrays are always expanded one element
// per line, matching what the ZAP tooling writes.
func Format(data []byte, indent string) []byte {
	return pretty.PrettyOptions(data, &pretty.Options{
		Width:    0,
		Prefix:   "",
		Indent:   indent,
		SortKeys: false,
	})
}

// WriteFile replaces filename through a temp file in the same directory, so an interrupted
// write leaves the previous content in place. The file mode is preserved.
func WriteFile(filename string, data []byte) error {
	mode := os.FileMode(0644)
	if fi, err := os.Stat(filename); err == nil {
		mode = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", filename)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", filename)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "writing %s", filename)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "replacing %s", filename)
	}

	return nil
}

// Marshal encodes v without HTML escaping, so names like "A&B" survive unchanged.
func Marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EscapeKey escapes an object key for use as one gjson/sjson path component.
func EscapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
