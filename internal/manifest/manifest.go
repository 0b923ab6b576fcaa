// Package manifest registers extension files in the Matter tree's JSON manifests.
package manifest

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/supby/zclext/internal/jsondoc"
)

type ArrayEntry struct {
	Field string
	Value string
}

// AppendToArrays appends each entry's value to its array field, in order, and rewrites the file.
// With dedupe set, values already present in the field are skipped. It returns how many values
// were appended; the file is left untouched when that is zero.
func AppendToArrays(filename string, kind jsondoc.Kind, entries []ArrayEntry, dedupe bool) (int, error) {
	doc, err := jsondoc.ReadFile(filename, kind)
	if err != nil {
		return 0, err
	}

	appended := 0
	for _, e := range entries {
		path := jsondoc.EscapeKey(e.Field)

		current := gjson.GetBytes(doc, path)
		if !current.IsArray() {
			return 0, errors.Errorf("%s: %s is not an array", filename, e.Field)
		}

		if dedupe && containsString(current, e.Value) {
			continue
		}

		doc, err = sjson.SetBytes(doc, path+".-1", e.Value)
		if err != nil {
			return 0, errors.Wrapf(err, "%s: appending to %s", filename, e.Field)
		}
		appended++
	}

	if appended == 0 {
		return 0, nil
	}

	if err := jsondoc.WriteFile(filename, jsondoc.Format(doc, jsondoc.ManifestIndent)); err != nil {
		return 0, err
	}

	return appended, nil
}

// SetMapEntry sets field[key] = value in an object-typed field and rewrites the file.
// An existing key is replaced.
func SetMapEntry(filename string, kind jsondoc.Kind, field, key string, value interface{}) error {
	doc, err := jsondoc.ReadFile(filename, kind)
	if err != nil {
		return err
	}

	fieldPath := jsondoc.EscapeKey(field)
	if !gjson.GetBytes(doc, fieldPath).IsObject() {
		return errors.Errorf("%s: %s is not an object", filename, field)
	}

	raw, err := jsondoc.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "%s: encoding %s", filename, key)
	}

	doc, err = sjson.SetRawBytes(doc, fieldPath+"."+jsondoc.EscapeKey(key), raw)
	if err != nil {
		return errors.Wrapf(err, "%s: setting %s.%s", filename, field, key)
	}

	return jsondoc.WriteFile(filename, jsondoc.Format(doc, jsondoc.ManifestIndent))
}

func containsString(arr gjson.Result, value string) bool {
	for _, v := range arr.Array() {
		if v.Type == gjson.String && v.String() == value {
			return true
		}
	}
	return false
}
