package zap

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/supby/zclext/internal/jsondoc"
)

var (
	ErrRootEndpointNotFound  = errors.New("no endpoint with endpointId 0")
	ErrAmbiguousRootEndpoint = errors.New("more than one endpoint with endpointId 0")
	ErrEndpointTypeNotFound  = errors.New("root endpoint type not found")
)

// RootEndpointType returns the index in endpointTypes of the type used by endpoint 0.
func RootEndpointType(doc []byte) (int, error) {
	var roots []gjson.Result
	gjson.GetBytes(doc, "endpoints").ForEach(func(_, ep gjson.Result) bool {
		id := ep.Get("endpointId")
		if id.Type == gjson.Number && id.Int() == 0 {
			roots = append(roots, ep)
		}
		return true
	})

	switch len(roots) {
	case 0:
		return 0, ErrRootEndpointNotFound
	case 1:
	default:
		return 0, ErrAmbiguousRootEndpoint
	}
	root := roots[0]

	types := gjson.GetBytes(doc, "endpointTypes").Array()

	if idx := root.Get("endpointTypeIndex"); idx.Exists() {
		i := int(idx.Int())
		if i < 0 || i >= len(types) {
			return 0, errors.Wrapf(ErrEndpointTypeNotFound, "endpointTypeIndex %d out of range (%d types)", i, len(types))
		}
		return i, nil
	}

	name := root.Get("endpointTypeName")
	if !name.Exists() {
		return 0, errors.Wrap(ErrEndpointTypeNotFound, "root endpoint has neither endpointTypeIndex nor endpointTypeName")
	}
	for i, t := range types {
		if t.Get("name").String() == name.String() {
			return i, nil
		}
	}

	return 0, errors.Wrapf(ErrEndpointTypeNotFound, "no endpoint type named %q", name.String())
}

// PatchDocument appends d to the root endpoint type's clusters. When a cluster with the same
// name is already there, doc is returned as is and changed is false.
func PatchDocument(doc []byte, d ClusterDescriptor) (out []byte, changed bool, err error) {
	if err := jsondoc.Validate(jsondoc.ZapDocument, doc); err != nil {
		return nil, false, err
	}

	typeIndex, err := RootEndpointType(doc)
	if err != nil {
		return nil, false, err
	}

	clustersPath := fmt.Sprintf("endpointTypes.%d.clusters", typeIndex)

	for _, c := range gjson.GetBytes(doc, clustersPath).Array() {
		if c.Get("name").String() == d.Name {
			return doc, false, nil
		}
	}

	raw, err := jsondoc.Marshal(d)
	if err != nil {
		return nil, false, errors.Wrapf(err, "encoding cluster %s", d.Name)
	}

	out, err = sjson.SetRawBytes(doc, clustersPath+".-1", raw)
	if err != nil {
		return nil, false, errors.Wrapf(err, "appending cluster %s", d.Name)
	}

	return jsondoc.Format(out, jsondoc.ZapIndent), true, nil
}

// PatchFile applies PatchDocument to filename, rewriting it only when the document changed.
func PatchFile(filename string, d ClusterDescriptor) (bool, error) {
	doc, err := jsondoc.ReadFile(filename, jsondoc.ZapDocument)
	if err != nil {
		return false, err
	}

	out, changed, err := PatchDocument(doc, d)
	if err != nil {
		return false, errors.Wrapf(err, "%s", filename)
	}
	if !changed {
		return false, nil
	}

	if err := jsondoc.WriteFile(filename, out); err != nil {
		return false, err
	}
	return true, nil
}
