package zcldef

import (
	"strings"

	"github.com/pkg/errors"
)

// LoadCluster reads a ZAP cluster XML file holding exactly one <cluster>.
func LoadCluster(filename string) (ClusterDefinition, error) {
	c, err := loadConfigurator(filename)
	if err != nil {
		return ClusterDefinition{}, err
	}

	if len(c.Clusters) != 1 {
		return ClusterDefinition{}, errors.Errorf("%s: expected exactly one <cluster>, found %d", filename, len(c.Clusters))
	}
	xc := c.Clusters[0]

	code, err := parseHexCode(xc.Code)
	if err != nil {
		return ClusterDefinition{}, errors.Wrapf(err, "%s: cluster code", filename)
	}

	ret := ClusterDefinition{
		Name:            strings.TrimSpace(xc.Name),
		Code:            code,
		Define:          xc.Define,
		Attributes:      make([]AttributeDefinition, 0, len(xc.Attributes)),
		Commands:        make([]CommandDefinition, 0, len(xc.Commands)),
		Events:          make([]EventDefinition, 0, len(xc.Events)),
		GlobalOverrides: make(map[uint32]string),
	}

	if ret.Name == "" {
		return ClusterDefinition{}, errors.Errorf("%s: cluster has no <name>", filename)
	}

	for _, ga := range xc.GlobalAttributes {
		gaCode, err := ParseCode(ga.Code)
		if err != nil {
			return ClusterDefinition{}, errors.Wrapf(err, "%s: globalAttribute", filename)
		}
		ret.GlobalOverrides[gaCode] = ga.Value
	}

	for _, xa := range xc.Attributes {
		a, err := xa.toDefinition()
		if err != nil {
			return ClusterDefinition{}, errors.Wrapf(err, "%s: attribute", filename)
		}
		ret.Attributes = append(ret.Attributes, a)
	}

	for _, xcmd := range xc.Commands {
		cmdCode, err := ParseCode(xcmd.Code)
		if err != nil {
			return ClusterDefinition{}, errors.Wrapf(err, "%s: command %s", filename, xcmd.Name)
		}
		ret.Commands = append(ret.Commands, CommandDefinition{
			Code:   cmdCode,
			Name:   xcmd.Name,
			Source: xcmd.Source,
		})
	}

	for _, xe := range xc.Events {
		evCode, err := ParseCode(xe.Code)
		if err != nil {
			return ClusterDefinition{}, errors.Wrapf(err, "%s: event %s", filename, xe.Name)
		}
		ret.Events = append(ret.Events, EventDefinition{
			Code: evCode,
			Name: xe.Name,
			Side: xe.Side,
		})
	}

	return ret, nil
}

// LoadGlobalAttributes reads global-attributes.xml and keeps the server-side, non-list
// attributes, which are the ones a server cluster carries in a ZAP document.
func LoadGlobalAttributes(filename string) ([]AttributeDefinition, error) {
	c, err := loadConfigurator(filename)
	if err != nil {
		return nil, err
	}

	if c.Global == nil {
		return nil, errors.Errorf("%s: no <global> element", filename)
	}

	ret := make([]AttributeDefinition, 0, len(c.Global.Attributes))
	for _, xa := range c.Global.Attributes {
		if xa.Side != SideServer || IsArrayType(xa.Type) {
			continue
		}

		a, err := xa.toDefinition()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: global attribute", filename)
		}
		ret = append(ret, a)
	}

	return ret, nil
}
