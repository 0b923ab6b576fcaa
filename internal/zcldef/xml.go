package zcldef

import (
	"encoding/xml"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type xmlConfigurator struct {
	XMLName  xml.Name     `xml:"configurator"`
	Clusters []xmlCluster `xml:"cluster"`
	Global   *xmlGlobal   `xml:"global"`
}

type xmlCluster struct {
	Name             string               `xml:"name"`
	Code             string               `xml:"code"`
	Define           string               `xml:"define"`
	Attributes       []xmlAttribute       `xml:"attribute"`
	GlobalAttributes []xmlGlobalAttribute `xml:"globalAttribute"`
	Commands         []xmlCommand         `xml:"command"`
	Events           []xmlEvent           `xml:"event"`
}

type xmlGlobal struct {
	Attributes []xmlAttribute `xml:"attribute"`
}

type xmlAttribute struct {
	Side        string `xml:"side,attr"`
	Code        string `xml:"code,attr"`
	Type        string `xml:"type,attr"`
	Default     string `xml:"default,attr"`
	Text        string `xml:",chardata"`
	Description string `xml:"description"`
}

type xmlGlobalAttribute struct {
	Side  string `xml:"side,attr"`
	Code  string `xml:"code,attr"`
	Value string `xml:"value,attr"`
}

type xmlCommand struct {
	Source string `xml:"source,attr"`
	Code   string `xml:"code,attr"`
	Name   string `xml:"name,attr"`
}

type xmlEvent struct {
	Side string `xml:"side,attr"`
	Code string `xml:"code,attr"`
	Name string `xml:"name,attr"`
}

func loadConfigurator(filename string) (*xmlConfigurator, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}

	var c xmlConfigurator
	if err := xml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filename)
	}

	return &c, nil
}

// ParseCode parses an XML code attribute: a 0x prefix means hexadecimal, anything else is decimal.
func ParseCode(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return parseUint32(s[2:], 16)
	}
	return parseUint32(s, 10)
}

// parseHexCode parses a cluster <code> element, which is always hexadecimal with or without prefix.
func parseHexCode(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return parseUint32(s, 16)
}

func parseUint32(s string, base int) (uint32, error) {
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid code %q", s)
	}
	return uint32(v), nil
}

func (a xmlAttribute) toDefinition() (AttributeDefinition, error) {
	code, err := ParseCode(a.Code)
	if err != nil {
		return AttributeDefinition{}, err
	}

	name := strings.TrimSpace(a.Text)
	if name == "" {
		name = strings.TrimSpace(a.Description)
	}

	def := AttributeDefinition{
		Code:    code,
		Name:    name,
		Side:    a.Side,
		Type:    a.Type,
		Default: a.Default,
	}
	def.DataType, _ = DataTypeOf(a.Type)

	return def, nil
}
