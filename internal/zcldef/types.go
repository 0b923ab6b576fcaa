package zcldef

import "github.com/shimmeringbee/zcl"

const (
	SideServer = "server"
	SideClient = "client"
)

type ClusterDefinition struct {
	Name       string
	Code       uint32
	Define     string
	Attributes []AttributeDefinition
	Commands   []CommandDefinition
	Events     []EventDefinition
	// GlobalOverrides maps a global attribute code to the default value this cluster uses for it.
	GlobalOverrides map[uint32]string
}

type AttributeDefinition struct {
	Code     uint32
	Name     string
	Side     string
	Type     string
	Default  string
	DataType zcl.AttributeDataType
}

type CommandDefinition struct {
	Code   uint32
	Name   string
	Source string
}

type EventDefinition struct {
	Code uint32
	Name string
	Side string
}
