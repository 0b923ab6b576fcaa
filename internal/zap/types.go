package zap

import "github.com/shimmeringbee/zigbee"

// ClusterDescriptor is one entry of an endpoint type's "clusters" list in a .zap document.
// Field order follows the order ZAP writes them.
type ClusterDescriptor struct {
	Name       string                   `json:"name"`
	Code       uint32                   `json:"code"`
	MfgCode    *zigbee.ManufacturerCode `json:"mfgCode"`
	Define     string                   `json:"define"`
	Side       string                   `json:"side"`
	Enabled    int                      `json:"enabled"`
	Commands   []CommandDescriptor      `json:"commands"`
	Attributes []AttributeDescriptor    `json:"attributes"`
	Events     []EventDescriptor        `json:"events"`
}

type AttributeDescriptor struct {
	Name             string                   `json:"name"`
	Code             uint32                   `json:"code"`
	MfgCode          *zigbee.ManufacturerCode `json:"mfgCode"`
	Side             string                   `json:"side"`
	Type             string                   `json:"type"`
	Included         int                      `json:"included"`
	StorageOption    string                   `json:"storageOption"`
	Singleton        int                      `json:"singleton"`
	Bounded          int                      `json:"bounded"`
	DefaultValue     string                   `json:"defaultValue"`
	Reportable       int                      `json:"reportable"`
	MinInterval      int                      `json:"minInterval"`
	MaxInterval      int                      `json:"maxInterval"`
	ReportableChange int                      `json:"reportableChange"`
}

type CommandDescriptor struct {
	Name       string                   `json:"name"`
	Code       uint32                   `json:"code"`
	MfgCode    *zigbee.ManufacturerCode `json:"mfgCode"`
	Source     string                   `json:"source"`
	IsIncoming int                      `json:"isIncoming"`
	IsEnabled  int                      `json:"isEnabled"`
}

type EventDescriptor struct {
	Name     string                   `json:"name"`
	Code     uint32                   `json:"code"`
	MfgCode  *zigbee.ManufacturerCode `json:"mfgCode"`
	Side     string                   `json:"side"`
	Included int                      `json:"included"`
}

// AttributeDefaults are the storage and reporting flags stamped on every attribute.
type AttributeDefaults struct {
	StorageOption    string
	Reportable       int
	MinInterval      int
	MaxInterval      int
	ReportableChange int
	// ExplicitDefaultValue is the defaultValue of attributes declared by the cluster itself.
	ExplicitDefaultValue string
}

func DefaultAttributeDefaults() AttributeDefaults {
	return AttributeDefaults{
		StorageOption:        "RAM",
		Reportable:           1,
		MinInterval:          0,
		MaxInterval:          1,
		ReportableChange:     0,
		ExplicitDefaultValue: "1",
	}
}

type Options struct {
	Attributes AttributeDefaults
	// Manufacturer is written as mfgCode on every descriptor; NoManufacturer writes null.
	Manufacturer zigbee.ManufacturerCode
}
