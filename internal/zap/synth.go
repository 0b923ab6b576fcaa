package zap

import (
	"github.com/shimmeringbee/zigbee"

	"github.com/supby/zclext/internal/zcldef"
)

// BuildClusterDescriptor synthesizes the server-side descriptor of cluster. The cluster's own
// attributes come first with the explicit default value, followed by globals, whose default is
// the cluster's override for that code when one exists.
func BuildClusterDescriptor(cluster zcldef.ClusterDefinition, globals []zcldef.AttributeDefinition, opts Options) ClusterDescriptor {
	mfg := mfgCode(opts.Manufacturer)

	d := ClusterDescriptor{
		Name:       cluster.Name,
		Code:       cluster.Code,
		MfgCode:    mfg,
		Define:     cluster.Define,
		Side:       zcldef.SideServer,
		Enabled:    1,
		Commands:   make([]CommandDescriptor, 0, len(cluster.Commands)),
		Attributes: make([]AttributeDescriptor, 0, len(cluster.Attributes)+len(globals)),
		Events:     make([]EventDescriptor, 0, len(cluster.Events)),
	}

	for _, a := range cluster.Attributes {
		d.Attributes = append(d.Attributes, attributeDescriptor(a, opts.Attributes.ExplicitDefaultValue, mfg, opts.Attributes))
	}

	for _, g := range globals {
		defaultValue := g.Default
		if v, ok := cluster.GlobalOverrides[g.Code]; ok {
			defaultValue = v
		}
		d.Attributes = append(d.Attributes, attributeDescriptor(g, defaultValue, mfg, opts.Attributes))
	}

	for _, c := range cluster.Commands {
		incoming := 0
		if c.Source == zcldef.SideClient {
			incoming = 1
		}
		d.Commands = append(d.Commands, CommandDescriptor{
			Name:       c.Name,
			Code:       c.Code,
			MfgCode:    mfg,
			Source:     c.Source,
			IsIncoming: incoming,
			IsEnabled:  1,
		})
	}

	for _, e := range cluster.Events {
		d.Events = append(d.Events, EventDescriptor{
			Name:     e.Name,
			Code:     e.Code,
			MfgCode:  mfg,
			Side:     e.Side,
			Included: 1,
		})
	}

	return d
}

func attributeDescriptor(a zcldef.AttributeDefinition, defaultValue string, mfg *zigbee.ManufacturerCode, defaults AttributeDefaults) AttributeDescriptor {
	return AttributeDescriptor{
		Name:             a.Name,
		Code:             a.Code,
		MfgCode:          mfg,
		Side:             a.Side,
		Type:             a.Type,
		Included:         1,
		StorageOption:    defaults.StorageOption,
		Singleton:        0,
		Bounded:          0,
		DefaultValue:     defaultValue,
		Reportable:       defaults.Reportable,
		MinInterval:      defaults.MinInterval,
		MaxInterval:      defaults.MaxInterval,
		ReportableChange: defaults.ReportableChange,
	}
}

func mfgCode(code zigbee.ManufacturerCode) *zigbee.ManufacturerCode {
	if code == zigbee.NoManufacturer {
		return nil
	}
	return &code
}
