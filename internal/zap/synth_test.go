package zap

import (
	"testing"

	"github.com/shimmeringbee/zigbee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supby/zclext/internal/jsondoc"
	"github.com/supby/zclext/internal/zcldef"
)

func testCluster() zcldef.ClusterDefinition {
	return zcldef.ClusterDefinition{
		Name:   "Test",
		Code:   0x0009,
		Define: "TEST_CLUSTER",
		Attributes: []zcldef.AttributeDefinition{
			{Code: 0, Name: "TestAttr", Side: zcldef.SideServer, Type: "int8u"},
		},
		GlobalOverrides: map[uint32]string{0xFFFD: "2"},
	}
}

func testGlobals() []zcldef.AttributeDefinition {
	return []zcldef.AttributeDefinition{
		{Code: 0xFFFD, Name: "ClusterRevision", Side: zcldef.SideServer, Type: "int16u", Default: "0x0001"},
		{Code: 0xFFFC, Name: "FeatureMap", Side: zcldef.SideServer, Type: "bitmap32", Default: "0"},
	}
}

func testOptions() Options {
	return Options{Attributes: DefaultAttributeDefaults(), Manufacturer: zigbee.NoManufacturer}
}

func TestBuildClusterDescriptor(t *testing.T) {
	d := BuildClusterDescriptor(testCluster(), testGlobals(), testOptions())

	assert.Equal(t, "Test", d.Name)
	assert.Equal(t, uint32(9), d.Code)
	assert.Equal(t, "TEST_CLUSTER", d.Define)
	assert.Equal(t, "server", d.Side)
	assert.Equal(t, 1, d.Enabled)
	assert.Nil(t, d.MfgCode)

	require.Len(t, d.Attributes, 3)
	assert.Equal(t, AttributeDescriptor{
		Name:             "TestAttr",
		Code:             0,
		Side:             "server",
		Type:             "int8u",
		Included:         1,
		StorageOption:    "RAM",
		DefaultValue:     "1",
		Reportable:       1,
		MinInterval:      0,
		MaxInterval:      1,
		ReportableChange: 0,
	}, d.Attributes[0])
	assert.Equal(t, "ClusterRevision", d.Attributes[1].Name)
	assert.Equal(t, "FeatureMap", d.Attributes[2].Name)
}

func TestBuildClusterDescriptorGlobalOverride(t *testing.T) {
	globals := testGlobals()
	d := BuildClusterDescriptor(testCluster(), globals, testOptions())

	assert.Equal(t, "2", d.Attributes[1].DefaultValue, "override matched by code")
	assert.Equal(t, "0", d.Attributes[2].DefaultValue, "no override keeps the global default")
	assert.Equal(t, "0x0001", globals[0].Default, "globals must not be mutated")
}

func TestBuildClusterDescriptorEmptyListsEncodeAsArrays(t *testing.T) {
	c := testCluster()
	c.Attributes = nil
	d := BuildClusterDescriptor(c, nil, testOptions())

	raw, err := jsondoc.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"commands":[]`)
	assert.Contains(t, string(raw), `"attributes":[]`)
	assert.Contains(t, string(raw), `"events":[]`)
	assert.Contains(t, string(raw), `"mfgCode":null`)
}

func TestBuildClusterDescriptorCommandsAndEvents(t *testing.T) {
	c := testCluster()
	c.Commands = []zcldef.CommandDefinition{
		{Code: 0, Name: "SetHomeCredential", Source: zcldef.SideClient},
		{Code: 1, Name: "SetHomeCredentialResponse", Source: zcldef.SideServer},
	}
	c.Events = []zcldef.EventDefinition{{Code: 0, Name: "DeviceReset", Side: zcldef.SideServer}}

	d := BuildClusterDescriptor(c, nil, testOptions())

	require.Len(t, d.Commands, 2)
	assert.Equal(t, 1, d.Commands[0].IsIncoming)
	assert.Equal(t, 0, d.Commands[1].IsIncoming)
	assert.Equal(t, 1, d.Commands[1].IsEnabled)

	require.Len(t, d.Events, 1)
	assert.Equal(t, EventDescriptor{Name: "DeviceReset", Code: 0, Side: "server", Included: 1}, d.Events[0])
}

func TestBuildClusterDescriptorManufacturer(t *testing.T) {
	opts := testOptions()
	opts.Manufacturer = zigbee.ManufacturerCode(0x1349)

	d := BuildClusterDescriptor(testCluster(), testGlobals(), opts)

	require.NotNil(t, d.MfgCode)
	assert.Equal(t, zigbee.ManufacturerCode(0x1349), *d.MfgCode)
	for _, a := range d.Attributes {
		require.NotNil(t, a.MfgCode)
		assert.Equal(t, zigbee.ManufacturerCode(0x1349), *a.MfgCode)
	}
}

func TestBuildClusterDescriptorCustomDefaults(t *testing.T) {
	opts := testOptions()
	opts.Attributes.StorageOption = "NVM"
	opts.Attributes.ExplicitDefaultValue = "0"
	opts.Attributes.MaxInterval = 65534

	d := BuildClusterDescriptor(testCluster(), testGlobals(), opts)

	assert.Equal(t, "NVM", d.Attributes[0].StorageOption)
	assert.Equal(t, "0", d.Attributes[0].DefaultValue)
	assert.Equal(t, 65534, d.Attributes[2].MaxInterval)
}
