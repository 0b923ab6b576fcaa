package zcldef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shimmeringbee/zcl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	hex, err := ParseCode("0x04")
	require.NoError(t, err)
	dec, err := ParseCode("4")
	require.NoError(t, err)

	assert.Equal(t, uint32(4), hex)
	assert.Equal(t, hex, dec)

	v, err := ParseCode("0XFFFD")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFD), v)

	v, err = ParseCode(" 10 ")
	require.NoError(t, err)
	assert.Equal(t, uint32(10), v)

	_, err = ParseCode("0xZZ")
	assert.Error(t, err)

	_, err = ParseCode("")
	assert.Error(t, err)
}

func TestParseHexCode(t *testing.T) {
	v, err := parseHexCode("0x0009")
	require.NoError(t, err)
	assert.Equal(t, uint32(9), v)

	v, err = parseHexCode("0010")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x10), v)
}

func TestLoadCluster(t *testing.T) {
	c, err := LoadCluster(filepath.Join("testdata", "device-information-cluster.xml"))
	require.NoError(t, err)

	assert.Equal(t, "Apple Device Information", c.Name)
	assert.Equal(t, uint32(0x130AFC01), c.Code)
	assert.Equal(t, "APPLE_DEVICE_INFORMATION_CLUSTER", c.Define)

	require.Len(t, c.Attributes, 3)
	assert.Equal(t, AttributeDefinition{
		Code:     0,
		Name:     "SupportsTapToUnlock",
		Side:     SideServer,
		Type:     "boolean",
		DataType: zcl.TypeBoolean,
	}, c.Attributes[0])
	assert.Equal(t, uint32(4), c.Attributes[1].Code)
	assert.Equal(t, "SupportsWEDGE", c.Attributes[1].Name)
	assert.Equal(t, zcl.TypeUnsignedInt8, c.Attributes[1].DataType)
	assert.Equal(t, "ProductType", c.Attributes[2].Name)

	assert.Equal(t, map[uint32]string{0xFFFD: "2"}, c.GlobalOverrides)

	require.Len(t, c.Commands, 2)
	assert.Equal(t, CommandDefinition{Code: 0, Name: "SetHomeCredential", Source: SideClient}, c.Commands[0])
	assert.Equal(t, CommandDefinition{Code: 1, Name: "SetHomeCredentialResponse", Source: SideServer}, c.Commands[1])

	require.Len(t, c.Events, 1)
	assert.Equal(t, EventDefinition{Code: 0, Name: "DeviceReset", Side: SideServer}, c.Events[0])
}

func TestLoadClusterSingleAttribute(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "cluster.xml")
	content := `<configurator><cluster>
  <name>Test</name><code>0x0009</code><define>TEST_CLUSTER</define>
  <attribute code="0x0000" side="server" type="int8u">TestAttr</attribute>
</cluster></configurator>`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0600))

	c, err := LoadCluster(filename)
	require.NoError(t, err)

	assert.Equal(t, uint32(9), c.Code)
	require.Len(t, c.Attributes, 1)
	assert.Equal(t, "TestAttr", c.Attributes[0].Name)
	assert.Equal(t, SideServer, c.Attributes[0].Side)
	assert.Equal(t, uint32(0), c.Attributes[0].Code)
	assert.Equal(t, "int8u", c.Attributes[0].Type)
	assert.Empty(t, c.Commands)
	assert.Empty(t, c.Events)
}

func TestLoadClusterErrors(t *testing.T) {
	_, err := LoadCluster(filepath.Join("testdata", "does-not-exist.xml"))
	assert.Error(t, err)

	_, err = LoadCluster(filepath.Join("testdata", "two-clusters.xml"))
	assert.Error(t, err)

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(broken, []byte("<configurator><cluster>"), 0600))
	_, err = LoadCluster(broken)
	assert.Error(t, err)

	badCode := filepath.Join(dir, "bad-code.xml")
	require.NoError(t, os.WriteFile(badCode, []byte(`<configurator><cluster><name>X</name><code>0x01</code>
<attribute side="server" code="0xQQ" type="int8u">Broken</attribute></cluster></configurator>`), 0600))
	_, err = LoadCluster(badCode)
	assert.Error(t, err)
}

func TestLoadGlobalAttributes(t *testing.T) {
	globals, err := LoadGlobalAttributes(filepath.Join("testdata", "global-attributes.xml"))
	require.NoError(t, err)

	require.Len(t, globals, 3)
	for _, g := range globals {
		assert.Equal(t, SideServer, g.Side)
		assert.False(t, IsArrayType(g.Type), "array attribute %s leaked through", g.Name)
	}

	assert.Equal(t, "ClusterRevision", globals[0].Name)
	assert.Equal(t, uint32(0xFFFD), globals[0].Code)
	assert.Equal(t, "0x0001", globals[0].Default)
	assert.Equal(t, zcl.TypeUnsignedInt16, globals[0].DataType)

	assert.Equal(t, "FeatureMap", globals[1].Name)
	assert.Equal(t, "AttributeReportingStatus", globals[2].Name)
}

func TestLoadGlobalAttributesWithoutGlobal(t *testing.T) {
	_, err := LoadGlobalAttributes(filepath.Join("testdata", "two-clusters.xml"))
	assert.Error(t, err)
}

func TestDataTypeOf(t *testing.T) {
	dt, ok := DataTypeOf("int8u")
	assert.True(t, ok)
	assert.Equal(t, zcl.TypeUnsignedInt8, dt)

	dt, ok = DataTypeOf("INT16U")
	assert.True(t, ok)
	assert.Equal(t, zcl.TypeUnsignedInt16, dt)

	dt, ok = DataTypeOf("char_string")
	assert.True(t, ok)
	assert.Equal(t, zcl.TypeStringCharacter8, dt)

	dt, ok = DataTypeOf("some_struct_name")
	assert.False(t, ok)
	assert.Equal(t, zcl.TypeUnknown, dt)
}

func TestIsArrayType(t *testing.T) {
	assert.True(t, IsArrayType("array"))
	assert.True(t, IsArrayType("ARRAY"))
	assert.False(t, IsArrayType("int8u"))
}
