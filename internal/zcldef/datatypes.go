package zcldef

import (
	"strings"

	"github.com/shimmeringbee/zcl"
)

// zapTypes maps ZAP type tags to the ZCL wire type they are encoded as.
// Matter-only aliases (vendor_id, fabric_idx, ...) map to their underlying integer type.
var zapTypes = map[string]zcl.AttributeDataType{
	"boolean": zcl.TypeBoolean,

	"bitmap8":  zcl.TypeBitmap8,
	"bitmap16": zcl.TypeBitmap16,
	"bitmap24": zcl.TypeBitmap24,
	"bitmap32": zcl.TypeBitmap32,
	"bitmap64": zcl.TypeBitmap64,

	"int8u":  zcl.TypeUnsignedInt8,
	"int16u": zcl.TypeUnsignedInt16,
	"int24u": zcl.TypeUnsignedInt24,
	"int32u": zcl.TypeUnsignedInt32,
	"int40u": zcl.TypeUnsignedInt40,
	"int48u": zcl.TypeUnsignedInt48,
	"int56u": zcl.TypeUnsignedInt56,
	"int64u": zcl.TypeUnsignedInt64,

	"int8s":  zcl.TypeSignedInt8,
	"int16s": zcl.TypeSignedInt16,
	"int24s": zcl.TypeSignedInt24,
	"int32s": zcl.TypeSignedInt32,
	"int40s": zcl.TypeSignedInt40,
	"int48s": zcl.TypeSignedInt48,
	"int56s": zcl.TypeSignedInt56,
	"int64s": zcl.TypeSignedInt64,

	"enum8":  zcl.TypeEnum8,
	"enum16": zcl.TypeEnum16,

	"single": zcl.TypeFloatSingle,
	"double": zcl.TypeFloatDouble,

	"octet_string":      zcl.TypeStringOctet8,
	"char_string":       zcl.TypeStringCharacter8,
	"long_octet_string": zcl.TypeStringOctet16,
	"long_char_string":  zcl.TypeStringCharacter16,

	"array":  zcl.TypeArray,
	"struct": zcl.TypeStructure,

	"cluster_id":   zcl.TypeClusterID,
	"attrib_id":    zcl.TypeAttributeID,
	"ieee_address": zcl.TypeIEEEAddress,

	"vendor_id":   zcl.TypeUnsignedInt16,
	"fabric_idx":  zcl.TypeUnsignedInt8,
	"endpoint_no": zcl.TypeUnsignedInt16,
	"epoch_s":     zcl.TypeUnsignedInt32,
	"epoch_us":    zcl.TypeUnsignedInt64,
	"node_id":     zcl.TypeUnsignedInt64,
	"percent":     zcl.TypeUnsignedInt8,
}

// DataTypeOf returns the ZCL data type for a ZAP type tag. Tags are case-insensitive,
// global-attributes.xml spells them in upper case.
func DataTypeOf(tag string) (zcl.AttributeDataType, bool) {
	t, ok := zapTypes[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return zcl.TypeUnknown, false
	}
	return t, true
}

// IsArrayType reports whether the tag is the ZAP list type.
func IsArrayType(tag string) bool {
	return strings.EqualFold(strings.TrimSpace(tag), "array")
}
