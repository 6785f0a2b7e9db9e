package inspect

import "github.com/remora-debug/remora/pkg/typedesc"

// SystemCEnums returns descriptors for the stock SystemC enumerations a
// hardware-modeling debug session meets constantly. Underlying storage
// is a plain int in all three.
func SystemCEnums() []*typedesc.Descriptor {
	return []*typedesc.Descriptor{
		typedesc.NewEnum("sc_dt::sc_logic_value_t", 4, true, []typedesc.EnumValue{
			{Value: 0, Name: "SC_LOGIC_0"},
			{Value: 1, Name: "SC_LOGIC_1"},
			{Value: 2, Name: "SC_LOGIC_Z"},
			{Value: 3, Name: "SC_LOGIC_X"},
		}),
		typedesc.NewEnum("sc_core::sc_time_unit", 4, true, []typedesc.EnumValue{
			{Value: 0, Name: "SC_FS"},
			{Value: 1, Name: "SC_PS"},
			{Value: 2, Name: "SC_NS"},
			{Value: 3, Name: "SC_US"},
			{Value: 4, Name: "SC_MS"},
			{Value: 5, Name: "SC_SEC"},
		}),
		typedesc.NewEnum("sc_core::sc_severity", 4, true, []typedesc.EnumValue{
			{Value: 0, Name: "SC_INFO"},
			{Value: 1, Name: "SC_WARNING"},
			{Value: 2, Name: "SC_ERROR"},
			{Value: 3, Name: "SC_FATAL"},
		}),
	}
}

// CPrimitives returns descriptors for the C/C++ fundamental types on an
// LP64 target, keyed by the names debug info reports.
func CPrimitives() []*typedesc.Descriptor {
	return []*typedesc.Descriptor{
		typedesc.NewPrimitive("bool", 1, typedesc.FormatBool),
		typedesc.NewPrimitive("char", 1, typedesc.FormatChar),
		typedesc.NewPrimitive("signed char", 1, typedesc.FormatInt),
		typedesc.NewPrimitive("unsigned char", 1, typedesc.FormatUint),
		typedesc.NewPrimitive("short", 2, typedesc.FormatInt),
		typedesc.NewPrimitive("unsigned short", 2, typedesc.FormatUint),
		typedesc.NewPrimitive("int", 4, typedesc.FormatInt),
		typedesc.NewPrimitive("unsigned int", 4, typedesc.FormatUint),
		typedesc.NewPrimitive("long", 8, typedesc.FormatInt),
		typedesc.NewPrimitive("unsigned long", 8, typedesc.FormatUint),
		typedesc.NewPrimitive("long long", 8, typedesc.FormatInt),
		typedesc.NewPrimitive("unsigned long long", 8, typedesc.FormatUint),
		typedesc.NewPrimitive("float", 4, typedesc.FormatFloat),
		typedesc.NewPrimitive("double", 8, typedesc.FormatFloat),
		typedesc.NewPrimitive("int8_t", 1, typedesc.FormatInt),
		typedesc.NewPrimitive("uint8_t", 1, typedesc.FormatUint),
		typedesc.NewPrimitive("int16_t", 2, typedesc.FormatInt),
		typedesc.NewPrimitive("uint16_t", 2, typedesc.FormatUint),
		typedesc.NewPrimitive("int32_t", 4, typedesc.FormatInt),
		typedesc.NewPrimitive("uint32_t", 4, typedesc.FormatUint),
		typedesc.NewPrimitive("int64_t", 8, typedesc.FormatInt),
		typedesc.NewPrimitive("uint64_t", 8, typedesc.FormatUint),
	}
}
