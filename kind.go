package kvmabi

import "strings"

// InputKind is the logical input category of a type, as used by form-driven
// tooling to decide how to collect and coerce a value before encoding.
type InputKind string

const (
	InputNumber   InputKind = "number"
	InputString   InputKind = "string"
	InputArray    InputKind = "array"
	InputCheckbox InputKind = "checkbox"
	InputObject   InputKind = "object"
)

var inputKinds = map[string]InputKind{
	"u8":      InputNumber,
	"u16":     InputNumber,
	"u32":     InputNumber,
	"u64":     InputNumber,
	"usize":   InputNumber,
	"i8":      InputNumber,
	"i16":     InputNumber,
	"i32":     InputNumber,
	"i64":     InputNumber,
	"isize":   InputNumber,
	"biguint": InputNumber,
	"bigint":  InputNumber,

	"managedbuffer":   InputString,
	"boxedbytes":      InputString,
	"&[u8]":           InputString,
	"vec<u8>":         InputString,
	"string":          InputString,
	"&str":            InputString,
	"bytes":           InputString,
	"tokenidentifier": InputString,
	"address":         InputString,

	"list":       InputArray,
	"managedvec": InputArray,
	"vec":        InputArray,
	"array":      InputArray,
	"variadic":   InputArray,
	"multi":      InputArray,
	"tuple":      InputArray,

	"bool": InputCheckbox,
}

// CleanType strips an outer Option<...> and returns the family name of what
// remains: the primitive or custom name, or the wrapper keyword ("List",
// "tuple", ...). Signatures that do not parse are returned trimmed but
// otherwise unchanged.
func CleanType(s string) string {
	t, err := ParseType(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	if t.Kind == KindOption {
		t = t.Elem()
	}
	return t.family()
}

// ClassifyType maps a type signature to its InputKind. Types outside the
// known families are returned unchanged, converted to InputKind.
func ClassifyType(s string) InputKind {
	if kind, ok := inputKinds[strings.ToLower(CleanType(s))]; ok {
		return kind
	}
	return InputKind(s)
}
