package kvmabi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ArgSeparator joins top-level arguments in call data and the items of
// top-level variadic and multi values.
const ArgSeparator = "@"

// Encoder turns Go values into hex-encoded contract data according to a
// schema. An Encoder is immutable and safe for concurrent use.
//
// Integers may be given as any Go integer kind, integral float64 (as produced
// by encoding/json), json.Number, *big.Int, *uint256.Int, or a decimal or
// 0x-prefixed hex string. Byte strings take string or []byte. Addresses take
// a "klv1..." string or 32 raw bytes. Lists take any slice. Structs take
// *Struct, Struct or map[string]any; tuples also take a slice or a map keyed
// by "_0", "_1", ....
type Encoder struct {
	schema *Schema
	cfg    *config
}

// NewEncoder creates an Encoder. schema may be nil when no custom types are
// encoded.
func NewEncoder(schema *Schema, opts ...Option) *Encoder {
	return &Encoder{schema: schema, cfg: newConfig(opts)}
}

// Encode encodes value with nested framing.
func (e *Encoder) Encode(value any, typeStr string) (string, error) {
	return e.EncodeValue(value, typeStr, true)
}

// EncodeValue encodes value as typeStr. Nested framing adds length prefixes,
// list counts and fixed widths; top-level framing uses minimal bytes and
// omits the outermost prefix or count.
func (e *Encoder) EncodeValue(value any, typeStr string, nested bool) (string, error) {
	t, err := ParseType(typeStr)
	if err != nil {
		return "", err
	}
	return e.encode(value, t, nested, 0)
}

// EncodeJSON decodes a JSON document and encodes the result with nested
// framing. Numbers keep their exact decimal text.
func (e *Encoder) EncodeJSON(data []byte, typeStr string) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", &EncodingError{Type: typeStr, Value: data, Err: err}
	}
	return e.Encode(v, typeStr)
}

func (e *Encoder) encode(value any, t *Type, nested bool, depth int) (string, error) {
	if depth > maxDecodeDepth {
		return "", &TypeError{Type: t.String(), Err: errTooDeep}
	}

	switch t.Kind {
	case KindOption:
		return e.encodeOption(value, t, nested, depth)
	case KindList:
		return e.encodeList(value, t, nested, depth)
	case KindTuple:
		return e.encodeTuple(value, t, depth)
	case KindMulti:
		if nested {
			return e.encodeTuple(value, t, depth)
		}
		return e.encodeMulti(value, t, depth)
	case KindVariadic:
		if nested {
			return "", &TypeError{Type: t.String(), Err: errNestedVariadic}
		}
		return e.encodeVariadic(value, t, depth)
	case KindCustom:
		return e.encodeCustom(value, t, nested, depth)
	default:
		return e.encodeLeaf(value, t, nested)
	}
}

func (e *Encoder) encodeOption(value any, t *Type, nested bool, depth int) (string, error) {
	absent := ""
	if nested {
		absent = "00"
	}
	if isNil(value) {
		return absent, nil
	}

	elem := t.Elem()
	if elem.isNumeric() {
		if _, err := coerceBigInt(value); err != nil {
			e.cfg.logger.Debug("encoding non-numeric option value as absent",
				zap.String("type", t.String()),
				zap.Any("value", value),
			)
			return absent, nil
		}
	}

	inner, err := e.encode(value, elem, true, depth+1)
	if err != nil {
		return "", err
	}
	return "01" + inner, nil
}

func (e *Encoder) encodeList(value any, t *Type, nested bool, depth int) (string, error) {
	items, ok := sliceItems(value)
	if !ok {
		return "", &EncodingError{Type: t.String(), Value: value, Err: errors.New("expected a slice")}
	}

	var sb strings.Builder
	if nested {
		sb.WriteString(lengthPrefix(len(items)))
	}
	for _, item := range items {
		s, err := e.encode(item, t.Elem(), true, depth+1)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// encodeVariadic encodes each element top-level and joins them with ArgSeparator.
func (e *Encoder) encodeVariadic(value any, t *Type, depth int) (string, error) {
	items, ok := sliceItems(value)
	if !ok {
		items = []any{value}
	}

	parts := make([]string, len(items))
	for i, item := range items {
		s, err := e.encode(item, t.Elem(), false, depth+1)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ArgSeparator), nil
}

// encodeMulti encodes each item top-level and joins them with ArgSeparator.
func (e *Encoder) encodeMulti(value any, t *Type, depth int) (string, error) {
	items, err := tupleItems(value, t)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(items))
	for i, item := range items {
		s, err := e.encode(item, t.Elems[i], false, depth+1)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ArgSeparator), nil
}

// encodeTuple concatenates the nested encodings of each item.
func (e *Encoder) encodeTuple(value any, t *Type, depth int) (string, error) {
	items, err := tupleItems(value, t)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, item := range items {
		s, err := e.encode(item, t.Elems[i], true, depth+1)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (e *Encoder) encodeCustom(value any, t *Type, nested bool, depth int) (string, error) {
	def, err := e.schema.lookup(t.Name)
	if err != nil {
		return "", err
	}

	switch {
	case def.IsStruct():
		return e.encodeStruct(value, t.Name, def, depth)
	case def.IsEnum():
		return e.encodeEnum(value, t.Name, def)
	}

	alias, err := ParseType(def.Type)
	if err != nil {
		return "", err
	}
	return e.encode(value, alias, nested, depth+1)
}

// encodeStruct concatenates the nested encodings of the declared fields.
// A missing field is allowed only when its type is an Option.
func (e *Encoder) encodeStruct(value any, name string, def TypeDef, depth int) (string, error) {
	var sb strings.Builder
	for _, f := range def.Fields {
		ft, err := ParseType(f.Type)
		if err != nil {
			return "", err
		}

		v, ok := fieldValue(value, f.Name)
		if !ok && ft.Kind != KindOption {
			return "", &EncodingError{Type: name, Value: value, Err: fmt.Errorf("missing field %q", f.Name)}
		}

		s, err := e.encode(v, ft, true, depth+1)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// encodeEnum writes the one-byte discriminant of the variant named by value,
// or of value itself when it is numeric.
func (e *Encoder) encodeEnum(value any, name string, def TypeDef) (string, error) {
	var (
		v  Variant
		ok bool
	)
	if s, isString := value.(string); isString {
		v, ok = def.variantByName(s)
	}
	if !ok {
		n, err := coerceBigInt(value)
		if err != nil || !n.IsInt64() {
			return "", &EncodingError{Type: name, Value: value, Err: errors.New("unknown variant")}
		}
		v, ok = def.variantByDiscriminant(int(n.Int64()))
		if !ok {
			return "", &EncodingError{Type: name, Value: value, Err: fmt.Errorf("unknown discriminant %s", n)}
		}
	}
	if v.Discriminant < 0 || v.Discriminant > 0xff {
		return "", &EncodingError{Type: name, Value: value, Err: ErrOutOfRange}
	}
	return fmt.Sprintf("%02x", v.Discriminant), nil
}

func (e *Encoder) encodeLeaf(value any, t *Type, nested bool) (string, error) {
	p, ok := t.primitive()
	if !ok {
		return "", &TypeError{Type: t.String()}
	}

	fail := func(err error) (string, error) {
		return "", &EncodingError{Type: t.Name, Value: value, Err: err}
	}

	switch p.class {
	case classUnsigned, classSigned, classBigUint, classBigInt:
		n, err := coerceBigInt(value)
		if err != nil {
			return fail(err)
		}
		var s string
		switch p.class {
		case classBigUint:
			s, err = encodeBigUint(n, nested)
		case classBigInt:
			s = encodeBigInt(n, nested)
		default:
			s, err = encodeFixed(n, p, nested)
		}
		if err != nil {
			return fail(err)
		}
		return s, nil
	case classBool:
		b, err := coerceBool(value)
		if err != nil {
			return fail(err)
		}
		if b {
			return "01", nil
		}
		return "00", nil
	case classAddress:
		return e.encodeAddress(value, t)
	}

	b, err := coerceBytes(value)
	if err != nil {
		return fail(err)
	}
	if nested {
		return lengthPrefix(len(b)) + common.Bytes2Hex(b), nil
	}
	return common.Bytes2Hex(b), nil
}

// encodeAddress converts a bech32 address, or 32 raw bytes, to 64 nibbles.
func (e *Encoder) encodeAddress(value any, t *Type) (string, error) {
	if b, ok := value.([]byte); ok {
		if len(b) != AddressLength {
			return "", &EncodingError{Type: t.Name, Value: value, Err: ErrInvalidAddress}
		}
		return common.Bytes2Hex(b), nil
	}

	s, ok := value.(string)
	if !ok {
		return "", &EncodingError{Type: t.Name, Value: value, Err: ErrInvalidAddress}
	}
	b, err := addressBytes(s, e.cfg.addressPrefix)
	if err != nil {
		if e.cfg.lenientAddresses {
			e.cfg.logger.Debug("passing through invalid address",
				zap.String("address", s),
				zap.Error(err),
			)
			return s, nil
		}
		return "", err
	}
	return common.Bytes2Hex(b), nil
}

// sliceItems returns the elements of a slice or array value. nil is an empty list.
func sliceItems(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case []any:
		return v, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	}
	return nil, false
}

// tupleItems returns exactly len(t.Elems) positional items from a slice,
// a *Struct or a map keyed by tuple field names.
func tupleItems(value any, t *Type) ([]any, error) {
	var items []any
	switch v := value.(type) {
	case *Struct:
		if v == nil {
			return nil, &EncodingError{Type: t.String(), Value: value, Err: errors.New("nil struct")}
		}
		for _, f := range v.Fields {
			items = append(items, f.Value)
		}
	case Struct:
		for _, f := range v.Fields {
			items = append(items, f.Value)
		}
	case map[string]any:
		for i := range t.Elems {
			item, ok := v[tupleFieldName(i)]
			if !ok {
				return nil, &EncodingError{Type: t.String(), Value: value, Err: fmt.Errorf("missing item %s", tupleFieldName(i))}
			}
			items = append(items, item)
		}
	default:
		var ok bool
		if items, ok = sliceItems(value); !ok {
			return nil, &EncodingError{Type: t.String(), Value: value, Err: errors.New("expected a slice or struct")}
		}
	}

	if len(items) != len(t.Elems) {
		return nil, &EncodingError{
			Type:  t.String(),
			Value: value,
			Err:   fmt.Errorf("expected %d items, got %d", len(t.Elems), len(items)),
		}
	}
	return items, nil
}

// fieldValue looks up a struct field by name.
func fieldValue(value any, name string) (any, bool) {
	switch v := value.(type) {
	case *Struct:
		if v == nil {
			return nil, false
		}
		return v.Get(name)
	case Struct:
		return v.Get(name)
	case map[string]any:
		f, ok := v[name]
		return f, ok
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		f := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !f.IsValid() {
			return nil, false
		}
		return f.Interface(), true
	}
	return nil, false
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// EncodeValue encodes value as typeStr without a schema.
func EncodeValue(value any, typeStr string, nested bool) (string, error) {
	return NewEncoder(nil).EncodeValue(value, typeStr, nested)
}

// EncodeWithABI parses abiJSON and encodes value as typeStr with nested framing.
func EncodeWithABI(abiJSON string, value any, typeStr string) (string, error) {
	schema, err := ParseSchema(abiJSON)
	if err != nil {
		return "", err
	}
	return NewEncoder(schema).Encode(value, typeStr)
}
