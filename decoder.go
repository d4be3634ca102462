package kvmabi

import (
	"errors"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// maxDecodeDepth bounds type recursion through aliases and self-referencing
// structs that would otherwise never consume input.
const maxDecodeDepth = 64

var (
	errNestedVariadic = errors.New("variadic is only valid at top level")
	errTooDeep        = errors.New("type nesting too deep")
)

// Decoder turns hex-encoded contract data into Go values according to a schema.
// A Decoder is immutable and safe for concurrent use.
//
// Decoded values use these Go types:
//
//	u8, u16, u32/usize     uint8, uint16, uint32
//	i8, i16, i32/isize     int8, int16, int32
//	u64, i64               *big.Int
//	BigUint, BigInt        *big.Int
//	bool                   bool
//	byte strings           string
//	Address                string ("klv1...")
//	Option<T>              nil or the value of T
//	List<T>, variadic<T>   []any
//	struct, tuple, multi   *Struct
//	enum                   string (variant name)
type Decoder struct {
	schema *Schema
	cfg    *config
}

// NewDecoder creates a Decoder. schema may be nil when only primitive and
// wrapper types are decoded.
func NewDecoder(schema *Schema, opts ...Option) *Decoder {
	return &Decoder{schema: schema, cfg: newConfig(opts)}
}

// Schema returns the decoder's schema.
func (d *Decoder) Schema() *Schema {
	return d.schema
}

// Decode decodes the return data of a readonly endpoint against its single
// declared output type.
func (d *Decoder) Decode(hexData, endpoint string) (any, error) {
	if d.schema == nil {
		return nil, ErrInvalidABI
	}
	typ, err := d.schema.OutputType(endpoint)
	if err != nil {
		return nil, err
	}

	d.cfg.logger.Debug("decoding endpoint output",
		zap.String("endpoint", endpoint),
		zap.String("type", typ),
		zap.Int("nibbles", len(hexData)),
	)
	return d.DecodeValue(hexData, typ)
}

// DecodeValue decodes a single top-level value. The value must span the whole
// input; leftover bytes fail with ErrTrailingData.
func (d *Decoder) DecodeValue(hexData, typeStr string) (any, error) {
	t, data, err := d.prepare(hexData, typeStr)
	if err != nil {
		return nil, err
	}
	v, next, err := d.decodeTop(t, newCursor(data), 0)
	if err != nil {
		return nil, err
	}
	if !next.empty() {
		return nil, d.fail(t.String(), next, fmt.Errorf("%w: %d bytes", ErrTrailingData, next.remaining()))
	}
	return v, nil
}

// DecodeType decodes one nested value from the front of hexData and returns
// it together with the unconsumed hex suffix.
func (d *Decoder) DecodeType(hexData, typeStr string) (any, string, error) {
	t, data, err := d.prepare(hexData, typeStr)
	if err != nil {
		return nil, "", err
	}
	v, next, err := d.decodeNested(t, newCursor(data), 0)
	if err != nil {
		return nil, "", err
	}
	return v, next.hex(), nil
}

// DecodeList decodes nested values of elemType until the input is exhausted.
// It is equivalent to DecodeValue with the type List<elemType>.
func (d *Decoder) DecodeList(hexData, elemType string) ([]any, error) {
	elem, data, err := d.prepare(hexData, elemType)
	if err != nil {
		return nil, err
	}
	list := &Type{Kind: KindList, Elems: []*Type{elem}}
	items, _, err := d.decodeRepeated(list, newCursor(data), 0, d.decodeNested)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (d *Decoder) prepare(hexData, typeStr string) (*Type, []byte, error) {
	t, err := ParseType(typeStr)
	if err != nil {
		return nil, nil, err
	}
	data, err := parseHex(hexData)
	if err != nil {
		return nil, nil, err
	}
	return t, data, nil
}

type stepFunc func(t *Type, c cursor, depth int) (any, cursor, error)

// decodeTop decodes a value that owns the rest of its input segment.
func (d *Decoder) decodeTop(t *Type, c cursor, depth int) (any, cursor, error) {
	if depth > maxDecodeDepth {
		return nil, c, &TypeError{Type: t.String(), Err: errTooDeep}
	}

	switch t.Kind {
	case KindOption:
		if c.empty() {
			return nil, c, nil
		}
		return d.decodeOption(t, c, depth)
	case KindList:
		return d.decodeRepeated(t, c, depth, d.decodeNested)
	case KindVariadic:
		return d.decodeRepeated(t, c, depth, d.decodeTop)
	case KindTuple, KindMulti:
		return d.decodeTuple(t, c, depth)
	case KindCustom:
		return d.decodeCustom(t, c, depth, false)
	default:
		return d.decodeLeafTop(t, c)
	}
}

// decodeNested decodes a self-delimiting value.
func (d *Decoder) decodeNested(t *Type, c cursor, depth int) (any, cursor, error) {
	if depth > maxDecodeDepth {
		return nil, c, &TypeError{Type: t.String(), Err: errTooDeep}
	}

	switch t.Kind {
	case KindOption:
		return d.decodeOption(t, c, depth)
	case KindList:
		return d.decodeCounted(t, c, depth)
	case KindTuple, KindMulti:
		return d.decodeTuple(t, c, depth)
	case KindVariadic:
		return nil, c, &TypeError{Type: t.String(), Err: errNestedVariadic}
	case KindCustom:
		return d.decodeCustom(t, c, depth, true)
	default:
		return d.decodeLeafNested(t, c)
	}
}

func (d *Decoder) decodeOption(t *Type, c cursor, depth int) (any, cursor, error) {
	flag, next, err := c.take(1)
	if err != nil {
		return nil, c, d.fail(t.String(), c, err)
	}
	switch flag[0] {
	case 0x00:
		return nil, next, nil
	case 0x01:
		return d.decodeNested(t.Elem(), next, depth+1)
	default:
		return nil, c, d.fail(t.String(), c, fmt.Errorf("%w: %#02x", ErrInvalidOptionFlag, flag[0]))
	}
}

// decodeCounted reads a 4-byte element count followed by that many nested elements.
func (d *Decoder) decodeCounted(t *Type, c cursor, depth int) (any, cursor, error) {
	n, cur, err := c.readLength()
	if err != nil {
		return nil, c, d.fail(t.String(), c, err)
	}
	if n > d.cfg.maxListLength {
		return nil, c, d.fail(t.String(), c, fmt.Errorf("%w: %d > %d", ErrListTooLong, n, d.cfg.maxListLength))
	}

	items := make([]any, 0, min(n, cur.remaining()))
	for i := 0; i < n; i++ {
		v, next, err := d.decodeNested(t.Elem(), cur, depth+1)
		if err != nil {
			return nil, c, err
		}
		items = append(items, v)
		cur = next
	}
	return items, cur, nil
}

// decodeRepeated applies step to the element type until the input is exhausted.
func (d *Decoder) decodeRepeated(t *Type, c cursor, depth int, step stepFunc) ([]any, cursor, error) {
	items := []any{}
	for !c.empty() {
		if len(items) >= d.cfg.maxListLength {
			return nil, c, d.fail(t.String(), c, ErrListTooLong)
		}
		v, next, err := step(t.Elem(), c, depth+1)
		if err != nil {
			return nil, c, err
		}
		if next.off == c.off {
			return nil, c, d.fail(t.String(), c, ErrNoProgress)
		}
		items = append(items, v)
		c = next
	}
	return items, c, nil
}

func (d *Decoder) decodeTuple(t *Type, c cursor, depth int) (any, cursor, error) {
	s := &Struct{Fields: make([]Field, 0, len(t.Elems))}
	cur := c
	for i, e := range t.Elems {
		v, next, err := d.decodeNested(e, cur, depth+1)
		if err != nil {
			return nil, c, err
		}
		s.Fields = append(s.Fields, Field{Name: tupleFieldName(i), Value: v})
		cur = next
	}
	return s, cur, nil
}

func (d *Decoder) decodeCustom(t *Type, c cursor, depth int, nested bool) (any, cursor, error) {
	def, err := d.schema.lookup(t.Name)
	if err != nil {
		return nil, c, err
	}

	switch {
	case def.IsStruct():
		return d.decodeStruct(def, c, depth)
	case def.IsEnum():
		return d.decodeEnum(t.Name, def, c, nested)
	}

	alias, err := ParseType(def.Type)
	if err != nil {
		return nil, c, err
	}
	if nested {
		return d.decodeNested(alias, c, depth+1)
	}
	return d.decodeTop(alias, c, depth+1)
}

// decodeStruct reads the fields of a struct in declaration order. Fields are
// always nested, whether or not the struct itself is.
func (d *Decoder) decodeStruct(def TypeDef, c cursor, depth int) (any, cursor, error) {
	s := &Struct{Fields: make([]Field, 0, len(def.Fields))}
	cur := c
	for _, f := range def.Fields {
		ft, err := ParseType(f.Type)
		if err != nil {
			return nil, c, err
		}
		v, next, err := d.decodeNested(ft, cur, depth+1)
		if err != nil {
			return nil, c, err
		}
		s.Fields = append(s.Fields, Field{Name: f.Name, Value: v})
		cur = next
	}
	return s, cur, nil
}

func (d *Decoder) decodeEnum(name string, def TypeDef, c cursor, nested bool) (any, cursor, error) {
	var (
		b    []byte
		next cursor
		err  error
	)
	if nested {
		b, next, err = c.take(1)
		if err != nil {
			return nil, c, d.fail(name, c, err)
		}
	} else {
		b, next = c.rest()
	}

	disc := new(big.Int).SetBytes(b)
	if disc.IsInt64() {
		if v, ok := def.variantByDiscriminant(int(disc.Int64())); ok {
			return v.Name, next, nil
		}
	}
	return nil, c, d.fail(name, c, fmt.Errorf("%w: no variant with discriminant %s", ErrInvalidType, disc))
}

func (d *Decoder) decodeLeafNested(t *Type, c cursor) (any, cursor, error) {
	p, ok := t.primitive()
	if !ok {
		return nil, c, &TypeError{Type: t.String()}
	}

	switch p.class {
	case classUnsigned, classSigned:
		b, next, err := c.take(p.size)
		if err != nil {
			return nil, c, d.fail(t.Name, c, err)
		}
		return decodeFixed(b, p), next, nil
	case classBool:
		b, next, err := c.take(1)
		if err != nil {
			return nil, c, d.fail(t.Name, c, err)
		}
		v, err := decodeBool(b)
		if err != nil {
			return nil, c, d.fail(t.Name, c, err)
		}
		return v, next, nil
	case classAddress:
		return d.decodeAddress(t, c)
	}

	n, cur, err := c.readLength()
	if err != nil {
		return nil, c, d.fail(t.Name, c, err)
	}
	b, next, err := cur.take(n)
	if err != nil {
		return nil, c, d.fail(t.Name, c, err)
	}
	return d.decodePayload(p, b), next, nil
}

func (d *Decoder) decodeLeafTop(t *Type, c cursor) (any, cursor, error) {
	p, ok := t.primitive()
	if !ok {
		return nil, c, &TypeError{Type: t.String()}
	}

	switch p.class {
	case classUnsigned, classSigned:
		b, next := c.takeUpTo(p.size)
		return decodeFixed(b, p), next, nil
	case classBool:
		b, next := c.takeUpTo(1)
		v, err := decodeBool(b)
		if err != nil {
			return nil, c, d.fail(t.Name, c, err)
		}
		return v, next, nil
	case classAddress:
		return d.decodeAddress(t, c)
	}

	b, next := c.rest()
	return d.decodePayload(p, b), next, nil
}

func (d *Decoder) decodeAddress(t *Type, c cursor) (any, cursor, error) {
	b, next, err := c.take(AddressLength)
	if err != nil {
		return nil, c, d.fail(t.Name, c, err)
	}
	addr, err := addressString(b, d.cfg.addressPrefix)
	if err != nil {
		return nil, c, d.fail(t.Name, c, err)
	}
	return addr, next, nil
}

// decodePayload converts the bytes of a variable-length primitive.
func (d *Decoder) decodePayload(p primitive, b []byte) any {
	switch p.class {
	case classBigUint:
		return new(big.Int).SetBytes(b)
	case classBigInt:
		v, ascii := decodeBigIntPayload(b, d.cfg.bigIntASCII)
		d.cfg.logger.Debug("decoded BigInt",
			zap.Bool("ascii", ascii),
			zap.Int("bytes", len(b)),
		)
		return v
	default:
		return string(b)
	}
}

func decodeBool(b []byte) (bool, error) {
	if len(b) == 0 {
		return false, nil
	}
	switch b[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	}
	return false, fmt.Errorf("%w: bool byte %#02x", ErrOutOfRange, b[0])
}

func (d *Decoder) fail(typ string, c cursor, err error) error {
	return &DecodeError{Type: typ, Offset: c.off, Err: err}
}

// Decode parses abiJSON and decodes the return data of a readonly endpoint.
func Decode(abiJSON, hexData, endpoint string) (any, error) {
	schema, err := ParseSchema(abiJSON)
	if err != nil {
		return nil, err
	}
	return NewDecoder(schema).Decode(hexData, endpoint)
}
