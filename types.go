package kvmabi

import (
	"errors"
	"fmt"
	"strings"
)

// TypeKind identifies the structural form of a parsed type signature.
type TypeKind uint8

const (
	// KindPrimitive is a leaf type such as u32, BigUint, bool, Address or bytes.
	KindPrimitive TypeKind = iota

	// KindCustom is a bare name that must resolve through the schema's types map.
	KindCustom

	// KindOption is Option<T>.
	KindOption

	// KindList is List<T> (also spelled ManagedVec<T> or Vec<T>).
	KindList

	// KindTuple is tuple<T1,T2,...>.
	KindTuple

	// KindVariadic is variadic<T>.
	KindVariadic

	// KindMulti is multi<T1,T2,...>.
	KindMulti
)

func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindCustom:
		return "custom"
	case KindOption:
		return "option"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindVariadic:
		return "variadic"
	case KindMulti:
		return "multi"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// Type is a parsed type signature.
//
// Name holds the primitive or custom type name for leaf kinds and is empty
// for wrappers. Elems holds the type arguments of wrappers in order.
type Type struct {
	Kind  TypeKind
	Name  string
	Elems []*Type
}

// Elem returns the first type argument, or nil for leaf kinds.
func (t *Type) Elem() *Type {
	if len(t.Elems) == 0 {
		return nil
	}
	return t.Elems[0]
}

// String renders the canonical type signature.
func (t *Type) String() string {
	switch t.Kind {
	case KindPrimitive, KindCustom:
		return t.Name
	}

	args := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		args[i] = e.String()
	}
	return t.family() + "<" + strings.Join(args, ",") + ">"
}

// family returns the outer name: the leaf name or the wrapper keyword.
func (t *Type) family() string {
	switch t.Kind {
	case KindOption:
		return "Option"
	case KindList:
		return "List"
	case KindTuple:
		return "tuple"
	case KindVariadic:
		return "variadic"
	case KindMulti:
		return "multi"
	default:
		return t.Name
	}
}

// primitiveClass groups primitives sharing a wire representation.
type primitiveClass uint8

const (
	classUnsigned primitiveClass = iota
	classSigned
	classBigUint
	classBigInt
	classBool
	classBytes
	classAddress
)

// primitive describes a leaf type. size is the fixed byte width, 0 when variable.
type primitive struct {
	class primitiveClass
	size  int
}

var primitives = map[string]primitive{
	"u8":    {classUnsigned, 1},
	"u16":   {classUnsigned, 2},
	"u32":   {classUnsigned, 4},
	"usize": {classUnsigned, 4},
	"u64":   {classUnsigned, 8},

	"i8":    {classSigned, 1},
	"i16":   {classSigned, 2},
	"i32":   {classSigned, 4},
	"isize": {classSigned, 4},
	"i64":   {classSigned, 8},

	"BigUint": {classBigUint, 0},
	"BigInt":  {classBigInt, 0},

	"bool":    {classBool, 1},
	"Address": {classAddress, AddressLength},

	"ManagedBuffer":   {classBytes, 0},
	"BoxedBytes":      {classBytes, 0},
	"&[u8]":           {classBytes, 0},
	"Vec<u8>":         {classBytes, 0},
	"String":          {classBytes, 0},
	"&str":            {classBytes, 0},
	"bytes":           {classBytes, 0},
	"TokenIdentifier": {classBytes, 0},
}

// primitive returns the leaf description of t.
func (t *Type) primitive() (primitive, bool) {
	if t.Kind != KindPrimitive {
		return primitive{}, false
	}
	p, ok := primitives[t.Name]
	return p, ok
}

// isNumeric reports whether t is an integer primitive.
func (t *Type) isNumeric() bool {
	p, ok := t.primitive()
	if !ok {
		return false
	}
	switch p.class {
	case classUnsigned, classSigned, classBigUint, classBigInt:
		return true
	}
	return false
}

// ParseType parses a type signature such as "List<Option<BigUint>>" or
// "variadic<multi<Address,TokenIdentifier>>".
//
// Bare names that are not primitives parse as KindCustom; they are resolved
// against a schema only when encoded or decoded.
func ParseType(s string) (*Type, error) {
	p := &typeParser{lex: typeLexer{src: s}}
	if err := p.advance(); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q after type", p.tok.text)
	}
	return t, nil
}

// MustParseType is like ParseType but panics on error.
// Use only with compile-time constant signatures.
func MustParseType(s string) *Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLAngle
	tokRAngle
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// typeLexer splits a type signature into identifiers and the punctuation < > ,
type typeLexer struct {
	src string
	pos int
}

func isIdentByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '&', b == '[', b == ']', b == ':':
		return true
	}
	return false
}

func (l *typeLexer) next() (token, error) {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: l.pos}, nil
	}

	start := l.pos
	switch l.src[l.pos] {
	case '<':
		l.pos++
		return token{kind: tokLAngle, text: "<", pos: start}, nil
	case '>':
		l.pos++
		return token{kind: tokRAngle, text: ">", pos: start}, nil
	case ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	}

	for l.pos < len(l.src) && isIdentByte(l.src[l.pos]) {
		l.pos++
	}
	if l.pos == start {
		return token{}, &TypeError{
			Type: l.src,
			Err:  fmt.Errorf("unexpected character %q at offset %d", l.src[start], start),
		}
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
}

// typeParser is a recursive-descent parser with one token of lookahead.
type typeParser struct {
	lex typeLexer
	tok token
}

func (p *typeParser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *typeParser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return &TypeError{
		Type: p.lex.src,
		Err:  fmt.Errorf("%s at offset %d", msg, p.tok.pos),
	}
}

func (p *typeParser) parseType() (*Type, error) {
	if p.tok.kind != tokIdent {
		if p.tok.kind == tokEOF {
			return nil, p.errorf("missing type name")
		}
		return nil, p.errorf("unexpected %q", p.tok.text)
	}

	name := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}

	if p.tok.kind != tokLAngle {
		if _, ok := primitives[name]; ok {
			return &Type{Kind: KindPrimitive, Name: name}, nil
		}
		return &Type{Kind: KindCustom, Name: name}, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	var args []*Type
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if p.tok.kind == tokRAngle {
			if err := p.advance(); err != nil {
				return nil, err
			}
			break
		}
		if p.tok.kind == tokEOF {
			return nil, p.errorf("missing closing '>' for %s", name)
		}
		return nil, p.errorf("unexpected %q in %s arguments", p.tok.text, name)
	}

	t, err := makeGeneric(name, args)
	if err != nil {
		return nil, &TypeError{Type: p.lex.src, Err: err}
	}
	return t, nil
}

var errArity = errors.New("wrong number of type arguments")

func makeGeneric(name string, args []*Type) (*Type, error) {
	single := func(kind TypeKind) (*Type, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s: %w (want 1, got %d)", name, errArity, len(args))
		}
		return &Type{Kind: kind, Elems: args}, nil
	}

	switch name {
	case "Option":
		return single(KindOption)
	case "List", "ManagedVec":
		return single(KindList)
	case "Vec":
		if len(args) == 1 && args[0].Kind == KindPrimitive && args[0].Name == "u8" {
			return &Type{Kind: KindPrimitive, Name: "Vec<u8>"}, nil
		}
		return single(KindList)
	case "variadic":
		return single(KindVariadic)
	case "tuple":
		return &Type{Kind: KindTuple, Elems: args}, nil
	case "multi":
		return &Type{Kind: KindMulti, Elems: args}, nil
	default:
		return nil, fmt.Errorf("unknown generic type %q", name)
	}
}
