package kvmabi

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Endpoint mutabilities.
const (
	MutabilityReadonly = "readonly"
	MutabilityMutable  = "mutable"
)

// TypeDef kinds.
const (
	TypeDefStruct = "struct"
	TypeDefEnum   = "enum"
)

// Schema is a parsed contract ABI: the endpoints a contract exposes and the
// custom types their signatures refer to.
type Schema struct {
	Name      string             `json:"name,omitempty"`
	Endpoints []Endpoint         `json:"endpoints,omitempty"`
	Types     map[string]TypeDef `json:"types,omitempty"`
}

// Endpoint is a callable contract function.
type Endpoint struct {
	Name       string  `json:"name"`
	Mutability string  `json:"mutability,omitempty"`
	Inputs     []Param `json:"inputs,omitempty"`
	Outputs    []Param `json:"outputs,omitempty"`
}

// Param is an endpoint input or output.
type Param struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type"`
	MultiArg    bool   `json:"multi_arg,omitempty"`
	MultiResult bool   `json:"multi_result,omitempty"`
}

// TypeDef describes a custom type. Type is "struct" (Fields apply), "enum"
// (Variants apply), or otherwise the underlying type signature of an alias.
type TypeDef struct {
	Type     string     `json:"type"`
	Fields   []FieldDef `json:"fields,omitempty"`
	Variants []Variant  `json:"variants,omitempty"`
}

// FieldDef is a struct member. Declaration order is the wire order.
type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Variant is a fieldless enum variant.
type Variant struct {
	Name         string `json:"name"`
	Discriminant int    `json:"discriminant"`
}

// IsStruct reports whether d is a struct definition.
func (d TypeDef) IsStruct() bool {
	return d.Type == TypeDefStruct
}

// IsEnum reports whether d is an enum definition.
func (d TypeDef) IsEnum() bool {
	return d.Type == TypeDefEnum
}

// variantByDiscriminant returns the variant with the given discriminant.
func (d TypeDef) variantByDiscriminant(disc int) (Variant, bool) {
	for _, v := range d.Variants {
		if v.Discriminant == disc {
			return v, true
		}
	}
	return Variant{}, false
}

// variantByName returns the variant with the given name.
func (d TypeDef) variantByName(name string) (Variant, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// ParseSchema parses an ABI JSON document. The document must declare at
// least one of "endpoints" or "types".
func ParseSchema(abiJSON string) (*Schema, error) {
	trimmed := strings.TrimSpace(abiJSON)
	if trimmed == "" || trimmed == "{}" {
		return nil, ErrInvalidABI
	}

	var s Schema
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidABI, err)
	}
	if s.Endpoints == nil && s.Types == nil {
		return nil, fmt.Errorf("%w: no endpoints or types", ErrInvalidABI)
	}
	return &s, nil
}

// MustParseSchema is like ParseSchema but panics on error.
func MustParseSchema(abiJSON string) *Schema {
	s, err := ParseSchema(abiJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Endpoint returns the named endpoint.
func (s *Schema) Endpoint(name string) (*Endpoint, error) {
	if name == "" {
		return nil, &EndpointError{Endpoint: name, Err: ErrInvalidEndpoint}
	}
	if s == nil || s.Endpoints == nil {
		return nil, fmt.Errorf("%w: no endpoints", ErrInvalidABI)
	}
	for i := range s.Endpoints {
		if s.Endpoints[i].Name == name {
			return &s.Endpoints[i], nil
		}
	}
	return nil, &EndpointError{Endpoint: name, Err: ErrInvalidEndpoint}
}

// OutputType returns the single output type of a readonly endpoint, the root
// type its return data is decoded against.
func (s *Schema) OutputType(name string) (string, error) {
	ep, err := s.Endpoint(name)
	if err != nil {
		return "", err
	}
	if ep.Mutability != MutabilityReadonly {
		return "", &EndpointError{Endpoint: name, Err: ErrInvalidMutability}
	}
	if len(ep.Outputs) != 1 {
		return "", &EndpointError{Endpoint: name, Err: ErrInvalidOutputArity}
	}
	return ep.Outputs[0].Type, nil
}

// EndpointNames returns all endpoint names in declaration order.
func (s *Schema) EndpointNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Endpoints))
	for i, ep := range s.Endpoints {
		names[i] = ep.Name
	}
	return names
}

// TypeNames returns all custom type names, sorted.
func (s *Schema) TypeNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var errTypeNotDefined = errors.New("not defined in abi")

// lookup resolves a custom type name.
func (s *Schema) lookup(name string) (TypeDef, error) {
	if s == nil || s.Types == nil {
		return TypeDef{}, fmt.Errorf("%w: no types defined for %q", ErrInvalidABI, name)
	}
	d, ok := s.Types[name]
	if !ok {
		return TypeDef{}, &TypeError{Type: name, Err: errTypeNotDefined}
	}
	return d, nil
}

// ClassifyType is like the package-level ClassifyType but also resolves
// custom names: structs are InputObject, enums InputString, and aliases take
// the kind of their underlying type.
func (s *Schema) ClassifyType(typeStr string) InputKind {
	name := CleanType(typeStr)
	for depth := 0; s != nil && depth < 16; depth++ {
		d, ok := s.Types[name]
		if !ok {
			break
		}
		switch {
		case d.IsStruct():
			return InputObject
		case d.IsEnum():
			return InputString
		}
		typeStr = d.Type
		name = CleanType(d.Type)
	}
	return ClassifyType(typeStr)
}
