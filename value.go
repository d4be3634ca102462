package kvmabi

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Field is one named member of a decoded struct, tuple, or multi value.
type Field struct {
	Name  string
	Value any
}

// Struct is an ordered set of fields. Decoding produces *Struct for custom
// struct types, for tuple<...> and for multi<...>; tuple and multi members are
// named _0, _1, ... by position. Field order is the declaration order.
type Struct struct {
	Fields []Field
}

// NewStruct creates a Struct from fields in order.
func NewStruct(fields ...Field) *Struct {
	return &Struct{Fields: fields}
}

// Get returns the value of the named field.
func (s *Struct) Get(name string) (any, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Set replaces the named field or appends it.
func (s *Struct) Set(name string, value any) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			s.Fields[i].Value = value
			return
		}
	}
	s.Fields = append(s.Fields, Field{Name: name, Value: value})
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.Fields)
}

// Names returns the field names in order.
func (s *Struct) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Map returns the fields as a map. Order is lost.
func (s *Struct) Map() map[string]any {
	m := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON renders the struct as a JSON object with fields in order.
// Integers, including *big.Int, are rendered as JSON numbers.
func (s *Struct) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// tupleFieldName returns the positional field name used for tuple members.
func tupleFieldName(i int) string {
	return "_" + strconv.Itoa(i)
}
