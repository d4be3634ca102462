package kvmabi

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct(t *testing.T) {
	s := NewStruct(
		Field{Name: "title", Value: "Teste"},
		Field{Name: "ok", Value: true},
	)

	t.Run("Get", func(t *testing.T) {
		v, ok := s.Get("title")
		require.True(t, ok)
		assert.Equal(t, "Teste", v)

		_, ok = s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("Names keep declaration order", func(t *testing.T) {
		assert.Equal(t, []string{"title", "ok"}, s.Names())
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Set replaces or appends", func(t *testing.T) {
		c := NewStruct(s.Fields...)
		c.Set("ok", false)
		c.Set("extra", 1)

		assert.Equal(t, []string{"title", "ok", "extra"}, c.Names())
		v, _ := c.Get("ok")
		assert.Equal(t, false, v)
	})

	t.Run("Map", func(t *testing.T) {
		assert.Equal(t, map[string]any{"title": "Teste", "ok": true}, s.Map())
	})
}

func TestStructMarshalJSON(t *testing.T) {
	s := NewStruct(
		Field{Name: "z", Value: big.NewInt(-3958328028584329812)},
		Field{Name: "a", Value: nil},
		Field{Name: "list", Value: []any{uint8(1), "KLV"}},
		Field{Name: "inner", Value: NewStruct(Field{Name: "_0", Value: int8(-1)})},
		Field{Name: `quo"te`, Value: "x"},
	)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"z":-3958328028584329812,"a":null,"list":[1,"KLV"],"inner":{"_0":-1},"quo\"te":"x"}`, string(b))
}

func TestTupleFieldName(t *testing.T) {
	assert.Equal(t, "_0", tupleFieldName(0))
	assert.Equal(t, "_12", tupleFieldName(12))
}
