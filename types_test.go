package kvmabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  TypeKind
		want  string
	}{
		{"primitive", "u64", KindPrimitive, "u64"},
		{"byte string", "TokenIdentifier", KindPrimitive, "TokenIdentifier"},
		{"reference bytes", "&[u8]", KindPrimitive, "&[u8]"},
		{"custom", "WinnerInfo", KindCustom, "WinnerInfo"},
		{"option", "Option<BigUint>", KindOption, "Option<BigUint>"},
		{"list", "List<u32>", KindList, "List<u32>"},
		{"managed vec", "ManagedVec<Address>", KindList, "List<Address>"},
		{"vec of structs", "Vec<Teste>", KindList, "List<Teste>"},
		{"vec of bytes", "Vec<u8>", KindPrimitive, "Vec<u8>"},
		{"tuple", "tuple<BigUint,bytes,Address>", KindTuple, "tuple<BigUint,bytes,Address>"},
		{"variadic multi", "variadic<multi<Address,TokenIdentifier>>", KindVariadic, "variadic<multi<Address,TokenIdentifier>>"},
		{"whitespace", " List< Option<u8> , > ", KindList, ""},
		{"nested list", "List<List<List<TokenIdentifier>>>", KindList, "List<List<List<TokenIdentifier>>>"},
		{"spaces in tuple", "tuple<u8, List<bytes>, Address>", KindTuple, "tuple<u8,List<bytes>,Address>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.want == "" {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseTypeNesting(t *testing.T) {
	typ := MustParseType("Option<List<tuple<u8,Option<bytes>>>>")

	require.Equal(t, KindOption, typ.Kind)
	list := typ.Elem()
	require.Equal(t, KindList, list.Kind)
	tuple := list.Elem()
	require.Equal(t, KindTuple, tuple.Kind)
	require.Len(t, tuple.Elems, 2)
	assert.Equal(t, "u8", tuple.Elems[0].Name)
	assert.Equal(t, KindOption, tuple.Elems[1].Kind)
	assert.Equal(t, "bytes", tuple.Elems[1].Elem().Name)
}

func TestParseTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unclosed", "List<u8"},
		{"trailing", "u8>"},
		{"option arity", "Option<u8,u16>"},
		{"list arity", "List<u8,u8>"},
		{"unknown generic", "Map<u8>"},
		{"missing argument", "List<>"},
		{"bad character", "u8$"},
		{"two names", "u8 u16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseType(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidType)

			var te *TypeError
			assert.ErrorAs(t, err, &te)
		})
	}
}

func TestMustParseTypePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustParseType("List<")
	})
}

func TestTypeKindString(t *testing.T) {
	assert.Equal(t, "option", KindOption.String())
	assert.Equal(t, "variadic", KindVariadic.String())
	assert.Equal(t, "TypeKind(42)", TypeKind(42).String())
}

func TestIsNumeric(t *testing.T) {
	for _, s := range []string{"u8", "i64", "usize", "BigUint", "BigInt"} {
		assert.True(t, MustParseType(s).isNumeric(), s)
	}
	for _, s := range []string{"bool", "bytes", "Address", "List<u8>", "Custom"} {
		assert.False(t, MustParseType(s).isNumeric(), s)
	}
}
