package kvmabi

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceBigInt(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"int", 42, "42"},
		{"int8", int8(-5), "-5"},
		{"int64", int64(math.MinInt64), "-9223372036854775808"},
		{"uint64", uint64(math.MaxUint64), "18446744073709551615"},
		{"uint8", uint8(255), "255"},
		{"float64 integral", float64(1000), "1000"},
		{"float32 integral", float32(-3), "-3"},
		{"json number", json.Number("123456789012345678901234567890"), "123456789012345678901234567890"},
		{"decimal string", "  -17 ", "-17"},
		{"hex string", "0xff", "255"},
		{"negative hex string", "-0x10", "-16"},
		{"big.Int pointer", big.NewInt(-1), "-1"},
		{"big.Int value", *big.NewInt(7), "7"},
		{"uint256 pointer", uint256.NewInt(60000000), "60000000"},
		{"uint256 value", *uint256.NewInt(3), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceBigInt(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCoerceBigIntErrors(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{"nil", nil},
		{"nil big.Int", (*big.Int)(nil)},
		{"word", "abc"},
		{"empty string", ""},
		{"double sign", "--1"},
		{"plus inside hex", "0x+1"},
		{"fraction", 1.5},
		{"nan", math.NaN()},
		{"infinity", math.Inf(1)},
		{"bool", true},
		{"slice", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coerceBigInt(tt.input)
			assert.ErrorIs(t, err, ErrNotNumeric)
		})
	}
}

func TestCoerceBigIntDoesNotAlias(t *testing.T) {
	in := big.NewInt(5)
	out, err := coerceBigInt(in)
	require.NoError(t, err)

	out.SetInt64(6)
	assert.Equal(t, int64(5), in.Int64())
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		input   any
		want    bool
		wantErr bool
	}{
		{true, true, false},
		{false, false, false},
		{"true", true, false},
		{"FALSE", false, false},
		{"1", true, false},
		{"", false, false},
		{1, true, false},
		{0, false, false},
		{"yes", false, true},
		{[]byte{1}, false, true},
	}

	for _, tt := range tests {
		got, err := coerceBool(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.input)
			continue
		}
		require.NoError(t, err, "%v", tt.input)
		assert.Equal(t, tt.want, got, "%v", tt.input)
	}
}

func TestCoerceBytes(t *testing.T) {
	b, err := coerceBytes("KLV")
	require.NoError(t, err)
	assert.Equal(t, []byte("KLV"), b)

	b, err = coerceBytes([]byte{0x01})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, b)

	b, err = coerceBytes(big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, []byte("10"), b)

	_, err = coerceBytes(42)
	assert.Error(t, err)
}
