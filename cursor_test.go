package kvmabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorTake(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})

	b, next, err := c.take(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, 1, next.remaining())
	assert.Equal(t, 3, c.remaining(), "take must not move the receiver")

	_, _, err = next.take(2)
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, same, err := next.take(0)
	require.NoError(t, err)
	assert.Equal(t, next, same)
}

func TestCursorTakeUpTo(t *testing.T) {
	c := newCursor([]byte{1, 2, 3})

	b, next := c.takeUpTo(8)
	assert.Equal(t, []byte{1, 2, 3}, b)
	assert.True(t, next.empty())

	b, next = c.takeUpTo(1)
	assert.Equal(t, []byte{1}, b)
	assert.Equal(t, "0203", next.hex())
}

func TestCursorReadLength(t *testing.T) {
	c := newCursor([]byte{0, 0, 1, 0, 0xaa})

	n, next, err := c.readLength()
	require.NoError(t, err)
	assert.Equal(t, 256, n)
	assert.Equal(t, "aa", next.hex())

	_, _, err = newCursor([]byte{0, 0, 1}).readLength()
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		input string
		want  []byte
	}{
		{"", []byte{}},
		{"0a", []byte{0x0a}},
		{"a", []byte{0x0a}},
		{"0x03e8", []byte{0x03, 0xe8}},
		{"3e8", []byte{0x03, 0xe8}},
		{"FA0A", []byte{0xfa, 0x0a}},
		{" ff ", []byte{0xff}},
	}

	for _, tt := range tests {
		got, err := parseHex(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := parseHex("zz")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestLengthPrefix(t *testing.T) {
	assert.Equal(t, "00000000", lengthPrefix(0))
	assert.Equal(t, "00000005", lengthPrefix(5))
	assert.Equal(t, "00010000", lengthPrefix(65536))
}
