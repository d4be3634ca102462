package kvmabi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallContract(t *testing.T) {
	c := newTestContract(t)
	call := c.MustInvoke("getValue")

	assert.Same(t, c, call.Contract())
}

func TestCallEndpoint(t *testing.T) {
	c := newTestContract(t)
	call := c.MustInvoke("buyTicket", "lotto", 1)

	assert.Equal(t, "buyTicket", call.Endpoint())
}

func TestCallArgs(t *testing.T) {
	c := newTestContract(t)
	call := c.MustInvoke("buyTicket", "lotto", 1)

	args := call.Args()
	assert.Equal(t, []string{"6c6f74746f", "01"}, args)

	args[0] = "changed"
	assert.Equal(t, "6c6f74746f", call.Args()[0], "Args must return a copy")
	assert.Equal(t, "buyTicket@6c6f74746f@01", call.Data())
}

func TestCallFlags(t *testing.T) {
	c := newTestContract(t)

	tests := []struct {
		endpoint   string
		args       []any
		readonly   bool
		hasReturn  bool
		returnType string
	}{
		{"getValue", nil, true, true, "u64"},
		{"getTickets", nil, true, true, "variadic<u32>"},
		{"setValue", []any{1}, false, false, ""},
		{"buyTicket", []any{"lotto", 1}, false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			call := c.MustInvoke(tt.endpoint, tt.args...)
			assert.Equal(t, tt.readonly, call.IsReadonly())
			assert.Equal(t, tt.hasReturn, call.HasReturnValue())
			assert.Equal(t, tt.returnType, call.ReturnType())
		})
	}
}

func TestCallDecodeResult(t *testing.T) {
	c := newTestContract(t)

	v, err := c.MustInvoke("getRound").DecodeResult("0207")
	require.NoError(t, err)
	assert.Equal(t, "Ended", field(t, v, "status"))
	assert.Equal(t, uint8(7), field(t, v, "id"))

	_, err = c.MustInvoke("setValue", 1).DecodeResult("01")
	assert.ErrorIs(t, err, ErrInvalidMutability)
}

func TestCallWithRawAddressArgument(t *testing.T) {
	c := newTestContract(t)

	raw, err := parseHex(winnerAddressHex)
	require.NoError(t, err)

	call, err := c.Invoke("addWinners", []any{[]any{raw, "KLV"}})
	require.NoError(t, err)
	assert.Equal(t, []string{winnerAddressHex, "4b4c56"}, call.Args())
}
