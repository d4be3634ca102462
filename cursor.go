package kvmabi

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// LengthPrefixSize is the byte size of list counts and byte-string lengths.
const LengthPrefixSize = 4

// cursor is a read position over an immutable byte buffer. Reads return a new
// cursor and leave the receiver untouched.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) cursor {
	return cursor{data: data}
}

func (c cursor) remaining() int {
	return len(c.data) - c.off
}

func (c cursor) empty() bool {
	return c.off >= len(c.data)
}

// take reads exactly n bytes.
func (c cursor) take(n int) ([]byte, cursor, error) {
	if n < 0 || n > c.remaining() {
		return nil, c, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, c.remaining())
	}
	return c.data[c.off : c.off+n], cursor{data: c.data, off: c.off + n}, nil
}

// takeUpTo reads at most n bytes.
func (c cursor) takeUpTo(n int) ([]byte, cursor) {
	if n > c.remaining() {
		n = c.remaining()
	}
	return c.data[c.off : c.off+n], cursor{data: c.data, off: c.off + n}
}

// rest reads everything that is left.
func (c cursor) rest() ([]byte, cursor) {
	return c.takeUpTo(c.remaining())
}

// readLength reads a 4-byte big-endian length or count.
func (c cursor) readLength() (int, cursor, error) {
	b, next, err := c.take(LengthPrefixSize)
	if err != nil {
		return 0, c, err
	}
	return int(binary.BigEndian.Uint32(b)), next, nil
}

// hex renders the unconsumed suffix as lower-case hex.
func (c cursor) hex() string {
	return common.Bytes2Hex(c.data[c.off:])
}

// parseHex decodes wire hex. A 0x prefix is accepted and an odd number of
// nibbles is left-padded with one zero nibble.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return b, nil
}

// lengthPrefix renders n as the 4-byte big-endian hex length header.
func lengthPrefix(n int) string {
	var b [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	return common.Bytes2Hex(b[:])
}
