package kvmabi

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
)

// TwosComplement returns the two's complement of -|value| at the given bit
// width, rendered as bits/4 hex nibbles. bits must be a positive multiple of 8.
//
//	TwosComplement(big.NewInt(1), 16)  == "ffff"
//	TwosComplement(big.NewInt(10), 64) == "fffffffffffffff6"
func TwosComplement(value *big.Int, bits int) (string, error) {
	if bits <= 0 || bits%8 != 0 {
		return "", fmt.Errorf("kvmabi: invalid bit width %d", bits)
	}

	mag := new(big.Int).Abs(value)
	modulus := math.BigPow(2, int64(bits))
	if mag.Cmp(modulus) >= 0 {
		return "", fmt.Errorf("%w: %s does not fit %d bits", ErrOutOfRange, value, bits)
	}

	r := new(big.Int).Sub(modulus, mag)
	r.Mod(r, modulus)
	return common.Bytes2Hex(math.PaddedBigBytes(r, bits/8)), nil
}

// fromTwos interprets b as a big-endian two's-complement integer whose sign
// bit is the top bit of b[0]. An empty slice is zero.
func fromTwos(b []byte) *big.Int {
	v := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		v.Sub(v, math.BigPow(2, int64(8*len(b))))
	}
	return v
}

// toTwos returns the minimal big-endian two's-complement bytes of v.
// Zero encodes to no bytes.
func toTwos(v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return nil
	case 1:
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	// smallest n with v >= -2^(8n-1)
	m := new(big.Int).Neg(v)
	m.Sub(m, big.NewInt(1))
	n := m.BitLen()/8 + 1

	r := new(big.Int).Add(math.BigPow(2, int64(8*n)), v)
	return math.PaddedBigBytes(r, n)
}

// fixedBounds returns the inclusive range of a fixed-width primitive.
func fixedBounds(p primitive) (lo, hi *big.Int) {
	bits := int64(8 * p.size)
	if p.class == classUnsigned {
		hi = math.BigPow(2, bits)
		return new(big.Int), hi.Sub(hi, big.NewInt(1))
	}
	half := math.BigPow(2, bits-1)
	lo = new(big.Int).Neg(half)
	hi = new(big.Int).Sub(half, big.NewInt(1))
	return lo, hi
}

// encodeFixed encodes a fixed-width integer. Nested values use exactly
// p.size bytes; top-level values use the minimal byte count, never zero bytes.
func encodeFixed(v *big.Int, p primitive, nested bool) (string, error) {
	lo, hi := fixedBounds(p)
	if v.Cmp(lo) < 0 || v.Cmp(hi) > 0 {
		return "", fmt.Errorf("%w: %s not in [%s, %s]", ErrOutOfRange, v, lo, hi)
	}

	if nested {
		if v.Sign() < 0 {
			return TwosComplement(v, 8*p.size)
		}
		return common.Bytes2Hex(math.PaddedBigBytes(v, p.size)), nil
	}

	var b []byte
	if p.class == classUnsigned {
		b = v.Bytes()
	} else {
		b = toTwos(v)
	}
	if len(b) == 0 {
		return "00", nil
	}
	return common.Bytes2Hex(b), nil
}

// encodeBigUint encodes an arbitrary-precision unsigned integer as a
// length-prefixed magnitude (nested) or the raw magnitude (top-level).
func encodeBigUint(v *big.Int, nested bool) (string, error) {
	if v.Sign() < 0 {
		return "", fmt.Errorf("%w: BigUint cannot hold %s", ErrOutOfRange, v)
	}
	b := v.Bytes()
	if nested {
		return lengthPrefix(len(b)) + common.Bytes2Hex(b), nil
	}
	if len(b) == 0 {
		return "00", nil
	}
	return common.Bytes2Hex(b), nil
}

// encodeBigInt encodes an arbitrary-precision signed integer as minimal
// two's-complement bytes, length-prefixed when nested.
func encodeBigInt(v *big.Int, nested bool) string {
	b := toTwos(v)
	if nested {
		return lengthPrefix(len(b)) + common.Bytes2Hex(b)
	}
	if len(b) == 0 {
		return "00"
	}
	return common.Bytes2Hex(b)
}

// decodeFixed converts the bytes of a fixed-width integer to its Go value:
// uint8/uint16/uint32, int8/int16/int32, or *big.Int for 64-bit widths.
// Signed values are sign-extended from the number of bytes given.
func decodeFixed(b []byte, p primitive) any {
	var v *big.Int
	if p.class == classSigned {
		v = fromTwos(b)
	} else {
		v = new(big.Int).SetBytes(b)
	}

	switch {
	case p.size == 8:
		return v
	case p.class == classSigned && p.size == 1:
		return int8(v.Int64())
	case p.class == classSigned && p.size == 2:
		return int16(v.Int64())
	case p.class == classSigned:
		return int32(v.Int64())
	case p.size == 1:
		return uint8(v.Uint64())
	case p.size == 2:
		return uint16(v.Uint64())
	default:
		return uint32(v.Uint64())
	}
}

// isDecimalASCII reports whether b spells an optionally negative decimal integer.
func isDecimalASCII(b []byte) bool {
	if len(b) > 0 && b[0] == '-' {
		b = b[1:]
	}
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// decodeBigIntPayload reads a BigInt payload. When ascii is set and the bytes
// are decimal digits they are parsed as text; otherwise they are signed
// big-endian binary. The second result reports whether the text form was used.
func decodeBigIntPayload(b []byte, ascii bool) (*big.Int, bool) {
	if ascii && isDecimalASCII(b) {
		if v, ok := new(big.Int).SetString(string(b), 10); ok {
			return v, true
		}
	}
	return fromTwos(b), false
}
