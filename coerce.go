package kvmabi

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// coerceBigInt converts a loosely typed numeric value to a *big.Int.
// It accepts Go integer kinds, integral floats (as produced by encoding/json),
// json.Number, decimal or 0x-prefixed hex strings, big.Int and uint256.Int.
func coerceBigInt(value any) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		if v == nil {
			break
		}
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case *uint256.Int:
		if v == nil {
			break
		}
		return v.ToBig(), nil
	case uint256.Int:
		return v.ToBig(), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case float32:
		return coerceFloat(float64(v))
	case float64:
		return coerceFloat(v)
	case json.Number:
		return coerceString(string(v))
	case string:
		return coerceString(v)
	}
	return nil, fmt.Errorf("%w: %T", ErrNotNumeric, value)
}

func coerceFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: %v", ErrNotNumeric, f)
	}
	v, _ := big.NewFloat(f).Int(nil)
	return v, nil
}

func coerceString(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok || digits == "" || digits[0] == '+' || digits[0] == '-' {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// coerceBool converts a loosely typed value to a bool.
func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true, nil
		case "false", "0", "":
			return false, nil
		}
	default:
		if n, err := coerceBigInt(value); err == nil {
			return n.Sign() != 0, nil
		}
	}
	return false, fmt.Errorf("not a boolean: %v", value)
}

// coerceBytes converts a string or byte slice to the bytes of a byte-string type.
func coerceBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	}
	return nil, fmt.Errorf("expected string or []byte, got %T", value)
}
