package kvmabi

import (
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/ethereum/go-ethereum/common"
)

// AddressLength is the size in bytes of a decoded account address.
const AddressLength = 32

// EncodeAddress converts a bech32 "klv1..." address to its 64-nibble hex form.
// It fails with an *AddressError when the checksum, prefix, or payload length
// is wrong.
func EncodeAddress(address string) (string, error) {
	b, err := addressBytes(address, DefaultAddressPrefix)
	if err != nil {
		return "", err
	}
	return common.Bytes2Hex(b), nil
}

// EncodeAddressLenient is like EncodeAddress but returns the input unchanged
// when it is not a valid address.
func EncodeAddressLenient(address string) string {
	h, err := EncodeAddress(address)
	if err != nil {
		return address
	}
	return h
}

// DecodeAddress converts a 32-byte hex value to its bech32 "klv1..." form.
func DecodeAddress(hexValue string) (string, error) {
	b, err := parseHex(hexValue)
	if err != nil {
		return "", &AddressError{Address: hexValue, Reason: err.Error()}
	}
	return addressString(b, DefaultAddressPrefix)
}

// IsAddress reports whether s is a valid "klv1..." address.
func IsAddress(s string) bool {
	_, err := addressBytes(s, DefaultAddressPrefix)
	return err == nil
}

// addressBytes decodes a bech32 address with the given prefix to its raw payload.
func addressBytes(address, prefix string) ([]byte, error) {
	hrp, words, err := bech32.Decode(address)
	if err != nil {
		return nil, &AddressError{Address: address, Reason: err.Error()}
	}
	if hrp != prefix {
		return nil, &AddressError{Address: address, Reason: "invalid prefix " + hrp}
	}

	b, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return nil, &AddressError{Address: address, Reason: err.Error()}
	}
	if len(b) != AddressLength {
		return nil, &AddressError{Address: address, Reason: "invalid pubkey length"}
	}
	return b, nil
}

// addressString renders a raw 32-byte payload as a bech32 address.
func addressString(b []byte, prefix string) (string, error) {
	if len(b) != AddressLength {
		return "", &AddressError{Address: common.Bytes2Hex(b), Reason: "invalid pubkey length"}
	}

	words, err := bech32.ConvertBits(b, 8, 5, true)
	if err != nil {
		return "", &AddressError{Address: common.Bytes2Hex(b), Reason: err.Error()}
	}
	s, err := bech32.Encode(prefix, words)
	if err != nil {
		return "", &AddressError{Address: common.Bytes2Hex(b), Reason: err.Error()}
	}
	return s, nil
}
