package kvmabi

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidABI indicates the schema is missing, empty, or lacks the types map a
	// custom type reference needs.
	ErrInvalidABI = errors.New("kvmabi: invalid abi")

	// ErrInvalidEndpoint indicates the endpoint name is empty or not declared in the schema.
	ErrInvalidEndpoint = errors.New("kvmabi: invalid endpoint")

	// ErrInvalidMutability indicates an endpoint is not readonly and cannot be decoded by name.
	ErrInvalidMutability = errors.New("kvmabi: invalid mutability")

	// ErrInvalidOutputArity indicates an endpoint declares zero or several outputs.
	ErrInvalidOutputArity = errors.New("kvmabi: invalid output length")

	// ErrInvalidType indicates an unresolvable custom type or an unrecognized primitive.
	ErrInvalidType = errors.New("kvmabi: invalid type")

	// ErrInvalidAddress indicates a malformed bech32 address or a payload that is not 32 bytes.
	ErrInvalidAddress = errors.New("kvmabi: invalid address")

	// ErrShortBuffer indicates the input ended before a value was fully read.
	ErrShortBuffer = errors.New("kvmabi: unexpected end of input")

	// ErrInvalidHex indicates the input is not a hexadecimal string.
	ErrInvalidHex = errors.New("kvmabi: invalid hex input")

	// ErrNotNumeric indicates a value could not be coerced to an integer.
	ErrNotNumeric = errors.New("kvmabi: value is not numeric")

	// ErrOutOfRange indicates an integer does not fit the target type.
	ErrOutOfRange = errors.New("kvmabi: value out of range")

	// ErrInvalidOptionFlag indicates an option presence byte other than 0x00 or 0x01.
	ErrInvalidOptionFlag = errors.New("kvmabi: invalid option flag")

	// ErrNoProgress indicates a repeated decode consumed no input.
	ErrNoProgress = errors.New("kvmabi: decoder made no progress")

	// ErrListTooLong indicates a list count above the configured limit.
	ErrListTooLong = errors.New("kvmabi: list length exceeds limit")

	// ErrTrailingData indicates input left over after a complete top-level value.
	ErrTrailingData = errors.New("kvmabi: trailing data after value")

	// ErrArgumentCount indicates a call received the wrong number of arguments.
	ErrArgumentCount = errors.New("kvmabi: wrong number of arguments")
)

// EndpointError indicates an endpoint cannot be used for the requested operation.
type EndpointError struct {
	Endpoint string
	Err      error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Endpoint)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

// TypeError indicates a type signature that cannot be parsed or resolved.
type TypeError struct {
	Type string
	Err  error
}

func (e *TypeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("kvmabi: invalid type: %s", e.Type)
	}
	return fmt.Sprintf("kvmabi: invalid type %s: %v", e.Type, e.Err)
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidType, which every TypeError matches.
func (e *TypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// DecodeError indicates a failure while decoding a value of the given type.
// Offset is the byte position in the input where the failing read started.
type DecodeError struct {
	Type   string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("kvmabi: decoding %s at byte %d: %v", e.Type, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodingError indicates a failure during value encoding.
type EncodingError struct {
	Type  string
	Value any
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("kvmabi: encoding %T as %s: %v", e.Value, e.Type, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// AddressError indicates a malformed address.
type AddressError struct {
	Address string
	Reason  string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("kvmabi: invalid address %q: %s", e.Address, e.Reason)
}

func (e *AddressError) Unwrap() error {
	return ErrInvalidAddress
}

// ArgumentError indicates an issue with a contract call argument.
type ArgumentError struct {
	Endpoint string
	Index    int
	Err      error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("kvmabi: argument %d for endpoint %q: %v", e.Index, e.Endpoint, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}
