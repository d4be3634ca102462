// Package kvmabi encodes and decodes Klever VM smart contract data against a
// contract ABI.
//
// Contract endpoints exchange values as hex strings. A value is written either
// nested, when it is part of a larger value and must be self-delimiting, or
// top-level, when it is a whole endpoint argument or return value and its
// length is implied by the surrounding data. Top-level arguments in call data
// are joined with "@".
//
// # Decoding
//
// Decode the result of a readonly endpoint:
//
//	schema := kvmabi.MustParseSchema(abiJSON)
//	dec := kvmabi.NewDecoder(schema)
//
//	v, err := dec.Decode(returnHex, "getWinner")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	winner := v.(*kvmabi.Struct)
//
// Decode a single value by type:
//
//	v, err := dec.DecodeValue("ffff", "i16") // int16(-1)
//
// # Encoding
//
//	enc := kvmabi.NewEncoder(schema)
//	h, err := enc.EncodeValue(big.NewInt(-1), "i64", true) // "ffffffffffffffff"
//
// # Call data
//
//	c := kvmabi.NewContract(contractAddr, schema)
//	call := c.MustInvoke("transfer", "klv1...", big.NewInt(1000))
//	data := call.Data() // "transfer@<address>@03e8"
//
// # Types
//
// Type signatures combine primitives (u8..u64, i8..i64, usize, isize, BigUint,
// BigInt, bool, Address, and the byte strings ManagedBuffer, BoxedBytes,
// &[u8], Vec<u8>, String, &str, bytes, TokenIdentifier) with the wrappers
// Option<T>, List<T> (also ManagedVec<T>, Vec<T>), tuple<...>, variadic<T>
// and multi<...>. Any other bare name refers to a struct, enum or alias in
// the schema's types map.
package kvmabi
