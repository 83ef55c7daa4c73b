package common

import (
	"encoding/hex"
	"fmt"
)

// Bytes is a convenience alias used throughout the module for raw byte
// slices.
type Bytes = []byte

// HashLength is the length in bytes of a Hash.
const HashLength = 32

// Hash represents the 256-bit output of the module's content hash.
type Hash [HashLength]byte

// BytesToHash converts a byte slice to a Hash, left-padding with zeroes
// if the slice is shorter than HashLength and truncating from the left
// if it is longer.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// HexToHash parses a hex string (with or without the "0x" prefix) into a Hash.
func HexToHash(s string) Hash {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return BytesToHash(b)
}

// IsEmpty reports whether the hash is the zero value.
func (h Hash) IsEmpty() bool {
	return h == Hash{}
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// Hex returns the "0x"-prefixed hex encoding of the hash.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// AddressLength is the length in bytes of an Address (a wallet key ID).
const AddressLength = 20

// Address identifies a key held by a wallet (the "key-id" in spec terms).
type Address [AddressLength]byte

// BytesToAddress converts a byte slice into an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// HexToAddress parses a hex string into an Address.
func HexToAddress(s string) Address {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return BytesToAddress(b)
}

// IsEmpty reports whether the address is the zero value.
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// RegID is the stable on-chain identifier of an account eligible to be a
// delegate. It is opaque to this core beyond equality comparison and
// string rendering.
type RegID string

// IsEmpty reports whether the RegID is unset.
func (r RegID) IsEmpty() bool {
	return r == ""
}

func (r RegID) String() string {
	return string(r)
}

// RegIDFromAddress derives a RegID from an address, used by the bundled
// default wallet/account implementations where no richer on-chain
// registration identifier is available.
func RegIDFromAddress(a Address) RegID {
	return RegID(fmt.Sprintf("reg:%s", a.Hex()))
}
