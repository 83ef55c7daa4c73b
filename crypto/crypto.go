// Package crypto provides the hashing and signing primitives this core
// needs: the Keccak-256 content hash used to seed the delegate shuffle
// and to hash block signatures, and the PrivateKey/PublicKey/Signature
// types the wallet collaborator is built against. ECDSA over the
// standard library's P256 curve.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/dpos-core/minercore/common"
)

// Keccak256 calculates and returns the Keccak-256 hash of the input data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates the Keccak-256 hash of the input data and
// returns it as a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}

// PrivateKey is the signing half of a delegate's key pair.
type PrivateKey struct {
	key *ecdsa.PrivateKey
}

// PublicKey is the verifying half of a delegate's key pair.
type PublicKey struct {
	key *ecdsa.PublicKey
}

// Signature is a detached ECDSA signature over a message hash.
type Signature struct {
	R, S *big.Int
}

// IsValid reports whether the signature has non-nil components.
func (s Signature) IsValid() bool {
	return s.R != nil && s.S != nil
}

// ToBytes serializes the signature; the verifier bounds the result's
// length in (0, MaxBlockSignatureSize].
func (s Signature) ToBytes() common.Bytes {
	if !s.IsValid() {
		return nil
	}
	rb, sb := s.R.Bytes(), s.S.Bytes()
	out := make([]byte, 2+len(rb)+len(sb))
	out[0] = byte(len(rb))
	copy(out[1:], rb)
	out[1+len(rb)] = byte(len(sb))
	copy(out[2+len(rb):], sb)
	return out
}

// GenerateKeyPair creates a new random key pair.
func GenerateKeyPair() (PrivateKey, PublicKey, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return PrivateKey{}, PublicKey{}, err
	}
	return PrivateKey{key: key}, PublicKey{key: &key.PublicKey}, nil
}

// PublicKey returns the public half of the key pair.
func (pk PrivateKey) PublicKey() PublicKey {
	return PublicKey{key: &pk.key.PublicKey}
}

// IsValid reports whether the private key is usable.
func (pk PrivateKey) IsValid() bool {
	return pk.key != nil
}

// Sign produces a detached signature over the given message hash.
func (pk PrivateKey) Sign(hash common.Hash) (Signature, error) {
	if pk.key == nil {
		return Signature{}, errors.New("crypto: nil private key")
	}
	r, s, err := ecdsa.Sign(rand.Reader, pk.key, hash[:])
	if err != nil {
		return Signature{}, err
	}
	return Signature{R: r, S: s}, nil
}

// IsValid reports whether the public key is usable.
func (pub PublicKey) IsValid() bool {
	return pub.key != nil
}

// Address derives the wallet key-id for this public key: the last
// AddressLength bytes of the Keccak-256 hash of its uncompressed
// encoding, minus the format prefix byte.
func (pub PublicKey) Address() common.Address {
	if pub.key == nil {
		return common.Address{}
	}
	raw := elliptic.Marshal(pub.key.Curve, pub.key.X, pub.key.Y)
	return common.BytesToAddress(Keccak256(raw[1:]))
}

// Verify checks a signature against a message hash and this public key.
func Verify(hash common.Hash, sig Signature, pub PublicKey) bool {
	if pub.key == nil || !sig.IsValid() {
		return false
	}
	return ecdsa.Verify(pub.key, hash[:], sig.R, sig.S)
}
