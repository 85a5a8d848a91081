package nanocore

import (
	"encoding/binary"

	"filippo.io/edwards25519"
)

// DerivePrivateKey computes priv = blake2b_32(seed || be32(index)), the
// Nano account private key material for a given seed and account index.
func DerivePrivateKey(seed [32]byte, index uint32) ([32]byte, *Error) {
	var out [32]byte
	data := make([]byte, 36)
	copy(data, seed[:])
	binary.BigEndian.PutUint32(data[32:], index)

	h, err := blake2b32(data)
	if err != nil {
		return out, newErr(ErrKeyDerivationFailed, err.Error())
	}
	return h, nil
}

// DerivePublicKey computes the Nano ed25519 public key for priv using
// Blake2b in place of SHA-512 throughout: h = blake2b_64(priv); clamp
// h[0:32] into a scalar a; A = compress(a*B).
func DerivePublicKey(priv [32]byte) ([32]byte, *Error) {
	var out [32]byte

	h, err := blake2b64(priv[:])
	if err != nil {
		return out, newErr(ErrKeyDerivationFailed, err.Error())
	}

	a, err := scalarFromClamped(h[:32])
	if err != nil {
		return out, newErr(ErrKeyDerivationFailed, err.Error())
	}

	A := new(edwards25519.Point).ScalarBaseMult(a)
	copy(out[:], A.Bytes())
	return out, nil
}

// scalarFromClamped applies RFC 8032 ed25519 clamping to a 32-byte scalar
// seed: s[0] &= 0xF8; s[31] &= 0x7F; s[31] |= 0x40.
func scalarFromClamped(b []byte) (*edwards25519.Scalar, error) {
	buf := make([]byte, 32)
	copy(buf, b)
	return new(edwards25519.Scalar).SetBytesWithClamping(buf)
}

// scalarFromWide reduces a 64-byte little-endian integer mod the group
// order, used for the deterministic nonce r and the challenge k.
func scalarFromWide(b []byte) (*edwards25519.Scalar, error) {
	return new(edwards25519.Scalar).SetUniformBytes(b)
}
