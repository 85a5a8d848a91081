package nanocore

import (
	"encoding/hex"

	"filippo.io/edwards25519"
)

// StateBlock is the canonical Nano state block as it appears on the wire.
type StateBlock struct {
	Type           string `json:"type"`
	Account        string `json:"account"`
	Previous       string `json:"previous"`
	Representative string `json:"representative"`
	Balance        string `json:"balance"`
	Link           string `json:"link"`
	Signature      string `json:"signature"`
	Work           string `json:"work"`
}

// SignedBlock is a fully assembled, signed block plus the metadata the
// block builder derived while producing it.
type SignedBlock struct {
	Block            StateBlock `json:"block"`
	Hash             string     `json:"hash"`
	AccountPublicKey string     `json:"account_public_key"`
	Subtype          string     `json:"subtype"`
	WorkRoot         string     `json:"work_root"`
	ThresholdHex     string     `json:"threshold_hex"`
	WorkValueHex     string     `json:"work_value_hex"`
}

// blockPreamble is the fixed 32-byte state-block prefix: 31 zero bytes
// then the state-block marker 0x06.
var blockPreamble = func() [32]byte {
	var p [32]byte
	p[31] = 0x06
	return p
}()

// PreimageHash builds the 136-byte canonical state-block preimage and
// returns its Blake2b-32 hash. balance is encoded big-endian over 16 bytes.
func PreimageHash(accountPub, previous, representativePub [32]byte, balance [16]byte, link [32]byte) ([32]byte, *Error) {
	preimage := make([]byte, 0, 136)
	preimage = append(preimage, blockPreamble[:]...)
	preimage = append(preimage, accountPub[:]...)
	preimage = append(preimage, previous[:]...)
	preimage = append(preimage, representativePub[:]...)
	preimage = append(preimage, balance[:]...)
	preimage = append(preimage, link[:]...)

	h, err := blake2b32(preimage)
	if err != nil {
		return h, newErr(ErrBlockHashGenerationFailed, err.Error())
	}
	return h, nil
}

// SignHash produces the Blake2b-ed25519 deterministic signature over msg
// (normally a block hash) using the account derived from (seed, index).
func SignHash(seed [32]byte, index uint32, msg [32]byte) (sig [64]byte, pub [32]byte, derr *Error) {
	priv, derr := DerivePrivateKey(seed, index)
	if derr != nil {
		return sig, pub, derr
	}

	h, err := blake2b64(priv[:])
	if err != nil {
		return sig, pub, newErr(ErrSigningFailed, err.Error())
	}

	a, err := scalarFromClamped(h[:32])
	if err != nil {
		return sig, pub, newErr(ErrSigningFailed, err.Error())
	}

	pub, derr = DerivePublicKey(priv)
	if derr != nil {
		return sig, pub, derr
	}

	nonceInput := make([]byte, 0, 32+len(msg))
	nonceInput = append(nonceInput, h[32:64]...)
	nonceInput = append(nonceInput, msg[:]...)
	rHash, err := blake2b64(nonceInput)
	if err != nil {
		return sig, pub, newErr(ErrSigningFailed, err.Error())
	}
	r, err := scalarFromWide(rHash[:])
	if err != nil {
		return sig, pub, newErr(ErrSigningFailed, err.Error())
	}

	R := new(edwards25519.Point).ScalarBaseMult(r)
	var rBytes [32]byte
	copy(rBytes[:], R.Bytes())

	kInput := make([]byte, 0, 32+32+len(msg))
	kInput = append(kInput, rBytes[:]...)
	kInput = append(kInput, pub[:]...)
	kInput = append(kInput, msg[:]...)
	kHash, err := blake2b64(kInput)
	if err != nil {
		return sig, pub, newErr(ErrSigningFailed, err.Error())
	}
	k, err := scalarFromWide(kHash[:])
	if err != nil {
		return sig, pub, newErr(ErrSigningFailed, err.Error())
	}

	s := new(edwards25519.Scalar).Multiply(k, a)
	s.Add(s, r)

	copy(sig[:32], rBytes[:])
	copy(sig[32:], s.Bytes())
	return sig, pub, nil
}

// SignHashHex is SignHash with hex-encoded output, matching the upstream
// API shape StateBlock.Signature expects.
func SignHashHex(seed [32]byte, index uint32, msg [32]byte) (string, [32]byte, *Error) {
	sig, pub, err := SignHash(seed, index, msg)
	if err != nil {
		return "", pub, err
	}
	return hex.EncodeToString(sig[:]), pub, nil
}
