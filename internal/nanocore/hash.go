package nanocore

import "golang.org/x/crypto/blake2b"

// blake2bN hashes data to an unkeyed Blake2b digest of exactly n bytes.
// Nano uses four widths: 5 (address checksum), 8 (work value), 32 (block
// and key hashes), 64 (signing nonce material).
func blake2bN(data []byte, n int) ([]byte, error) {
	h, err := blake2b.New(n, nil)
	if err != nil {
		return nil, err
	}
	h.Write(data)
	return h.Sum(nil), nil
}

func blake2b32(data []byte) ([32]byte, error) {
	var out [32]byte
	b, err := blake2bN(data, 32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func blake2b64(data []byte) ([64]byte, error) {
	var out [64]byte
	b, err := blake2bN(data, 64)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}
