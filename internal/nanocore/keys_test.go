package nanocore

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"
)

func TestDerivePublicKeyMatchesManualClampAndMultiply(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("01234567890123456789012345678901"))

	priv, err := DerivePrivateKey(seed, 7)
	require.Nil(t, err)

	pub, err := DerivePublicKey(priv)
	require.Nil(t, err)

	h, herr := blake2b64(priv[:])
	require.NoError(t, herr)

	a, serr := new(edwards25519.Scalar).SetBytesWithClamping(append([]byte{}, h[:32]...))
	require.NoError(t, serr)

	A := new(edwards25519.Point).ScalarBaseMult(a)
	require.Equal(t, A.Bytes(), pub[:])
}

func TestDerivePrivateKeyDeterministic(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("abcdefghijklmnopqrstuvwxyz012345"))

	p1, err := DerivePrivateKey(seed, 0)
	require.Nil(t, err)
	p2, err := DerivePrivateKey(seed, 0)
	require.Nil(t, err)
	require.Equal(t, p1, p2)

	p3, err := DerivePrivateKey(seed, 1)
	require.Nil(t, err)
	require.NotEqual(t, p1, p3)
}
