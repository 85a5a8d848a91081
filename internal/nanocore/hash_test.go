package nanocore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlake2bNWidths(t *testing.T) {
	for _, n := range []int{5, 8, 32, 64} {
		out, err := blake2bN([]byte("nano"), n)
		require.NoError(t, err)
		require.Len(t, out, n)
	}
}

func TestBlake2bNInvalidWidth(t *testing.T) {
	_, err := blake2bN([]byte("nano"), 0)
	require.Error(t, err)
	_, err = blake2bN([]byte("nano"), 65)
	require.Error(t, err)
}

func TestBlake2b32And64Helpers(t *testing.T) {
	h32, err := blake2b32([]byte("x"))
	require.NoError(t, err)
	require.Len(t, h32, 32)

	h64, err := blake2b64([]byte("x"))
	require.NoError(t, err)
	require.Len(t, h64, 64)
}
