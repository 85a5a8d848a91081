package nanocore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeAddressRoundTrip(t *testing.T) {
	cases := [][32]byte{
		{}, // the well-known Nano burn address: all-zero public key.
	}
	var nonZero [32]byte
	copy(nonZero[:], []byte("0123456789abcdefghijklmnopqrstuv"))
	cases = append(cases, nonZero)

	for _, pub := range cases {
		addr, err := EncodeAddress(pub)
		require.Nil(t, err)

		decoded, derr := DecodeAddress(addr, true)
		require.Nil(t, derr)
		require.Equal(t, pub, decoded)
	}
}

func TestEncodeAddressBurnVector(t *testing.T) {
	var zero [32]byte
	addr, err := EncodeAddress(zero)
	require.Nil(t, err)
	require.Equal(t, "nano_1111111111111111111111111111111111111111111111111111hifc8npp", addr)
}

func TestDecodeAddressRejectsBadPrefix(t *testing.T) {
	_, err := DecodeAddress("xno_1111111111111111111111111111111111111111111111111111hifc8npp", true)
	require.NotNil(t, err)
	require.Equal(t, ErrInvalidAddress, err.Kind)
}

func TestDecodeAddressRejectsChecksumMismatch(t *testing.T) {
	addr := "nano_1111111111111111111111111111111111111111111111111111hifc8npq"
	_, err := DecodeAddress(addr, true)
	require.NotNil(t, err)
	require.Equal(t, ErrInvalidAddress, err.Kind)
}

func TestDecodeAddressAcceptsXRBPrefix(t *testing.T) {
	var zero [32]byte
	addr, err := EncodeAddress(zero)
	require.Nil(t, err)
	xrbAddr := "xrb_" + addr[len(addressPrefixNano):]
	pub, derr := DecodeAddress(xrbAddr, true)
	require.Nil(t, derr)
	require.Equal(t, zero, pub)
}
