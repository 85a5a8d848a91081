package nanocore

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNanoToRawBasics(t *testing.T) {
	zero, err := NanoToRaw("0")
	require.Nil(t, err)
	require.Equal(t, big.NewInt(0), zero)

	one, err := NanoToRaw("1")
	require.Nil(t, err)
	require.Equal(t, new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil), one)

	smallest, err := NanoToRaw("0." + strings.Repeat("0", 29) + "1")
	require.Nil(t, err)
	require.Equal(t, big.NewInt(1), smallest)
}

func TestNanoToRawFractional(t *testing.T) {
	raw, err := NanoToRaw("1.23456789")
	require.Nil(t, err)
	expected := new(big.Int)
	expected.SetString("1234567890000000000000000000000", 10)
	require.Equal(t, expected, raw)
}

func TestNanoToRawErrors(t *testing.T) {
	_, err := NanoToRaw("0." + strings.Repeat("0", 30) + "1")
	require.NotNil(t, err)
	require.Equal(t, ErrTooManyDecimalPlaces, err.Kind)

	_, err = NanoToRaw("-0.1")
	require.NotNil(t, err)
	require.Equal(t, ErrInvalidNegativeAmount, err.Kind)

	_, err = NanoToRaw("1a")
	require.NotNil(t, err)
	require.Equal(t, ErrInvalidWholeNumber, err.Kind)

	_, err = NanoToRaw("")
	require.NotNil(t, err)
	require.Equal(t, ErrInvalidNumberFormat, err.Kind)

	_, err = NanoToRaw("1.2.3")
	require.NotNil(t, err)
	require.Equal(t, ErrInvalidNumberFormat, err.Kind)
}

func TestNanoToRawOverflow(t *testing.T) {
	huge := strings.Repeat("9", 40)
	_, err := NanoToRaw(huge)
	require.NotNil(t, err)
	require.Equal(t, ErrAmountTooLarge, err.Kind)
}

func TestNanoToRawMonotonic(t *testing.T) {
	a, err := NanoToRaw("1.5")
	require.Nil(t, err)
	b, err := NanoToRaw("1.50000000000000000000000000001")
	require.Nil(t, err)
	require.Equal(t, -1, a.Cmp(b))
}
