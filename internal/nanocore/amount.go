package nanocore

import (
	"math/big"
	"strings"
)

// unitScale is 10^30, the number of raw units in one Nano.
var unitScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)

// maxRaw bounds a valid u128 raw amount (2^128 - 1).
var maxRaw = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// NanoToRaw parses a decimal Nano amount string into its raw (10^-30 Nano)
// integer value. See spec §4.2 for the exact validation order, which this
// follows step for step.
func NanoToRaw(s string) (*big.Int, *Error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, newErr(ErrInvalidNumberFormat, "empty amount")
	}
	if strings.HasPrefix(trimmed, "-") {
		return nil, newErr(ErrInvalidNegativeAmount, "amount must not be negative")
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) > 2 {
		return nil, newErr(ErrInvalidNumberFormat, "at most one decimal point allowed")
	}

	wholeStr := parts[0]
	fracStr := ""
	if len(parts) == 2 {
		fracStr = parts[1]
	}

	if wholeStr != "" && !allDigits(wholeStr) {
		return nil, newErr(ErrInvalidWholeNumber, "whole part must be all digits")
	}
	if fracStr != "" && !allDigits(fracStr) {
		return nil, newErr(ErrInvalidFractionalPart, "fractional part must be all digits")
	}
	if len(fracStr) > 30 {
		return nil, newErr(ErrTooManyDecimalPlaces, "at most 30 decimal places allowed")
	}

	fracPadded := fracStr + strings.Repeat("0", 30-len(fracStr))

	whole := new(big.Int)
	if wholeStr != "" && wholeStr != "0" {
		if _, ok := whole.SetString(wholeStr, 10); !ok {
			return nil, newErr(ErrInvalidWholeNumber, "invalid whole number")
		}
	}

	fractional := new(big.Int)
	if fracPadded != "" {
		if _, ok := fractional.SetString(fracPadded, 10); !ok {
			return nil, newErr(ErrInvalidFractionalPart, "invalid fractional part")
		}
	}

	raw := new(big.Int).Mul(whole, unitScale)
	raw.Add(raw, fractional)
	if raw.Cmp(maxRaw) > 0 {
		return nil, newErr(ErrAmountTooLarge, "amount exceeds u128 range")
	}
	return raw, nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
