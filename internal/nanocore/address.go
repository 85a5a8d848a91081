package nanocore

import "strings"

const (
	addressPrefixNano = "nano_"
	addressPrefixXRB  = "xrb_"
	addressBodyLen    = 52
	addressChecksumLen = 8
)

// EncodeAddress renders a 32-byte public key as a "nano_"-prefixed address
// with an 8-char Blake2b-5 checksum.
func EncodeAddress(pub [32]byte) (string, *Error) {
	chk, err := blake2bN(pub[:], 5)
	if err != nil {
		return "", newErr(ErrInvalidRepresentativeAddress, err.Error())
	}
	reverseBytes(chk)

	padded := make([]byte, 3, 35)
	padded = append(padded, pub[:]...)
	body := base32Encode(padded)[4:]
	checksum := base32Encode(chk)

	return addressPrefixNano + body + checksum, nil
}

// DecodeAddress parses a "nano_"/"xrb_" address into its 32-byte public
// key. When verify is true the embedded checksum must match.
func DecodeAddress(address string, verify bool) ([32]byte, *Error) {
	var out [32]byte
	addr := strings.TrimSpace(address)

	var rest string
	switch {
	case strings.HasPrefix(addr, addressPrefixNano):
		rest = addr[len(addressPrefixNano):]
	case strings.HasPrefix(addr, addressPrefixXRB):
		rest = addr[len(addressPrefixXRB):]
	default:
		return out, newErr(ErrInvalidAddress, "address must start with 'nano_' or 'xrb_'")
	}

	if len(rest) != addressBodyLen+addressChecksumLen {
		return out, newErr(ErrInvalidAddress, "unexpected address length")
	}

	bodyPart := rest[:addressBodyLen]
	checksumPart := rest[addressBodyLen:]

	pub, err := base32DecodeAddressBody(bodyPart)
	if err != nil {
		return out, newErr(ErrInvalidAddress, err.Error())
	}

	if verify {
		expected, err := blake2bN(pub[:], 5)
		if err != nil {
			return out, newErr(ErrInvalidAddress, err.Error())
		}
		reverseBytes(expected)

		given, err := base32Decode(checksumPart)
		if err != nil {
			return out, newErr(ErrInvalidAddress, err.Error())
		}
		if len(given) < 5 {
			return out, newErr(ErrInvalidAddress, "checksum too short")
		}
		given = given[len(given)-5:]
		if !bytesEqual(given, expected) {
			return out, newErr(ErrInvalidAddress, "checksum mismatch")
		}
	}

	return pub, nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
