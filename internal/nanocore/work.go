package nanocore

import "encoding/binary"

// Proof-of-work difficulty thresholds. Both receive and open use the same
// uniform epoch-2 threshold; see DESIGN.md for why this is intentional
// rather than a leftover branch.
const (
	ThresholdSendChange       uint64 = 0xFFFFFFF800000000
	ThresholdReceiveOpenEpoch uint64 = 0xFFFFFE0000000000
)

// WorkValue computes blake2b_8(workLE8 || root) interpreted as a
// little-endian uint64, the value a proof-of-work nonce must meet or
// exceed against a threshold.
func WorkValue(root [32]byte, workLE8 [8]byte) (uint64, *Error) {
	concat := make([]byte, 0, 40)
	concat = append(concat, workLE8[:]...)
	concat = append(concat, root[:]...)

	h, err := blake2bN(concat, 8)
	if err != nil {
		return 0, newErr(ErrCalculateWorkFailed, err.Error())
	}
	return binary.LittleEndian.Uint64(h), nil
}

// WorkMeetsThreshold reports whether value satisfies threshold using
// unsigned comparison: value must be >= threshold (higher is harder).
func WorkMeetsThreshold(value, threshold uint64) bool {
	return value >= threshold
}
