package consensus

import "math/big"

// TargetFromBits decodes a compact ("bits") representation into a 256-bit
// target, using the same exponent/coefficient layout as the original
// difficulty encoding: the high byte is the exponent (in bytes) and the low
// three bytes are the full 24-bit coefficient.
func TargetFromBits(bits uint32) (*big.Int, error) {
	exponent := bits >> 24
	coefficient := int64(bits & 0x00ffffff)

	target := big.NewInt(coefficient)
	if exponent <= 3 {
		shift := uint(8 * (3 - exponent))
		target.Rsh(target, shift)
	} else {
		shift := uint(8 * (exponent - 3))
		target.Lsh(target, shift)
	}
	return target, nil
}

// BitsFromTarget encodes a 256-bit target into its compact representation,
// the inverse of TargetFromBits.
func BitsFromTarget(target *big.Int) uint32 {
	if target.Sign() <= 0 {
		return 0
	}
	b := target.Bytes()
	exponent := len(b)
	var coefficient uint32
	switch {
	case exponent <= 3:
		coefficient = uint32(new(big.Int).Lsh(target, uint(8*(3-exponent))).Uint64())
	default:
		top := b[:3]
		coefficient = uint32(top[0])<<16 | uint32(top[1])<<8 | uint32(top[2])
	}
	return uint32(exponent)<<24 | coefficient
}

// hashToBigInt interprets a Hash256's internal bytes directly as a
// big-endian 256-bit integer, with no reordering: byte[0] is the most
// significant byte.
func hashToBigInt(h Hash256) *big.Int {
	return new(big.Int).SetBytes(h[:])
}

// MeetsTarget reports whether a block header's hash satisfies its own
// compact-bits target, i.e. hash (as a big-endian integer) is strictly less
// than the decoded target.
func MeetsTarget(hash Hash256, bits uint32) (bool, error) {
	target, err := TargetFromBits(bits)
	if err != nil {
		return false, err
	}
	return hashToBigInt(hash).Cmp(target) < 0, nil
}

// CheckProofOfWork validates that h's hash meets h's own target, returning
// InvalidProofOfWork if not.
func CheckProofOfWork(h BlockHeader) error {
	ok, err := MeetsTarget(h.Hash(), h.Bits)
	if err != nil {
		return err
	}
	if !ok {
		return newErr(CodeInvalidProofOfWork, "header hash does not meet target for bits 0x%08x", h.Bits)
	}
	return nil
}

// MineScalar searches nonces [0, 2^32) in order on a single goroutine,
// returning the first nonce whose resulting header hash meets target. It
// reports false if the full nonce space is exhausted without success.
func MineScalar(h BlockHeader) (nonce uint32, ok bool, err error) {
	target, err := TargetFromBits(h.Bits)
	if err != nil {
		return 0, false, err
	}
	candidate := h
	n := uint32(0)
	for {
		candidate.Nonce = n
		if hashToBigInt(candidate.Hash()).Cmp(target) < 0 {
			return n, true, nil
		}
		if n == ^uint32(0) {
			return 0, false, nil
		}
		n++
	}
}
