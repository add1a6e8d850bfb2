package consensus

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is required by hash160, matching Bitcoin v0.1.
)

// Hash256 is an opaque 32-byte digest. Equality and ordering are byte-wise
// big-endian over the internal (hashing/wire) byte order; see ToHex/FromHex
// for the display-order reversal.
type Hash256 [32]byte

// Hash256Zero is the all-zero digest used for the genesis prev-block-hash
// and the coinbase's null prevout.
var Hash256Zero = Hash256{}

// IsZero reports whether h is the all-zero digest.
func (h Hash256) IsZero() bool {
	return h == Hash256Zero
}

// ToHex renders h in display order: the internal bytes reversed, then hex
// encoded. This is the order shown to users and accepted back by FromHex.
func (h Hash256) ToHex() string {
	var rev [32]byte
	for i := range h {
		rev[i] = h[32-1-i]
	}
	return hex.EncodeToString(rev[:])
}

// Hash256FromHex parses a display-order hex string back into internal order.
func Hash256FromHex(s string) (Hash256, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash256{}, fmt.Errorf("%w: hash hex: %v", ErrMalformedInput, err)
	}
	if len(raw) != 32 {
		return Hash256{}, fmt.Errorf("%w: hash hex: expected 32 bytes, got %d", ErrMalformedInput, len(raw))
	}
	var h Hash256
	for i, b := range raw {
		h[32-1-i] = b
	}
	return h, nil
}

// DoubleSHA256 (a.k.a. hash256) computes SHA256(SHA256(data)) with no byte
// reversal in the pipeline itself.
func DoubleSHA256(data []byte) Hash256 {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return Hash256(second)
}

// Hash160 computes RIPEMD160(SHA256(data)), used to derive an address from a
// compressed public key.
func Hash160(data []byte) [20]byte {
	shaSum := sha256.Sum256(data)
	r := ripemd160.New()
	_, _ = r.Write(shaSum[:])
	var out [20]byte
	copy(out[:], r.Sum(nil))
	return out
}
