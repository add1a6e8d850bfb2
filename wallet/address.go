// Package wallet implements key-pair management, a JSON keystore, coin
// selection and signing for the educational P2PKH wallet.
package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/btcgo-edu/btcgo/consensus"
	"github.com/btcgo-edu/btcgo/keys"
)

// AddressBytes is the length of the hash160 an address encodes.
const AddressBytes = 20

// AddressFor derives the 40-hex-character address of a public key:
// hex(hash160(pubkey_compressed)).
func AddressFor(pub [keys.CompressedPubKeyBytes]byte) string {
	hash := consensus.Hash160(pub[:])
	return hex.EncodeToString(hash[:])
}

// ScriptForAddress builds the P2PKH scriptPubKey locking to a hex address.
func ScriptForAddress(address string) ([]byte, error) {
	raw, err := hex.DecodeString(address)
	if err != nil {
		return nil, fmt.Errorf("wallet: address %q: %w", address, err)
	}
	if len(raw) != AddressBytes {
		return nil, fmt.Errorf("wallet: address %q: expected %d bytes, got %d", address, AddressBytes, len(raw))
	}
	var hash [AddressBytes]byte
	copy(hash[:], raw)
	return consensus.P2PKHScript(hash), nil
}
