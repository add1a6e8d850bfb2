// Package keys provides secp256k1 key-pair lifecycle and DER ECDSA
// sign/verify for the wallet. Address derivation lives in package wallet.
package keys

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// SecretKeyBytes is the length of a raw secp256k1 secret scalar.
const SecretKeyBytes = 32

// CompressedPubKeyBytes is the length of a compressed secp256k1 public key.
const CompressedPubKeyBytes = 33

// KeyPair holds a secp256k1 secret scalar and its derived public key.
type KeyPair struct {
	secret *secp256k1.PrivateKey
	pub    *secp256k1.PublicKey
}

// Generate creates a new random key pair using crypto/rand as the entropy
// source.
func Generate() (*KeyPair, error) {
	var raw [SecretKeyBytes]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return nil, fmt.Errorf("keys: generate: %w", err)
	}
	return FromSecretBytes(raw[:])
}

// FromSecretBytes reconstructs a key pair from a 32-byte secret scalar,
// recomputing the public key (used when loading a persisted keystore).
func FromSecretBytes(secret []byte) (*KeyPair, error) {
	if len(secret) != SecretKeyBytes {
		return nil, fmt.Errorf("keys: secret must be %d bytes, got %d", SecretKeyBytes, len(secret))
	}
	priv := secp256k1.PrivKeyFromBytes(secret)
	return &KeyPair{secret: priv, pub: priv.PubKey()}, nil
}

// SecretBytes returns the 32-byte secret scalar.
func (k *KeyPair) SecretBytes() [SecretKeyBytes]byte {
	var out [SecretKeyBytes]byte
	copy(out[:], k.secret.Serialize())
	return out
}

// PublicKeyCompressed returns the 33-byte compressed public key encoding.
func (k *KeyPair) PublicKeyCompressed() [CompressedPubKeyBytes]byte {
	var out [CompressedPubKeyBytes]byte
	copy(out[:], k.pub.SerializeCompressed())
	return out
}

// Sign produces a DER-encoded ECDSA signature over the 32-byte digest.
func (k *KeyPair) Sign(digest [32]byte) []byte {
	sig := ecdsa.Sign(k.secret, digest[:])
	return sig.Serialize()
}

// Verify checks a DER-encoded ECDSA signature over digest against a
// compressed public key. It returns (false, nil) for a well-formed but
// incorrect signature, and a non-nil error only for a malformed DER
// signature or public key encoding.
func Verify(pubkeyCompressed []byte, derSig []byte, digest [32]byte) (bool, error) {
	pub, err := secp256k1.ParsePubKey(pubkeyCompressed)
	if err != nil {
		return false, fmt.Errorf("keys: parse pubkey: %w", err)
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, fmt.Errorf("keys: parse signature: %w", err)
	}
	return sig.Verify(digest[:], pub), nil
}

// SecretHex renders the secret scalar as lowercase hex, for display and
// comparison purposes.
func (k *KeyPair) SecretHex() string {
	b := k.SecretBytes()
	return hex.EncodeToString(b[:])
}
