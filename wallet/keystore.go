package wallet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcgo-edu/btcgo/keys"
)

// persistedKey is the on-disk JSON shape of a single keystore entry: the
// secret scalar and the address it derives, so a corrupted file can be
// sanity-checked at load time without recomputing anything beyond the key
// pair itself.
type persistedKey struct {
	SecretKeyBytes [keys.SecretKeyBytes]byte `json:"secret_key_bytes"`
	Address        string                    `json:"address"`
}

type persistedKeystore struct {
	Keys           map[string]persistedKey `json:"keys"`
	DefaultAddress string                  `json:"default_address"`
}

// Keystore is an in-memory map of address to key pair, plus an optional
// default address set on first insertion.
type Keystore struct {
	keys           map[string]*keys.KeyPair
	defaultAddress string
}

// NewKeystore returns an empty keystore.
func NewKeystore() *Keystore {
	return &Keystore{keys: make(map[string]*keys.KeyPair)}
}

// Generate creates a new random key pair, inserts it, and returns its
// address. The first key ever inserted becomes the default address.
func (ks *Keystore) Generate() (string, error) {
	kp, err := keys.Generate()
	if err != nil {
		return "", fmt.Errorf("wallet: generate key: %w", err)
	}
	return ks.insert(kp), nil
}

func (ks *Keystore) insert(kp *keys.KeyPair) string {
	pub := kp.PublicKeyCompressed()
	address := AddressFor(pub)
	ks.keys[address] = kp
	if ks.defaultAddress == "" {
		ks.defaultAddress = address
	}
	return address
}

// Get returns the key pair for an address, if present.
func (ks *Keystore) Get(address string) (*keys.KeyPair, bool) {
	kp, ok := ks.keys[address]
	return kp, ok
}

// DefaultAddress returns the keystore's default address, or "" if empty.
func (ks *Keystore) DefaultAddress() string {
	return ks.defaultAddress
}

// Addresses returns every address held by the keystore.
func (ks *Keystore) Addresses() []string {
	out := make([]string, 0, len(ks.keys))
	for addr := range ks.keys {
		out = append(out, addr)
	}
	return out
}

// Save writes the keystore to path as JSON, atomically.
func (ks *Keystore) Save(path string) error {
	out := persistedKeystore{
		Keys:           make(map[string]persistedKey, len(ks.keys)),
		DefaultAddress: ks.defaultAddress,
	}
	for address, kp := range ks.keys {
		out.Keys[address] = persistedKey{
			SecretKeyBytes: kp.SecretBytes(),
			Address:        address,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("wallet: marshal keystore: %w", err)
	}
	return writeFileAtomic(path, data, 0o600)
}

// LoadKeystore reads a keystore from path, reconstructing public keys from
// each persisted secret.
func LoadKeystore(path string) (*Keystore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wallet: read keystore: %w", err)
	}
	var in persistedKeystore
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("wallet: parse keystore: %w", err)
	}

	ks := NewKeystore()
	for address, pk := range in.Keys {
		kp, err := keys.FromSecretBytes(pk.SecretKeyBytes[:])
		if err != nil {
			return nil, fmt.Errorf("wallet: keystore entry %q: %w", address, err)
		}
		got := ks.insert(kp)
		if got != pk.Address {
			return nil, fmt.Errorf("wallet: keystore entry %q: derived address %q does not match stored %q", address, got, pk.Address)
		}
	}
	ks.defaultAddress = in.DefaultAddress
	return ks, nil
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmpPath := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
