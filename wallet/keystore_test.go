package wallet

import (
	"path/filepath"
	"testing"
)

func TestKeystore_GenerateSetsDefaultAddress(t *testing.T) {
	ks := NewKeystore()
	addr, err := ks.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ks.DefaultAddress() != addr {
		t.Fatalf("default address = %q, want %q", ks.DefaultAddress(), addr)
	}
	if len(addr) != 40 {
		t.Fatalf("address length = %d, want 40 hex characters", len(addr))
	}
}

func TestKeystore_SaveLoadRoundTrip(t *testing.T) {
	ks := NewKeystore()
	addr1, err := ks.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := ks.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "keystore.json")
	if err := ks.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadKeystore(path)
	if err != nil {
		t.Fatalf("LoadKeystore: %v", err)
	}
	if loaded.DefaultAddress() != addr1 {
		t.Fatalf("loaded default address = %q, want %q", loaded.DefaultAddress(), addr1)
	}
	if len(loaded.Addresses()) != 2 {
		t.Fatalf("loaded %d addresses, want 2", len(loaded.Addresses()))
	}

	original, _ := ks.Get(addr1)
	restored, ok := loaded.Get(addr1)
	if !ok {
		t.Fatalf("loaded keystore missing address %q", addr1)
	}
	if restored.SecretHex() != original.SecretHex() {
		t.Fatal("restored secret does not match original")
	}
}

func TestScriptForAddress_RejectsWrongLength(t *testing.T) {
	if _, err := ScriptForAddress("abcd"); err == nil {
		t.Fatal("expected error for short address")
	}
}
