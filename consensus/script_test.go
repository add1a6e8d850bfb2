package consensus

import (
	"testing"

	"github.com/btcgo-edu/btcgo/keys"
)

func TestP2PKHScript_ParseRoundTrip(t *testing.T) {
	hash := Hash160([]byte("pubkey"))
	script := P2PKHScript(hash)
	if len(script) != ScriptPubKeyBytes {
		t.Fatalf("script length = %d, want %d", len(script), ScriptPubKeyBytes)
	}
	got, err := ParseP2PKHScript(script)
	if err != nil {
		t.Fatalf("ParseP2PKHScript: %v", err)
	}
	if got != hash {
		t.Fatalf("parsed hash mismatch: got %x, want %x", got, hash)
	}
}

func TestParseP2PKHScript_RejectsBadTemplate(t *testing.T) {
	script := P2PKHScript(Hash160([]byte("x")))
	script[0] = 0x00 // corrupt OP_DUP
	if _, err := ParseP2PKHScript(script); err == nil {
		t.Fatal("expected MalformedScript error for corrupted template")
	}
}

func TestVerifyP2PKH_CorrectKeyPasses(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatalf("keys.Generate: %v", err)
	}
	pub := kp.PublicKeyCompressed()
	pubHash := Hash160(pub[:])
	scriptPubKey := P2PKHScript(pubHash)

	digest := DoubleSHA256([]byte("message"))
	sig := kp.Sign(digest)
	scriptSig := BuildScriptSig(sig, pub)

	ok, err := VerifyP2PKH(scriptSig, scriptPubKey, digest)
	if err != nil {
		t.Fatalf("VerifyP2PKH: %v", err)
	}
	if !ok {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyP2PKH_WrongKeyFailsCleanly(t *testing.T) {
	owner, err := keys.Generate()
	if err != nil {
		t.Fatalf("keys.Generate: %v", err)
	}
	attacker, err := keys.Generate()
	if err != nil {
		t.Fatalf("keys.Generate: %v", err)
	}

	ownerPub := owner.PublicKeyCompressed()
	scriptPubKey := P2PKHScript(Hash160(ownerPub[:]))

	digest := DoubleSHA256([]byte("message"))
	sig := attacker.Sign(digest)
	attackerPub := attacker.PublicKeyCompressed()
	scriptSig := BuildScriptSig(sig, attackerPub)

	ok, err := VerifyP2PKH(scriptSig, scriptPubKey, digest)
	if err != nil {
		t.Fatalf("VerifyP2PKH: %v", err)
	}
	if ok {
		t.Fatal("expected verification to fail for mismatched pubkey hash")
	}
}

func TestVerifyP2PKH_BadSignatureFailsCleanly(t *testing.T) {
	kp, err := keys.Generate()
	if err != nil {
		t.Fatalf("keys.Generate: %v", err)
	}
	pub := kp.PublicKeyCompressed()
	scriptPubKey := P2PKHScript(Hash160(pub[:]))

	digest := DoubleSHA256([]byte("message"))
	sig := kp.Sign(digest)
	sig[len(sig)-1] ^= 0xFF // corrupt signature bytes, keep it a different digest's sig shape
	scriptSig := BuildScriptSig(sig, pub)

	ok, _ := VerifyP2PKH(scriptSig, scriptPubKey, digest)
	if ok {
		t.Fatal("expected corrupted signature to fail verification")
	}
}

func TestParseScriptSig_RejectsTruncated(t *testing.T) {
	if _, _, err := ParseScriptSig([]byte{5, 1, 2}); err == nil {
		t.Fatal("expected MalformedScript error for truncated scriptSig")
	}
}
