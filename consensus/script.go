package consensus

import (
	"bytes"

	"github.com/btcgo-edu/btcgo/keys"
)

// Fixed P2PKH opcode bytes. This core implements no script engine beyond
// this one template.
const (
	opDup         = 0x76
	opHash160     = 0xA9
	opPush20      = 0x14
	opEqualVerify = 0x88
	opCheckSig    = 0xAC
)

// ScriptPubKeyBytes is the fixed length of a P2PKH locking script.
const ScriptPubKeyBytes = 25

// P2PKHScript builds the 25-byte scriptPubKey template locking to pubkeyHash.
func P2PKHScript(pubkeyHash [20]byte) []byte {
	out := make([]byte, 0, ScriptPubKeyBytes)
	out = append(out, opDup, opHash160, opPush20)
	out = append(out, pubkeyHash[:]...)
	out = append(out, opEqualVerify, opCheckSig)
	return out
}

// ParseP2PKHScript extracts the 20-byte pubkey hash from a scriptPubKey,
// failing with MalformedScript if the opcode bytes don't match the template
// exactly.
func ParseP2PKHScript(script []byte) ([20]byte, error) {
	var hash [20]byte
	if len(script) != ScriptPubKeyBytes {
		return hash, newErr(CodeMalformedScript, "scriptPubKey: expected %d bytes, got %d", ScriptPubKeyBytes, len(script))
	}
	if script[0] != opDup || script[1] != opHash160 || script[2] != opPush20 {
		return hash, newErr(CodeMalformedScript, "scriptPubKey: bad prefix opcodes")
	}
	if script[23] != opEqualVerify || script[24] != opCheckSig {
		return hash, newErr(CodeMalformedScript, "scriptPubKey: bad suffix opcodes")
	}
	copy(hash[:], script[3:23])
	return hash, nil
}

// BuildScriptSig assembles scriptSig = len(sig) || sig || len(pubkey) ||
// pubkey.
func BuildScriptSig(derSig []byte, pubkeyCompressed [keys.CompressedPubKeyBytes]byte) []byte {
	out := make([]byte, 0, 1+len(derSig)+1+len(pubkeyCompressed))
	out = append(out, byte(len(derSig)))
	out = append(out, derSig...)
	out = append(out, byte(len(pubkeyCompressed)))
	out = append(out, pubkeyCompressed[:]...)
	return out
}

// ParseScriptSig splits a scriptSig into its DER signature and compressed
// public key, failing with MalformedScript on any boundary error.
func ParseScriptSig(scriptSig []byte) (sig []byte, pubkey []byte, err error) {
	if len(scriptSig) < 1 {
		return nil, nil, newErr(CodeMalformedScript, "scriptSig: empty")
	}
	sigLen := int(scriptSig[0])
	if len(scriptSig) < 1+sigLen+1 {
		return nil, nil, newErr(CodeMalformedScript, "scriptSig: truncated signature")
	}
	sig = scriptSig[1 : 1+sigLen]
	rest := scriptSig[1+sigLen:]
	pubkeyLen := int(rest[0])
	if len(rest) != 1+pubkeyLen {
		return nil, nil, newErr(CodeMalformedScript, "scriptSig: bad pubkey length")
	}
	pubkey = rest[1:]
	return sig, pubkey, nil
}

// VerifyP2PKH checks a scriptSig against a scriptPubKey and message digest:
//  1. parse scriptSig and scriptPubKey (MalformedScript on boundary errors)
//  2. compare hash160(pubkey) to the embedded hash (false, not an error, on
//     mismatch)
//  3. verify the DER signature against digest (MalformedScript on bad DER,
//     false on a well-formed-but-wrong signature).
func VerifyP2PKH(scriptSig []byte, scriptPubKey []byte, digest [32]byte) (bool, error) {
	sig, pubkey, err := ParseScriptSig(scriptSig)
	if err != nil {
		return false, err
	}
	wantHash, err := ParseP2PKHScript(scriptPubKey)
	if err != nil {
		return false, err
	}
	gotHash := Hash160(pubkey)
	if !bytes.Equal(gotHash[:], wantHash[:]) {
		return false, nil
	}
	ok, err := keys.Verify(pubkey, sig, digest)
	if err != nil {
		return false, newErr(CodeMalformedScript, "scriptSig: %v", err)
	}
	return ok, nil
}
