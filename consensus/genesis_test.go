package consensus

import "testing"

func TestNewGenesisBlock_MatchesKnownValues(t *testing.T) {
	b := NewGenesisBlock()

	if !b.IsGenesis() {
		t.Fatal("genesis block should report IsGenesis() = true")
	}
	if len(b.Transactions) != 1 {
		t.Fatalf("genesis block has %d transactions, want 1", len(b.Transactions))
	}
	if b.Header.Timestamp != genesisTimestamp {
		t.Fatalf("timestamp = %d, want %d", b.Header.Timestamp, genesisTimestamp)
	}
	if b.Header.Bits != genesisBits {
		t.Fatalf("bits = %#x, want %#x", b.Header.Bits, genesisBits)
	}
	if b.Header.Nonce != genesisNonce {
		t.Fatalf("nonce = %d, want %d", b.Header.Nonce, genesisNonce)
	}
	if b.Transactions[0].Outputs[0].Value != genesisReward {
		t.Fatalf("coinbase value = %d, want %d", b.Transactions[0].Outputs[0].Value, genesisReward)
	}
}

func TestNewGenesisBlock_SerializeRoundTrip(t *testing.T) {
	b := NewGenesisBlock()
	raw := b.Serialize()
	back, err := DeserializeBlock(raw)
	if err != nil {
		t.Fatalf("DeserializeBlock: %v", err)
	}
	if back.Hash() != b.Hash() {
		t.Fatal("round-tripped genesis block has a different hash")
	}
}
