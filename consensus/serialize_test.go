package consensus

import "testing"

func sampleHeader() BlockHeader {
	return BlockHeader{
		Version:       1,
		PrevBlockHash: DoubleSHA256([]byte("prev")),
		MerkleRoot:    DoubleSHA256([]byte("merkle")),
		Timestamp:     1700000000,
		Bits:          0x207fffff,
		Nonce:         42,
	}
}

func TestBlockHeader_SerializeRoundTrip(t *testing.T) {
	h := sampleHeader()
	raw := h.Serialize()
	if len(raw) != HeaderBytes {
		t.Fatalf("serialized header length = %d, want %d", len(raw), HeaderBytes)
	}
	back, err := DeserializeBlockHeader(raw)
	if err != nil {
		t.Fatalf("DeserializeBlockHeader: %v", err)
	}
	if back != h {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, h)
	}
}

func TestBlockHeader_Deserialize_WrongLength(t *testing.T) {
	if _, err := DeserializeBlockHeader(make([]byte, 79)); err == nil {
		t.Fatal("expected error for short header")
	}
}

func sampleTransaction() Transaction {
	return Transaction{
		Version: 1,
		Inputs: []TxInput{
			{
				PrevTxHash: DoubleSHA256([]byte("txid")),
				PrevIndex:  0,
				ScriptSig:  []byte{0x01, 0x02, 0x03},
				Sequence:   0xFFFFFFFF,
			},
		},
		Outputs: []TxOutput{
			{Value: 5000000000, ScriptPubKey: P2PKHScript(Hash160([]byte("pubkey")))},
		},
		LockTime: 0,
	}
}

func TestTransaction_SerializeRoundTrip(t *testing.T) {
	tx := sampleTransaction()
	raw := tx.Serialize()
	back, err := DeserializeTransactionExact(raw)
	if err != nil {
		t.Fatalf("DeserializeTransactionExact: %v", err)
	}
	if back.TXID() != tx.TXID() {
		t.Fatal("round-tripped transaction has a different TXID")
	}
}

func TestTransaction_DeserializeExact_RejectsTrailingBytes(t *testing.T) {
	tx := sampleTransaction()
	raw := append(tx.Serialize(), 0x00)
	if _, err := DeserializeTransactionExact(raw); err == nil {
		t.Fatal("expected error for trailing bytes")
	}
}

func TestBlock_SerializeRoundTrip(t *testing.T) {
	tx := sampleTransaction()
	b := Block{
		Header:       sampleHeader(),
		Transactions: []Transaction{tx, tx},
	}
	raw := b.Serialize()
	back, err := DeserializeBlock(raw)
	if err != nil {
		t.Fatalf("DeserializeBlock: %v", err)
	}
	if len(back.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(back.Transactions))
	}
	if back.Header != b.Header {
		t.Fatal("round-tripped header mismatch")
	}
}

func TestOutPoint_SerializeRoundTrip(t *testing.T) {
	o := OutPoint{TxID: DoubleSHA256([]byte("txid")), Vout: 7}
	raw := o.Serialize()
	if len(raw) != 36 {
		t.Fatalf("outpoint key length = %d, want 36", len(raw))
	}
	back, err := DeserializeOutPoint(raw)
	if err != nil {
		t.Fatalf("DeserializeOutPoint: %v", err)
	}
	if back != o {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, o)
	}
}

func TestUTXO_SerializeRoundTrip(t *testing.T) {
	u := UTXO{
		Output:     TxOutput{Value: 1234, ScriptPubKey: P2PKHScript(Hash160([]byte("x")))},
		Height:     100,
		IsCoinbase: true,
	}
	raw := u.Serialize()
	back, err := DeserializeUTXO(raw)
	if err != nil {
		t.Fatalf("DeserializeUTXO: %v", err)
	}
	if back.Output.Value != u.Output.Value || back.Height != u.Height || back.IsCoinbase != u.IsCoinbase {
		t.Fatalf("round trip mismatch: got %+v, want %+v", back, u)
	}
}
