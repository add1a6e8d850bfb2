package consensus

// Serialize encodes h into the exact 80-byte wire layout.
func (h BlockHeader) Serialize() []byte {
	out := make([]byte, 0, HeaderBytes)
	out = appendU32LE(out, h.Version)
	out = append(out, h.PrevBlockHash[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = appendU32LE(out, h.Timestamp)
	out = appendU32LE(out, h.Bits)
	out = appendU32LE(out, h.Nonce)
	return out
}

// DeserializeBlockHeader decodes an 80-byte header. It fails with
// MalformedInput if b is short or there is trailing data.
func DeserializeBlockHeader(b []byte) (BlockHeader, error) {
	if len(b) != HeaderBytes {
		return BlockHeader{}, newErr(CodeMalformedInput, "header: expected %d bytes, got %d", HeaderBytes, len(b))
	}
	c := newCursor(b)
	var h BlockHeader
	var err error
	if h.Version, err = c.readU32LE(); err != nil {
		return BlockHeader{}, err
	}
	if h.PrevBlockHash, err = c.readHash256(); err != nil {
		return BlockHeader{}, err
	}
	if h.MerkleRoot, err = c.readHash256(); err != nil {
		return BlockHeader{}, err
	}
	if h.Timestamp, err = c.readU32LE(); err != nil {
		return BlockHeader{}, err
	}
	if h.Bits, err = c.readU32LE(); err != nil {
		return BlockHeader{}, err
	}
	if h.Nonce, err = c.readU32LE(); err != nil {
		return BlockHeader{}, err
	}
	return h, nil
}

// Serialize encodes tx into its exact wire layout.
func (tx *Transaction) Serialize() []byte {
	out := make([]byte, 0, 64)
	out = appendU32LE(out, tx.Version)
	out = AppendVarInt(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = append(out, in.PrevTxHash[:]...)
		out = appendU32LE(out, in.PrevIndex)
		out = AppendVarInt(out, uint64(len(in.ScriptSig)))
		out = append(out, in.ScriptSig...)
		out = appendU32LE(out, in.Sequence)
	}
	out = AppendVarInt(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		out = appendU64LE(out, o.Value)
		out = AppendVarInt(out, uint64(len(o.ScriptPubKey)))
		out = append(out, o.ScriptPubKey...)
	}
	out = appendU32LE(out, tx.LockTime)
	return out
}

// DeserializeTransaction decodes a transaction from b, reading exactly one
// transaction's worth of bytes from the front; it returns the parsed
// transaction and the number of bytes consumed.
func DeserializeTransaction(b []byte) (Transaction, int, error) {
	c := newCursor(b)
	var tx Transaction
	var err error
	if tx.Version, err = c.readU32LE(); err != nil {
		return Transaction{}, 0, err
	}

	inCount, err := c.readVarInt()
	if err != nil {
		return Transaction{}, 0, err
	}
	tx.Inputs = make([]TxInput, 0, inCount)
	for i := uint64(0); i < inCount; i++ {
		var in TxInput
		if in.PrevTxHash, err = c.readHash256(); err != nil {
			return Transaction{}, 0, err
		}
		if in.PrevIndex, err = c.readU32LE(); err != nil {
			return Transaction{}, 0, err
		}
		scriptSig, err := c.readVarBytes()
		if err != nil {
			return Transaction{}, 0, err
		}
		in.ScriptSig = append([]byte(nil), scriptSig...)
		if in.Sequence, err = c.readU32LE(); err != nil {
			return Transaction{}, 0, err
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	outCount, err := c.readVarInt()
	if err != nil {
		return Transaction{}, 0, err
	}
	tx.Outputs = make([]TxOutput, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		var o TxOutput
		if o.Value, err = c.readU64LE(); err != nil {
			return Transaction{}, 0, err
		}
		scriptPubKey, err := c.readVarBytes()
		if err != nil {
			return Transaction{}, 0, err
		}
		o.ScriptPubKey = append([]byte(nil), scriptPubKey...)
		tx.Outputs = append(tx.Outputs, o)
	}

	if tx.LockTime, err = c.readU32LE(); err != nil {
		return Transaction{}, 0, err
	}

	return tx, c.pos, nil
}

// DeserializeTransactionExact decodes b as a single transaction and requires
// that every byte of b was consumed.
func DeserializeTransactionExact(b []byte) (Transaction, error) {
	tx, consumed, err := DeserializeTransaction(b)
	if err != nil {
		return Transaction{}, err
	}
	if consumed != len(b) {
		return Transaction{}, newErr(CodeMalformedInput, "transaction: %d trailing bytes", len(b)-consumed)
	}
	return tx, nil
}

// Serialize encodes b into header-bytes + VarInt tx count + each transaction.
func (b *Block) Serialize() []byte {
	out := make([]byte, 0, HeaderBytes+len(b.Transactions)*64)
	out = append(out, b.Header.Serialize()...)
	out = AppendVarInt(out, uint64(len(b.Transactions)))
	for i := range b.Transactions {
		out = append(out, b.Transactions[i].Serialize()...)
	}
	return out
}

// DeserializeBlock decodes a block from its full wire representation,
// requiring every byte to be consumed.
func DeserializeBlock(raw []byte) (Block, error) {
	if len(raw) < HeaderBytes {
		return Block{}, newErr(CodeMalformedInput, "block: truncated header")
	}
	header, err := DeserializeBlockHeader(raw[:HeaderBytes])
	if err != nil {
		return Block{}, err
	}
	rest := raw[HeaderBytes:]
	txCount, n, err := DecodeVarInt(rest)
	if err != nil {
		return Block{}, err
	}
	rest = rest[n:]

	txs := make([]Transaction, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx, consumed, err := DeserializeTransaction(rest)
		if err != nil {
			return Block{}, err
		}
		txs = append(txs, tx)
		rest = rest[consumed:]
	}
	if len(rest) != 0 {
		return Block{}, newErr(CodeMalformedInput, "block: %d trailing bytes", len(rest))
	}
	return Block{Header: header, Transactions: txs}, nil
}

// Serialize encodes an outpoint into its exact 36-byte on-disk key:
// txid || vout_LE.
func (o OutPoint) Serialize() []byte {
	out := make([]byte, 0, 36)
	out = append(out, o.TxID[:]...)
	out = appendU32LE(out, o.Vout)
	return out
}

// DeserializeOutPoint decodes a 36-byte outpoint key.
func DeserializeOutPoint(b []byte) (OutPoint, error) {
	if len(b) != 36 {
		return OutPoint{}, newErr(CodeMalformedInput, "outpoint: expected 36 bytes, got %d", len(b))
	}
	c := newCursor(b)
	var o OutPoint
	var err error
	if o.TxID, err = c.readHash256(); err != nil {
		return OutPoint{}, err
	}
	if o.Vout, err = c.readU32LE(); err != nil {
		return OutPoint{}, err
	}
	return o, nil
}

// Serialize encodes a UTXO record as serialize(output) || height_LE(4) ||
// coinbase_flag(1).
func (u UTXO) Serialize() []byte {
	out := make([]byte, 0, 16+len(u.Output.ScriptPubKey))
	out = appendU64LE(out, u.Output.Value)
	out = AppendVarInt(out, uint64(len(u.Output.ScriptPubKey)))
	out = append(out, u.Output.ScriptPubKey...)
	out = appendU32LE(out, u.Height)
	if u.IsCoinbase {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	return out
}

// DeserializeUTXO decodes a UTXO record, requiring every byte of b to be
// consumed.
func DeserializeUTXO(b []byte) (UTXO, error) {
	c := newCursor(b)
	var u UTXO
	var err error
	if u.Output.Value, err = c.readU64LE(); err != nil {
		return UTXO{}, err
	}
	scriptPubKey, err := c.readVarBytes()
	if err != nil {
		return UTXO{}, err
	}
	u.Output.ScriptPubKey = append([]byte(nil), scriptPubKey...)
	if u.Height, err = c.readU32LE(); err != nil {
		return UTXO{}, err
	}
	flag, err := c.readExact(1)
	if err != nil {
		return UTXO{}, err
	}
	u.IsCoinbase = flag[0] != 0
	if c.remaining() != 0 {
		return UTXO{}, newErr(CodeMalformedInput, "utxo: %d trailing bytes", c.remaining())
	}
	return u, nil
}
