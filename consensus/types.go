package consensus

// HeaderBytes is the exact serialized size of a BlockHeader.
const HeaderBytes = 80

// CoinbasePrevIndex is the prev_index value that marks a coinbase input.
const CoinbasePrevIndex = 0xFFFFFFFF

// MaxMoney is the maximum representable output value in satoshis
// (21,000,000 * 10^8), enforced by mempool acceptance policy.
const MaxMoney = 21_000_000 * 100_000_000

// BlockHeader is the 80-byte block header.
type BlockHeader struct {
	Version       uint32
	PrevBlockHash Hash256
	MerkleRoot    Hash256
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

// IsGenesis reports whether h has an all-zero prev-block-hash.
func (h BlockHeader) IsGenesis() bool {
	return h.PrevBlockHash.IsZero()
}

// Hash computes the block hash: hash256 of the serialized header, with no
// byte reversal in the hashing pipeline itself.
func (h BlockHeader) Hash() Hash256 {
	return DoubleSHA256(h.Serialize())
}

// OutPoint references a specific transaction output: (txid, vout).
type OutPoint struct {
	TxID Hash256
	Vout uint32
}

// TxInput is a transaction input: the outpoint it spends, its unlocking
// script, and its sequence number.
type TxInput struct {
	PrevTxHash Hash256
	PrevIndex  uint32
	ScriptSig  []byte
	Sequence   uint32
}

// TxOutput is a transaction output: its value in satoshis and its locking
// script.
type TxOutput struct {
	Value        uint64
	ScriptPubKey []byte
}

// Transaction is the transaction wire format.
type Transaction struct {
	Version  uint32
	Inputs   []TxInput
	Outputs  []TxOutput
	LockTime uint32
}

// IsCoinbase reports whether tx has the single-input, null-prevout shape of
// a coinbase transaction.
func (tx *Transaction) IsCoinbase() bool {
	if len(tx.Inputs) != 1 {
		return false
	}
	in := tx.Inputs[0]
	return in.PrevTxHash.IsZero() && in.PrevIndex == CoinbasePrevIndex
}

// TXID is the double-SHA-256 hash of the transaction's full serialization.
func (tx *Transaction) TXID() Hash256 {
	return DoubleSHA256(tx.Serialize())
}

// Block is a header followed by its transactions.
type Block struct {
	Header       BlockHeader
	Transactions []Transaction
}

// Hash returns the block's header hash.
func (b *Block) Hash() Hash256 {
	return b.Header.Hash()
}

// IsGenesis reports whether b's header has an all-zero prev-block-hash.
func (b *Block) IsGenesis() bool {
	return b.Header.IsGenesis()
}

// UTXO is the on-disk unspent-output record: the output itself, the height
// at which it was created, and whether its transaction was a coinbase.
type UTXO struct {
	Output     TxOutput
	Height     uint32
	IsCoinbase bool
}
