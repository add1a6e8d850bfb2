package consensus

// genesisCoinbaseText is embedded in the genesis coinbase input's scriptSig,
// unparsed and unverified, exactly as upstream embeds its own launch-day
// headline.
const genesisCoinbaseText = "The Times 03/Jan/2009 Chancellor on brink of second bailout for banks"

// genesisReward is the genesis coinbase output value in satoshis.
const genesisReward = 5_000_000_000

// genesisTimestamp, genesisBits and genesisNonce are fixed header fields.
// genesisNonce is a constant, not a search result: at genesisBits almost
// every hash meets the target, and MineScalar on this header returns nonce 0.
const (
	genesisTimestamp = 1_231_006_505
	genesisBits      = 0x20FFFFFF
	genesisNonce     = 2
)

// NewGenesisBlock constructs the single hard-coded genesis block: one
// coinbase transaction paying genesisReward to an empty (unspendable)
// scriptPubKey, with a pre-mined nonce.
func NewGenesisBlock() Block {
	coinbaseTx := Transaction{
		Version: 1,
		Inputs: []TxInput{
			{
				PrevTxHash: Hash256Zero,
				PrevIndex:  CoinbasePrevIndex,
				ScriptSig:  []byte(genesisCoinbaseText),
				Sequence:   0xFFFFFFFF,
			},
		},
		Outputs: []TxOutput{
			{
				Value:        genesisReward,
				ScriptPubKey: nil,
			},
		},
		LockTime: 0,
	}

	header := BlockHeader{
		Version:       1,
		PrevBlockHash: Hash256Zero,
		MerkleRoot:    MerkleRoot([]Hash256{coinbaseTx.TXID()}),
		Timestamp:     genesisTimestamp,
		Bits:          genesisBits,
		Nonce:         genesisNonce,
	}

	return Block{Header: header, Transactions: []Transaction{coinbaseTx}}
}
