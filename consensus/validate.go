package consensus

import "time"

// maxFutureDrift bounds how far a header's timestamp may lie beyond the
// validator's own clock.
const maxFutureDrift = 2 * time.Hour

// ValidateHeader checks a header's version and timestamp rules, and its
// proof of work unless it is a genesis header (all-zero prev-block-hash).
func ValidateHeader(h BlockHeader, now time.Time) error {
	if h.Version < 1 {
		return newErr(CodeInvalidVersion, "header version %d is not positive", h.Version)
	}
	if time.Unix(int64(h.Timestamp), 0).After(now.Add(maxFutureDrift)) {
		return newErr(CodeInvalidTimestamp, "header timestamp %d too far in the future", h.Timestamp)
	}
	if !h.IsGenesis() {
		if err := CheckProofOfWork(h); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTransactionStructure checks the structural invariants that apply
// to every transaction regardless of context: non-empty input and output
// lists, and exactly one input for a coinbase.
func ValidateTransactionStructure(tx *Transaction) error {
	if len(tx.Inputs) == 0 || len(tx.Outputs) == 0 {
		return newErr(CodeEmptyTransaction, "transaction has no inputs or outputs")
	}
	if tx.IsCoinbase() && len(tx.Inputs) != 1 {
		return newErr(CodeInvalidCoinbaseInputs, "coinbase transaction must have exactly one input")
	}
	return nil
}

// ValidateBlock checks the full set of block-level structural rules: a
// validated header, at least one transaction, a coinbase as transaction
// zero and nowhere else, a matching Merkle root, and a structurally valid
// transaction set.
func ValidateBlock(b *Block, now time.Time) error {
	if err := ValidateHeader(b.Header, now); err != nil {
		return err
	}
	if len(b.Transactions) == 0 {
		return ErrNoTransactions
	}
	if !b.Transactions[0].IsCoinbase() {
		return ErrMissingCoinbase
	}
	for i := 1; i < len(b.Transactions); i++ {
		if b.Transactions[i].IsCoinbase() {
			return ErrMultipleCoinbase
		}
	}
	for i := range b.Transactions {
		if err := ValidateTransactionStructure(&b.Transactions[i]); err != nil {
			return err
		}
	}

	txids := make([]Hash256, len(b.Transactions))
	for i := range b.Transactions {
		txids[i] = b.Transactions[i].TXID()
	}
	if MerkleRoot(txids) != b.Header.MerkleRoot {
		return ErrInvalidMerkleRoot
	}
	return nil
}

// ValidateMempoolTransaction checks the policy a non-coinbase transaction
// must satisfy before it can be considered for inclusion in a block: it must
// not itself be a coinbase, and its declared output value must not exceed
// MaxMoney.
func ValidateMempoolTransaction(tx *Transaction) error {
	if err := ValidateTransactionStructure(tx); err != nil {
		return err
	}
	if tx.IsCoinbase() {
		return newErr(CodeMalformedInput, "mempool transaction must not be a coinbase")
	}
	var total uint64
	for _, o := range tx.Outputs {
		total += o.Value
		if total > MaxMoney {
			return ErrOutputValueExceedsMax
		}
	}
	return nil
}
