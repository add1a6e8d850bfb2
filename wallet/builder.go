package wallet

import (
	"fmt"

	"github.com/btcgo-edu/btcgo/consensus"
	"github.com/btcgo-edu/btcgo/storage"
)

// Build assembles, selects coins for, and signs a transaction sending
// amount satoshis from the keystore's from address to to, paying fee:
//  1. resolve from's scriptPubKey
//  2. fetch UTXOs locked to that script
//  3. accumulate UTXOs in iteration order until the running total covers
//     amount+fee, failing InsufficientFundsError otherwise
//  4. build inputs referencing the selected outpoints with empty scriptSigs
//  5. build the payment output and, if there is a positive remainder, a
//     change output back to from
//  6. sign the TXID (computed with empty scriptSigs) once and install the
//     same scriptSig into every selected input
func Build(db *storage.DB, ks *Keystore, from, to string, amount, fee uint64) (*consensus.Transaction, error) {
	kp, ok := ks.Get(from)
	if !ok {
		return nil, fmt.Errorf("wallet: unknown address %q", from)
	}
	fromScript, err := ScriptForAddress(from)
	if err != nil {
		return nil, err
	}
	toScript, err := ScriptForAddress(to)
	if err != nil {
		return nil, err
	}

	candidates, err := db.GetUTXOsForScript(fromScript)
	if err != nil {
		return nil, fmt.Errorf("wallet: list utxos: %w", err)
	}

	need := amount + fee
	var total uint64
	var selected []storage.ScriptUTXO
	for _, c := range candidates {
		selected = append(selected, c)
		total += c.UTXO.Output.Value
		if total >= need {
			break
		}
	}
	if total < need {
		return nil, &InsufficientFundsError{Have: total, Need: need}
	}

	inputs := make([]consensus.TxInput, 0, len(selected))
	for _, s := range selected {
		inputs = append(inputs, consensus.TxInput{
			PrevTxHash: s.Outpoint.TxID,
			PrevIndex:  s.Outpoint.Vout,
			ScriptSig:  nil,
			Sequence:   0xFFFFFFFF,
		})
	}

	outputs := []consensus.TxOutput{
		{Value: amount, ScriptPubKey: toScript},
	}
	change := total - amount - fee
	if change > 0 {
		outputs = append(outputs, consensus.TxOutput{Value: change, ScriptPubKey: fromScript})
	}

	tx := &consensus.Transaction{
		Version:  1,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: 0,
	}

	digest := tx.TXID()
	sig := kp.Sign(digest)
	pub := kp.PublicKeyCompressed()
	scriptSig := consensus.BuildScriptSig(sig, pub)
	for i := range tx.Inputs {
		tx.Inputs[i].ScriptSig = scriptSig
	}

	return tx, nil
}
