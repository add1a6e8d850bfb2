package wallet

import "github.com/btcgo-edu/btcgo/storage"

// Balance sums output.value over every UTXO locked to address's derived
// P2PKH script.
func Balance(db *storage.DB, address string) (uint64, error) {
	script, err := ScriptForAddress(address)
	if err != nil {
		return 0, err
	}
	return db.GetBalance(script)
}
