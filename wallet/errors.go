package wallet

import "fmt"

// InsufficientFundsError reports a coin-selection failure: the selected
// UTXOs could not cover the requested amount plus fee.
type InsufficientFundsError struct {
	Have uint64
	Need uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("wallet: insufficient funds: have %d, need %d", e.Have, e.Need)
}
