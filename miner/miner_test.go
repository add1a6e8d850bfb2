package miner

import (
	"testing"

	"go.uber.org/zap"

	"github.com/btcgo-edu/btcgo/consensus"
)

func easyHeader() consensus.BlockHeader {
	return consensus.BlockHeader{
		Version:       1,
		PrevBlockHash: consensus.Hash256Zero,
		MerkleRoot:    consensus.Hash256Zero,
		Timestamp:     1234567890,
		Bits:          0x207fffff,
		Nonce:         0,
	}
}

func TestMineScalar_FindsValidNonce(t *testing.T) {
	result := MineScalar(easyHeader())
	if !result.Success {
		t.Fatal("expected scalar mining to succeed at an easy target")
	}
	h := easyHeader()
	h.Nonce = result.Nonce
	if h.Hash() != result.Hash {
		t.Fatal("result hash does not match recomputed header hash")
	}
}

func TestMineParallel_FindsValidNonce(t *testing.T) {
	logger := zap.NewNop()
	result := MineParallel(logger, easyHeader())
	if !result.Success {
		t.Fatal("expected parallel mining to succeed at an easy target")
	}
	h := easyHeader()
	h.Nonce = result.Nonce
	if err := consensus.CheckProofOfWork(h); err != nil {
		t.Fatalf("parallel-mined header does not satisfy proof of work: %v", err)
	}
}

func TestResult_HashRate(t *testing.T) {
	r := Result{Attempts: 1000}
	if r.HashRate() != 0 {
		t.Fatal("HashRate with zero duration should be 0")
	}
}
