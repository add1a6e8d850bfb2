// Package miner searches a block header's nonce space for a value whose
// header hash meets the header's own proof-of-work target.
package miner

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/btcgo-edu/btcgo/consensus"
)

// batchSize mirrors the canonical data-parallel dispatch size of 256 threads
// times 4096 groups: 1,048,576 nonces per batch.
const batchSize = 256 * 4096

// sweepWidth bounds the CPU sweep performed around a claimed nonce that
// fails CPU re-verification, closing out a lost claim race within a batch.
const sweepWidth = 256

// Result is the outcome of a mining attempt: success, nonce, hash,
// attempt count, and wall-clock duration.
type Result struct {
	Success  bool
	Nonce    uint32
	Hash     consensus.Hash256
	Attempts uint64
	Duration time.Duration
}

// HashRate returns attempts per second, or 0 if duration is zero.
func (r Result) HashRate() float64 {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Attempts) / secs
}

// MineScalar searches the nonce space on a single goroutine, delegating to
// the consensus package's reference scalar search.
func MineScalar(header consensus.BlockHeader) Result {
	start := time.Now()
	nonce, ok, err := consensus.MineScalar(header)
	elapsed := time.Since(start)
	if err != nil || !ok {
		return Result{Success: false, Duration: elapsed}
	}
	header.Nonce = nonce
	return Result{
		Success:  true,
		Nonce:    nonce,
		Hash:     header.Hash(),
		Attempts: uint64(nonce) + 1,
		Duration: elapsed,
	}
}

// MineParallel searches the nonce space using a pool of worker goroutines,
// one per available CPU, standing in for a data-parallel compute kernel:
// each batch dispatches workers over a disjoint nonce range, a shared
// atomic flag lets the first winner within a batch claim the result, the
// host re-verifies the claim on a single goroutine,
// and a bounded sweep around a false-positive claim absorbs races before the
// next batch is dispatched. It falls back to MineScalar if the runtime
// reports no usable workers.
func MineParallel(logger *zap.Logger, header consensus.BlockHeader) Result {
	workers := runtime.NumCPU()
	if workers < 1 {
		logger.Warn("parallel miner: no workers available, falling back to scalar search")
		return MineScalar(header)
	}

	target, err := consensus.TargetFromBits(header.Bits)
	if err != nil {
		return Result{Success: false}
	}
	_ = target // unused here; workers check each nonce with MeetsTarget and the host re-verifies with CheckProofOfWork

	start := time.Now()
	var totalAttempts uint64
	startNonce := uint32(0)

	for {
		remaining := uint64(^uint32(0)) - uint64(startNonce) + 1
		thisBatch := uint64(batchSize)
		if remaining < thisBatch {
			thisBatch = remaining
		}

		found, foundNonce := dispatchBatch(header, startNonce, uint32(thisBatch), workers)
		totalAttempts += thisBatch

		if found {
			candidate := header
			candidate.Nonce = foundNonce
			if err := consensus.CheckProofOfWork(candidate); err == nil {
				return Result{
					Success:  true,
					Nonce:    foundNonce,
					Hash:     candidate.Hash(),
					Attempts: totalAttempts,
					Duration: time.Since(start),
				}
			}
			// Claim lost the atomic race to a bad write; sweep a small
			// window on the CPU before moving to the next batch.
			for offset := uint32(1); offset <= sweepWidth; offset++ {
				candidate.Nonce = foundNonce + offset
				if err := consensus.CheckProofOfWork(candidate); err == nil {
					return Result{
						Success:  true,
						Nonce:    candidate.Nonce,
						Hash:     candidate.Hash(),
						Attempts: totalAttempts + uint64(offset),
						Duration: time.Since(start),
					}
				}
			}
		}

		next, overflowed := addOverflows(startNonce, uint32(thisBatch))
		if overflowed {
			logger.Info("parallel miner: nonce space exhausted",
				zap.Uint64("attempts", totalAttempts),
				zap.Duration("duration", time.Since(start)),
			)
			return Result{Success: false, Attempts: totalAttempts, Duration: time.Since(start)}
		}
		startNonce = next
	}
}

// dispatchBatch runs one batch of count nonces starting at startNonce across
// workers goroutines, each striding by workers, and returns the first
// claimed (found, nonce) pair written by an atomic compare-and-swap. Only
// the first winner within the batch is observed, matching the
// write-if-found-is-still-zero semantics of the original kernel.
func dispatchBatch(header consensus.BlockHeader, startNonce uint32, count uint32, workers int) (bool, uint32) {
	var found atomic.Bool
	var claimedNonce atomic.Uint32

	var wg sync.WaitGroup
	for lane := 0; lane < workers; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			candidate := header
			for offset := uint32(lane); offset < count; offset += uint32(workers) {
				if found.Load() {
					return
				}
				candidate.Nonce = startNonce + offset
				if ok, _ := consensus.MeetsTarget(candidate.Hash(), header.Bits); ok {
					if found.CompareAndSwap(false, true) {
						claimedNonce.Store(candidate.Nonce)
					}
					return
				}
			}
		}(lane)
	}
	wg.Wait()

	return found.Load(), claimedNonce.Load()
}

// addOverflows adds b to a, reporting whether the sum overflows uint32.
func addOverflows(a, b uint32) (uint32, bool) {
	sum := a + b
	return sum, sum < a
}
