package ringct

import (
	"runtime"
	"sync"
)

// BatchVerifier amortizes verification cost across many items.
// Rangeproofs are folded into one weighted multiexponentiation; ring
// signatures, whose challenge chains are inherently sequential, are
// verified concurrently across workers. Verification is pure, so no
// locking is needed beyond distributing the work.
type BatchVerifier struct {
	items []func() error

	rangeCommitments [][]Commitment
	rangeProofs      []*BulletPlusRangeProof
	sigs             []func() error
}

// AddRangeProof queues a rangeproof and its commitments.
func (b *BatchVerifier) AddRangeProof(commitments []Commitment, proof *BulletPlusRangeProof) {
	b.rangeCommitments = append(b.rangeCommitments, commitments)
	b.rangeProofs = append(b.rangeProofs, proof)
	b.items = append(b.items, func() error {
		return VerifyBulletPlus(commitments, proof)
	})
}

// AddMLSAG queues an MLSAG signature check.
func (b *BatchVerifier) AddMLSAG(sig *MLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) {
	check := func() error {
		return VerifyMLSAG(sig, ring, pseudoOut, msg)
	}
	b.sigs = append(b.sigs, check)
	b.items = append(b.items, check)
}

// AddCLSAG queues a CLSAG signature check.
func (b *BatchVerifier) AddCLSAG(sig *CLSAGSignature, ring Ring, pseudoOut Commitment, msg []byte) {
	check := func() error {
		return VerifyCLSAG(sig, ring, pseudoOut, msg)
	}
	b.sigs = append(b.sigs, check)
	b.items = append(b.items, check)
}

// Verify checks every queued item. On success it returns nil having
// done far less work than per-item verification. On failure it falls
// back to verifying items individually and returns a BatchError with
// the per-item outcomes in submission order.
func (b *BatchVerifier) Verify() error {
	ok := true
	if len(b.rangeProofs) > 0 {
		if err := BatchVerifyBulletPlus(b.rangeCommitments, b.rangeProofs); err != nil {
			ok = false
		}
	}
	if ok && !b.verifySigs() {
		ok = false
	}
	if ok {
		return nil
	}

	// Diagnose: re-verify each item on its own.
	batchErr := &BatchError{Items: make([]error, len(b.items))}
	for i, check := range b.items {
		batchErr.Items[i] = check()
	}
	return batchErr
}

func (b *BatchVerifier) verifySigs() bool {
	if len(b.sigs) == 0 {
		return true
	}
	workers := runtime.NumCPU()
	if workers > len(b.sigs) {
		workers = len(b.sigs)
	}

	work := make(chan func() error)
	results := make([]bool, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = true
			for check := range work {
				if check() != nil {
					results[w] = false
				}
			}
		}(w)
	}
	for _, check := range b.sigs {
		work <- check
	}
	close(work)
	wg.Wait()

	for _, ok := range results {
		if !ok {
			return false
		}
	}
	return true
}
