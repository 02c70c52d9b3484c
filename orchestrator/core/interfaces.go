package core

import (
	"context"
	"math/big"
)

// Task is a long-running component driven by the supervisor. Start blocks
// until the task fails or ctx is canceled.
type Task interface {
	Start(ctx context.Context) error
}

// EventsChecker scans the Ethereum chain for bridge events in the range
// (lastCheckedBlock, latestBlock] and submits the corresponding attestation
// claims to the Cosmos chain. It knows the bridge contract address.
type EventsChecker interface {
	CheckForEvents(ctx context.Context, lastCheckedBlock, latestBlock *big.Int) (CheckedNonces, error)
}

// CheckpointQuerier re-derives the oracle checkpoint from chain state: the
// last Ethereum block whose events this validator has already attested.
// Implementations scan backwards from the chain head and should use an
// extended RPC timeout, the scan can cover a long block range.
type CheckpointQuerier interface {
	GetLastCheckedBlock(ctx context.Context) (*big.Int, error)
}
