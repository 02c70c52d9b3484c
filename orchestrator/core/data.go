package core

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// ValidatorIdentity is the pair of delegate addresses the orchestrator signs
// under. Immutable for the process lifetime; the signing keys themselves stay
// with the broadcast client implementation.
type ValidatorIdentity struct {
	OrchestratorAddress string
	EthAddress          ethcommon.Address
}

// CheckedNonces is the result of one event-forwarding pass: the block the
// scan ended on and the highest event nonce observed. The block number is
// accurate unless a governance unhalt vote replayed history in the meantime.
type CheckedNonces struct {
	BlockNumber *big.Int
	EventNonce  *big.Int
}
