package cosmos

import (
	"math/big"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

type ChainState int

const (
	ChainStateWaitingToStart ChainState = iota
	ChainStateSyncing
	ChainStateMoving
)

func (s ChainState) String() string {
	switch s {
	case ChainStateWaitingToStart:
		return "waiting_to_start"
	case ChainStateSyncing:
		return "syncing"
	case ChainStateMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// ChainStatus is the node's view of its own sync state. BlockHeight is only
// meaningful when State is ChainStateMoving.
type ChainStatus struct {
	State       ChainState
	BlockHeight uint64
}

// GravityParams are the bridge module's governance parameters. Governance can
// change any of these at any height, so callers must re-fetch them instead of
// caching across ticks.
type GravityParams struct {
	GravityID              string
	SignedValsetsWindow    uint64
	SignedBatchesWindow    uint64
	SignedLogicCallsWindow uint64
}

type ValsetMember struct {
	Power      uint64
	EthAddress ethcommon.Address
}

// Valset is the bridge's view of the validator set at a given nonce, awaiting
// threshold co-signatures before it can be submitted to the foreign chain.
type Valset struct {
	Nonce        uint64
	Members      []ValsetMember
	RewardAmount *big.Int
	RewardToken  *ethcommon.Address
}

// TransactionBatch is a bundle of outbound transfers for a single token
// contract awaiting co-signature.
type TransactionBatch struct {
	Nonce         uint64
	TokenContract ethcommon.Address
	BatchTimeout  uint64
	TotalFee      *big.Int
}

// LogicCall is an arbitrary bridge-contract invocation awaiting co-signature.
// Calls are identified by an invalidation id/nonce pair rather than a plain
// nonce.
type LogicCall struct {
	InvalidationID    []byte
	InvalidationNonce uint64
	Timeout           uint64
	Payload           []byte
}

// BatchFee is a transient quote of the total fees waiting in the unbatched tx
// pool for one token. It is fetched fresh on every relayer pass and never
// persisted.
type BatchFee struct {
	Token     ethcommon.Address
	TotalFees *big.Int
	TxCount   uint64
}

// DelegateKeys is the on-chain registration tying a validator to the
// orchestrator and Ethereum keys signing on its behalf.
type DelegateKeys struct {
	ValidatorAddress    string
	OrchestratorAddress string
	EthAddress          string
}
