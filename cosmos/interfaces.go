package cosmos

import (
	"context"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
)

// IGravityQuery is the read side of the gravity module. Concrete
// implementations wrap the proto-generated query client bound to an
// established gRPC connection.
type IGravityQuery interface {
	GetChainStatus(ctx context.Context) (ChainStatus, error)
	GetGravityParams(ctx context.Context) (*GravityParams, error)
	GetOldestUnsignedValsets(ctx context.Context, orchestratorAddress string) ([]*Valset, error)
	GetOldestUnsignedTransactionBatches(ctx context.Context, orchestratorAddress string) ([]*TransactionBatch, error)
	GetOldestUnsignedLogicCalls(ctx context.Context, orchestratorAddress string) ([]*LogicCall, error)
	GetPendingBatchFees(ctx context.Context) ([]BatchFee, error)
	GetERC20ToDenom(ctx context.Context, token ethcommon.Address) (string, error)
	GetDelegateKeysByEthAddress(ctx context.Context, ethAddress ethcommon.Address) (*DelegateKeys, error)
	GetDelegateKeysByOrchestratorAddress(ctx context.Context, orchestratorAddress string) (*DelegateKeys, error)
	GetAccountBalances(ctx context.Context, address string) ([]common.Fee, error)
	// GetAccountInfo returns ErrNoTokens when the account exists on chain but
	// holds no tokens of any kind.
	GetAccountInfo(ctx context.Context, address string) error
}

// IGravityBroadcast is the write side of the gravity module: confirmation and
// batch-request submissions signed with the orchestrator's delegate keys.
// Submitting a confirmation for an already-signed artifact is a no-op on the
// chain side, so duplicate submissions are tolerated.
type IGravityBroadcast interface {
	SendValsetConfirms(ctx context.Context, gravityID string, fee common.Fee, valsets []*Valset) error
	SendBatchConfirm(ctx context.Context, gravityID string, fee common.Fee, batches []*TransactionBatch) error
	SendLogicCallConfirm(ctx context.Context, gravityID string, fee common.Fee, calls []*LogicCall) error
	// SendRequestBatch asks the chain to build a batch for denom. A nil fee
	// means pay nothing.
	SendRequestBatch(ctx context.Context, denom string, fee *common.Fee) error
}
