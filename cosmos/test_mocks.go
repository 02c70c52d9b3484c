package cosmos

import (
	"context"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
)

type GravityQueryMock struct {
	mock.Mock
}

var _ IGravityQuery = (*GravityQueryMock)(nil)

func (m *GravityQueryMock) GetChainStatus(ctx context.Context) (ChainStatus, error) {
	args := m.Called(ctx)

	arg0, _ := args.Get(0).(ChainStatus)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetGravityParams(ctx context.Context) (*GravityParams, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*GravityParams)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetOldestUnsignedValsets(
	ctx context.Context, orchestratorAddress string,
) ([]*Valset, error) {
	args := m.Called(ctx, orchestratorAddress)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]*Valset)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetOldestUnsignedTransactionBatches(
	ctx context.Context, orchestratorAddress string,
) ([]*TransactionBatch, error) {
	args := m.Called(ctx, orchestratorAddress)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]*TransactionBatch)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetOldestUnsignedLogicCalls(
	ctx context.Context, orchestratorAddress string,
) ([]*LogicCall, error) {
	args := m.Called(ctx, orchestratorAddress)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]*LogicCall)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetPendingBatchFees(ctx context.Context) ([]BatchFee, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]BatchFee)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetERC20ToDenom(
	ctx context.Context, token ethcommon.Address,
) (string, error) {
	args := m.Called(ctx, token)

	arg0, _ := args.Get(0).(string)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetDelegateKeysByEthAddress(
	ctx context.Context, ethAddress ethcommon.Address,
) (*DelegateKeys, error) {
	args := m.Called(ctx, ethAddress)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*DelegateKeys)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetDelegateKeysByOrchestratorAddress(
	ctx context.Context, orchestratorAddress string,
) (*DelegateKeys, error) {
	args := m.Called(ctx, orchestratorAddress)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*DelegateKeys)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetAccountBalances(
	ctx context.Context, address string,
) ([]common.Fee, error) {
	args := m.Called(ctx, address)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]common.Fee)

	return arg0, args.Error(1)
}

func (m *GravityQueryMock) GetAccountInfo(ctx context.Context, address string) error {
	return m.Called(ctx, address).Error(0)
}

type GravityBroadcastMock struct {
	mock.Mock
}

var _ IGravityBroadcast = (*GravityBroadcastMock)(nil)

func (m *GravityBroadcastMock) SendValsetConfirms(
	ctx context.Context, gravityID string, fee common.Fee, valsets []*Valset,
) error {
	return m.Called(ctx, gravityID, fee, valsets).Error(0)
}

func (m *GravityBroadcastMock) SendBatchConfirm(
	ctx context.Context, gravityID string, fee common.Fee, batches []*TransactionBatch,
) error {
	return m.Called(ctx, gravityID, fee, batches).Error(0)
}

func (m *GravityBroadcastMock) SendLogicCallConfirm(
	ctx context.Context, gravityID string, fee common.Fee, calls []*LogicCall,
) error {
	return m.Called(ctx, gravityID, fee, calls).Error(0)
}

func (m *GravityBroadcastMock) SendRequestBatch(
	ctx context.Context, denom string, fee *common.Fee,
) error {
	return m.Called(ctx, denom, fee).Error(0)
}
