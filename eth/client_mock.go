package eth

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
)

type EthChainClientMock struct {
	mock.Mock
}

var _ IEthChainClient = (*EthChainClientMock)(nil)

func (m *EthChainClientMock) BlockNumber(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*big.Int)

	return arg0, args.Error(1)
}

func (m *EthChainClientMock) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*big.Int)

	return arg0, args.Error(1)
}

func (m *EthChainClientMock) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	args := m.Called(ctx, addr)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*big.Int)

	return arg0, args.Error(1)
}

func (m *EthChainClientMock) URL() string {
	args := m.Called()

	arg0, _ := args.Get(0).(string)

	return arg0
}

func (m *EthChainClientMock) Close() {
	m.Called()
}

type TokenPriceSourceMock struct {
	mock.Mock
}

var _ ITokenPriceSource = (*TokenPriceSourceMock)(nil)

func (m *TokenPriceSourceMock) GetWethPrice(
	ctx context.Context, token common.Address, amount *big.Int, caller common.Address,
) (*big.Int, error) {
	args := m.Called(ctx, token, amount, caller)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*big.Int)

	return arg0, args.Error(1)
}
