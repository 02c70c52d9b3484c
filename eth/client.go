package eth

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hashicorp/go-hclog"
)

const defaultCallTimeout = 10 * time.Second

type IEthChainClient interface {
	BlockNumber(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error)
	URL() string
	Close()
}

// ITokenPriceSource quotes an ERC20 amount in the chain's gas currency
// (WETH), usually through an on-chain DEX pool simulated from caller's
// address. Implementations live with the contract bindings.
type ITokenPriceSource interface {
	GetWethPrice(ctx context.Context, token common.Address, amount *big.Int, caller common.Address) (*big.Int, error)
}

type EthChainClientImpl struct {
	url     string
	timeout time.Duration
	client  *ethclient.Client
	logger  hclog.Logger
}

var _ IEthChainClient = (*EthChainClientImpl)(nil)

func NewEthChainClient(
	url string, timeout time.Duration, logger hclog.Logger,
) (*EthChainClientImpl, error) {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}

	client, err := ethclient.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial eth rpc %s: %w", url, err)
	}

	return &EthChainClientImpl{
		url:     url,
		timeout: timeout,
		client:  client,
		logger:  logger,
	}, nil
}

func (e *EthChainClientImpl) BlockNumber(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	blockNumber, err := e.client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve eth block number: %w", err)
	}

	return new(big.Int).SetUint64(blockNumber), nil
}

func (e *EthChainClientImpl) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve eth gas price: %w", err)
	}

	return gasPrice, nil
}

func (e *EthChainClientImpl) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	balance, err := e.client.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve eth balance for %s: %w", addr, err)
	}

	return balance, nil
}

func (e *EthChainClientImpl) URL() string {
	return e.url
}

func (e *EthChainClientImpl) Close() {
	e.client.Close()
}
