package relayer

import (
	"context"
	"math/big"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-hclog"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
	"github.com/Ethernal-Tech/gravity-orchestrator/relayer/core"
	"github.com/Ethernal-Tech/gravity-orchestrator/telemetry"
)

// testGasLimit is the gas amount a batch submission is costed at when
// estimating profitability.
var testGasLimit = big.NewInt(12_000_000)

// BatchRequesterImpl implements the permissionless side of batch creation:
// the chain outsources the profitability check to relayers, which request a
// batch only when relaying it would be worth the gas.
type BatchRequesterImpl struct {
	config      *core.RelayerConfiguration
	ethClient   eth.IEthChainClient
	query       cosmos.IGravityQuery
	broadcast   cosmos.IGravityBroadcast
	priceSource eth.ITokenPriceSource
	ethAddress  ethcommon.Address
	requestFee  common.Fee
	logger      hclog.Logger
}

func NewBatchRequester(
	config *core.RelayerConfiguration,
	ethClient eth.IEthChainClient,
	query cosmos.IGravityQuery,
	broadcast cosmos.IGravityBroadcast,
	priceSource eth.ITokenPriceSource,
	ethAddress ethcommon.Address,
	requestFee common.Fee,
	logger hclog.Logger,
) *BatchRequesterImpl {
	return &BatchRequesterImpl{
		config:      config,
		ethClient:   ethClient,
		query:       query,
		broadcast:   broadcast,
		priceSource: priceSource,
		ethAddress:  ethAddress,
		requestFee:  requestFee,
		logger:      logger,
	}
}

// Start runs RequestBatches on a fixed cadence until ctx is canceled, so the
// requester can serve as the supervisor's relay task.
func (br *BatchRequesterImpl) Start(ctx context.Context) error {
	br.logger.Debug("Batch requester started", "mode", br.config.BatchRequestMode)

	ticker := time.NewTicker(br.config.PullTime())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		br.RequestBatches(ctx)
	}
}

// RequestBatches walks all pending batch-fee quotes once and submits a
// batch-creation request for each quote the configured mode accepts. A
// failure on one quote never blocks the others; a failure to fetch the gas
// price or the quotes aborts the whole pass.
func (br *BatchRequesterImpl) RequestBatches(ctx context.Context) {
	ethGasPrice, err := br.ethClient.SuggestGasPrice(ctx)
	if err != nil {
		br.logger.Warn("could not get gas price for auto batch request", "err", err)

		return
	}

	batchFees, err := br.query.GetPendingBatchFees(ctx)
	if err != nil {
		br.logger.Warn("failed to get pending batch fees", "err", err)

		return
	}

	for _, batchFee := range batchFees {
		denom, err := br.query.GetERC20ToDenom(ctx, batchFee.Token)
		if err != nil {
			br.logger.Error("failed to lookup denom for erc20",
				"token", batchFee.Token, "err", err)

			continue
		}

		switch br.config.BatchRequestMode {
		case core.BatchRequestModeProfitableOnly:
			br.requestIfProfitable(ctx, batchFee, denom, ethGasPrice)
		case core.BatchRequestModeEveryBatch:
			br.logger.Info("requesting batch", "token", batchFee.Token, "denom", denom)
			br.submitRequest(ctx, denom)
		case core.BatchRequestModeNone:
		}
	}
}

func (br *BatchRequesterImpl) requestIfProfitable(
	ctx context.Context, batchFee cosmos.BatchFee, denom string, ethGasPrice *big.Int,
) {
	wethCostEstimate := new(big.Int).Mul(ethGasPrice, testGasLimit)

	price, err := br.priceSource.GetWethPrice(ctx, batchFee.Token, batchFee.TotalFees, br.ethAddress)
	if err != nil {
		br.logger.Warn("failed to get price for token",
			"token", batchFee.Token, "err", err)

		return
	}

	if price.Cmp(wethCostEstimate) > 0 {
		br.logger.Info("requesting profitable batch",
			"token", batchFee.Token, "denom", denom,
			"price", price, "costEstimate", wethCostEstimate)
		br.submitRequest(ctx, denom)
	} else {
		br.logger.Trace("did not request unprofitable batch",
			"token", batchFee.Token, "price", price, "costEstimate", wethCostEstimate)
	}
}

func (br *BatchRequesterImpl) submitRequest(ctx context.Context, denom string) {
	// sending a tx with a zero fee value looks strange, drop it instead
	var fee *common.Fee
	if !br.requestFee.IsZero() {
		fee = &br.requestFee
	}

	if err := br.broadcast.SendRequestBatch(ctx, denom, fee); err != nil {
		br.logger.Warn("failed to request batch", "denom", denom, "err", err)

		return
	}

	telemetry.UpdateRelayerBatchRequestCounter(denom)
}
