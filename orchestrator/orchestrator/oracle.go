package orchestrator

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/sethvargo/go-retry"

	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/core"
	"github.com/Ethernal-Tech/gravity-orchestrator/telemetry"
)

const (
	resyncRetryBase        = time.Second
	resyncRetryMaxAttempts = 8
)

// OracleImpl makes sure Ethereum events are retrieved from the Ethereum
// blockchain and ferried over to Cosmos, where they are used to issue tokens
// or process batches. The checkpoint pair (lastCheckedBlock,
// lastCheckedEvent) is owned exclusively by this loop.
type OracleImpl struct {
	config            *core.OrchestratorConfig
	ethClient         eth.IEthChainClient
	query             cosmos.IGravityQuery
	eventsChecker     core.EventsChecker
	checkpointQuerier core.CheckpointQuerier
	lastCheckedBlock  *big.Int
	lastCheckedEvent  *big.Int
	logger            hclog.Logger
}

var _ core.Task = (*OracleImpl)(nil)

func NewOracle(
	config *core.OrchestratorConfig,
	ethClient eth.IEthChainClient,
	query cosmos.IGravityQuery,
	eventsChecker core.EventsChecker,
	checkpointQuerier core.CheckpointQuerier,
	logger hclog.Logger,
) *OracleImpl {
	return &OracleImpl{
		config:            config,
		ethClient:         ethClient,
		query:             query,
		eventsChecker:     eventsChecker,
		checkpointQuerier: checkpointQuerier,
		lastCheckedEvent:  big.NewInt(0),
		logger:            logger,
	}
}

// Start resyncs the checkpoint from chain state and then runs the oracle
// until ctx is canceled. Ticks absorb their own work into a fixed minimum
// period. Transient failures never end the loop.
func (o *OracleImpl) Start(ctx context.Context) error {
	lastCheckedBlock, err := o.resyncCheckpoint(ctx)
	if err != nil {
		return fmt.Errorf("failed to resync oracle checkpoint: %w", err)
	}

	o.lastCheckedBlock = lastCheckedBlock

	o.logger.Info("oracle resync complete, oracle now operational",
		"lastCheckedBlock", o.lastCheckedBlock)

	for {
		timer := time.NewTimer(o.config.OracleLoopTime())

		o.tick(ctx)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (o *OracleImpl) tick(ctx context.Context) {
	var (
		latestEthBlock *big.Int
		ethErr         error
		chainStatus    cosmos.ChainStatus
		statusErr      error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()

		latestEthBlock, ethErr = o.ethClient.BlockNumber(ctx)
	}()

	go func() {
		defer wg.Done()

		chainStatus, statusErr = o.query.GetChainStatus(ctx)
	}()

	wg.Wait()

	if !o.gate(ctx, latestEthBlock, ethErr, chainStatus, statusErr) {
		return
	}

	nonces, err := o.eventsChecker.CheckForEvents(ctx, o.lastCheckedBlock, latestEthBlock)
	if err != nil {
		o.logger.Error("failed to get events for block range, check your eth node and cosmos grpc", "err", err)
		telemetry.IncrErrorCounter("check_for_events_failed")

		return
	}

	newCheckedBlock := nonces.BlockNumber

	if o.lastCheckedEvent.Cmp(nonces.EventNonce) > 0 {
		// the validator went back in history, a governance unhalt vote must
		// have happened and old events are being replayed. The block number
		// the scan returned has advanced past them, re-derive the checkpoint
		// from chain state instead of trusting it.
		o.logger.Info("governance unhalt vote detected, resetting the block to check",
			"previousEventNonce", o.lastCheckedEvent, "observedEventNonce", nonces.EventNonce)

		newCheckedBlock, err = o.checkpointQuerier.GetLastCheckedBlock(ctx)
		if err != nil {
			o.logger.Error("failed to re-derive checkpoint after rollback", "err", err)
			telemetry.IncrErrorCounter("checkpoint_rederive_failed")

			return
		}
	}

	o.lastCheckedBlock = newCheckedBlock
	o.lastCheckedEvent = nonces.EventNonce

	telemetry.UpdateLastCheckedEvent(o.lastCheckedEvent.Uint64())
}

// gate reports whether event work may proceed this tick: it requires both
// chains reachable and the cosmos chain moving. Every other combination
// pauses the oracle for a short delay.
func (o *OracleImpl) gate(
	ctx context.Context,
	latestEthBlock *big.Int, ethErr error,
	chainStatus cosmos.ChainStatus, statusErr error,
) bool {
	switch {
	case ethErr == nil && statusErr == nil && chainStatus.State == cosmos.ChainStateMoving:
		o.logger.Trace("chain heads fetched",
			"latestEthBlock", latestEthBlock, "latestCosmosBlock", chainStatus.BlockHeight)
		telemetry.UpdateLatestCosmosBlock(chainStatus.BlockHeight)
		telemetry.UpdateLatestEthBlock(latestEthBlock.Uint64())

		return true
	case ethErr == nil && statusErr == nil && chainStatus.State == cosmos.ChainStateSyncing:
		o.logger.Warn("cosmos node syncing, oracle paused")
		telemetry.IncrWarningCounter("cosmos_node_syncing")
	case ethErr == nil && statusErr == nil:
		o.logger.Warn("cosmos node waiting for chain start, oracle paused")
		telemetry.IncrWarningCounter("cosmos_node_waiting_to_start")
	case ethErr == nil && statusErr != nil:
		o.logger.Warn("could not contact cosmos grpc, trying again", "err", statusErr)
		telemetry.IncrWarningCounter("cosmos_unreachable")
	case ethErr != nil && statusErr == nil:
		o.logger.Warn("could not contact eth node, trying again", "err", ethErr)
		telemetry.IncrWarningCounter("eth_unreachable")
	default:
		o.logger.Error("could not reach ethereum or cosmos rpc")
		telemetry.IncrErrorCounter("both_chains_unreachable")
	}

	waitOrDone(ctx, o.config.RetryDelay())

	return false
}

func (o *OracleImpl) resyncCheckpoint(ctx context.Context) (*big.Int, error) {
	var lastCheckedBlock *big.Int

	backoff := retry.WithMaxRetries(resyncRetryMaxAttempts, retry.NewExponential(resyncRetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error

		lastCheckedBlock, err = o.checkpointQuerier.GetLastCheckedBlock(ctx)
		if err != nil {
			o.logger.Warn("checkpoint resync attempt failed", "err", err)

			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return lastCheckedBlock, nil
}

func waitOrDone(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
