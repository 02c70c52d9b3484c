package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/core"
	"github.com/Ethernal-Tech/gravity-orchestrator/telemetry"
)

// SignerImpl signs off on any valsets, batches or logic calls the chain has
// queued for this validator. The artifacts come from a trusted cosmos node,
// so they are assumed valid and simply signed. Missing a signature for
// longer than the slashing window gets the validator slashed, which is why a
// fee failure on submission ends the whole orchestrator.
type SignerImpl struct {
	config    *core.OrchestratorConfig
	query     cosmos.IGravityQuery
	broadcast cosmos.IGravityBroadcast
	identity  core.ValidatorIdentity
	fee       common.Fee
	logger    hclog.Logger
}

var _ core.Task = (*SignerImpl)(nil)

func NewSigner(
	config *core.OrchestratorConfig,
	query cosmos.IGravityQuery,
	broadcast cosmos.IGravityBroadcast,
	identity core.ValidatorIdentity,
	fee common.Fee,
	logger hclog.Logger,
) *SignerImpl {
	return &SignerImpl{
		config:    config,
		query:     query,
		broadcast: broadcast,
		identity:  identity,
		fee:       fee,
		logger:    logger,
	}
}

// Start runs the signer until ctx is canceled or a tick reports an
// unrecoverable error. Ticks absorb their own work into a fixed minimum
// period.
func (s *SignerImpl) Start(ctx context.Context) error {
	s.logger.Debug("signer started")

	for {
		timer := time.NewTimer(s.config.SignerLoopTime())

		err := s.tick(ctx)

		select {
		case <-ctx.Done():
			timer.Stop()

			return ctx.Err()
		case <-timer.C:
		}

		if err != nil {
			return err
		}
	}
}

// tick checks the three artifact categories in fixed priority order and
// signs all outstanding artifacts of the first non-empty one. A non-nil
// return is unrecoverable and ends the loop.
func (s *SignerImpl) tick(ctx context.Context) error {
	// repeatedly refreshing the parameters here maintains loop correctness
	// when the gravity id or the slashing windows change under a governance
	// vote
	params, err := s.query.GetGravityParams(ctx)
	if err != nil {
		s.logger.Error(
			"failed to get gravity parameters, correct your cosmos grpc connection immediately, "+
				"you are risking slashing", "err", err)
		telemetry.IncrErrorCounter("gravity_params_unavailable")

		return nil
	}

	blocksUntilSlashing := min(params.SignedValsetsWindow,
		min(params.SignedBatchesWindow, params.SignedLogicCallsWindow))

	telemetry.UpdateBlocksUntilSlashing(blocksUntilSlashing)

	status, err := s.query.GetChainStatus(ctx)

	switch {
	case err != nil:
		s.logger.Error("could not reach cosmos rpc, you must correct this or you risk being slashed",
			"blocksUntilSlashing", blocksUntilSlashing, "err", err)
		telemetry.IncrErrorCounter("cosmos_unreachable")

		return nil
	case status.State == cosmos.ChainStateSyncing:
		s.logger.Warn("cosmos node syncing, signer paused. if this takes longer than the slashing window "+
			"you must find another node to submit signatures from or risk slashing",
			"blocksUntilSlashing", blocksUntilSlashing)
		telemetry.IncrWarningCounter("cosmos_node_syncing")
		waitOrDone(ctx, s.config.RetryDelay())

		return nil
	case status.State == cosmos.ChainStateWaitingToStart:
		s.logger.Warn("cosmos node waiting for chain start, signer paused")
		telemetry.IncrWarningCounter("cosmos_node_waiting_to_start")
		waitOrDone(ctx, s.config.RetryDelay())

		return nil
	}

	s.logger.Trace("latest cosmos block", "height", status.BlockHeight)

	valsets, err := s.query.GetOldestUnsignedValsets(ctx, s.identity.OrchestratorAddress)
	if err != nil {
		s.logger.Trace("failed to get unsigned valsets, check your cosmos grpc", "err", err)

		return nil
	}

	if len(valsets) > 0 {
		s.logger.Info("sending valset confirms",
			"count", len(valsets), "startingWith", valsets[0].Nonce)

		return s.checkForFeeError(
			s.broadcast.SendValsetConfirms(ctx, params.GravityID, s.fee, valsets))
	}

	batches, err := s.query.GetOldestUnsignedTransactionBatches(ctx, s.identity.OrchestratorAddress)
	if err != nil {
		s.logger.Trace("failed to get unsigned batches, check your cosmos grpc", "err", err)

		return nil
	}

	if len(batches) > 0 {
		s.logger.Info("sending batch confirms",
			"count", len(batches), "startingWith", batches[0].Nonce)

		return s.checkForFeeError(
			s.broadcast.SendBatchConfirm(ctx, params.GravityID, s.fee, batches))
	}

	calls, err := s.query.GetOldestUnsignedLogicCalls(ctx, s.identity.OrchestratorAddress)
	if err != nil {
		s.logger.Trace("failed to get unsigned logic calls, check your cosmos grpc", "err", err)

		return nil
	}

	if len(calls) > 0 {
		s.logger.Info("sending logic call confirms",
			"count", len(calls), "startingWith", calls[0].InvalidationNonce)

		return s.checkForFeeError(
			s.broadcast.SendLogicCallConfirm(ctx, params.GravityID, s.fee, calls))
	}

	s.logger.Trace("no artifacts to sign, node is caught up")

	return nil
}

// checkForFeeError inspects a confirm submission result. A fee failure here
// means signatures are economically blocked and slashing is a matter of
// hours, so it escalates to an unrecoverable error. Everything else is
// logged and swallowed.
func (s *SignerImpl) checkForFeeError(err error) error {
	if err == nil {
		return nil
	}

	var feeErr *cosmos.InsufficientFeesError
	if errors.As(err, &feeErr) {
		return core.NewUnrecoverableError(
			"your specified fee value %s is too small, use at least %s. "+
				"correct your fee argument immediately, you will be slashed within a few hours otherwise",
			s.fee, common.FeeListString(feeErr.MinFees))
	}

	if errors.Is(err, cosmos.ErrInsufficientGas) {
		return core.NewUnrecoverableError("hardcoded gas amounts insufficient")
	}

	s.logger.Error("confirm submission failed", "err", err)
	telemetry.IncrErrorCounter("confirm_submission_failed")

	return nil
}
