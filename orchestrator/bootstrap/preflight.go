package bootstrap

import (
	"context"
	"errors"
	"strings"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-hclog"
	"github.com/sethvargo/go-retry"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/core"
)

const (
	nodeReadyPollTime       = 10 * time.Second
	balanceRetryBase        = time.Second
	balanceRetryMaxAttempts = 5
)

// WaitForCosmosNodeReady blocks until the node reports a moving chain.
// Intended for situations such as a node that is still syncing or one
// waiting on a halted chain.
func WaitForCosmosNodeReady(ctx context.Context, query cosmos.IGravityQuery, logger hclog.Logger) error {
	for {
		status, err := query.GetChainStatus(ctx)
		if err != nil {
			logger.Warn("could not get chain status, is your cosmos node up?", "err", err)
		} else {
			switch status.State {
			case cosmos.ChainStateMoving:
				return nil
			case cosmos.ChainStateSyncing:
				logger.Info("cosmos node is syncing, standing by")
			case cosmos.ChainStateWaitingToStart:
				logger.Info("cosmos node is waiting for the chain to start, standing by")
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(nodeReadyPollTime):
		}
	}
}

// CheckDelegateAddresses verifies that the delegate keys this orchestrator
// signs with are the ones registered on chain for the validator, and that
// both registrations point at the same validator. Any mismatch is
// unrecoverable: signatures produced with the wrong keys never count toward
// the slashing windows.
func CheckDelegateAddresses(
	ctx context.Context, query cosmos.IGravityQuery,
	identity core.ValidatorIdentity, logger hclog.Logger,
) error {
	byEth, ethErr := query.GetDelegateKeysByEthAddress(ctx, identity.EthAddress)
	byOrchestrator, orchErr := query.GetDelegateKeysByOrchestratorAddress(ctx, identity.OrchestratorAddress)

	logger.Trace("delegate key lookups",
		"byEth", byEth, "byEthErr", ethErr,
		"byOrchestrator", byOrchestrator, "byOrchestratorErr", orchErr)

	switch {
	case ethErr == nil && orchErr == nil:
		registeredOrchestrator := byEth.OrchestratorAddress
		registeredEth := ethcommon.HexToAddress(byOrchestrator.EthAddress)

		orchestratorMismatch := registeredOrchestrator != identity.OrchestratorAddress
		ethMismatch := registeredEth != identity.EthAddress

		switch {
		case orchestratorMismatch && ethMismatch:
			return core.NewUnrecoverableError(
				"your delegate addresses are both incorrect, you must have mixed up keys between two validators. "+
					"provided eth address %s, correct value %s; provided orchestrator address %s, correct value %s",
				identity.EthAddress, registeredEth, identity.OrchestratorAddress, registeredOrchestrator)
		case ethMismatch:
			return core.NewUnrecoverableError(
				"your delegate ethereum address is incorrect. provided %s, correct value %s",
				identity.EthAddress, registeredEth)
		case orchestratorMismatch:
			return core.NewUnrecoverableError(
				"your delegate orchestrator address is incorrect. provided %s, correct value %s",
				identity.OrchestratorAddress, registeredOrchestrator)
		case byEth.ValidatorAddress != byOrchestrator.ValidatorAddress:
			return core.NewUnrecoverableError(
				"you are using delegate keys from two different validator addresses, %s and %s",
				byEth.ValidatorAddress, byOrchestrator.ValidatorAddress)
		default:
			return nil
		}
	case ethErr != nil && orchErr == nil:
		return core.NewUnrecoverableError(
			"your delegate ethereum key is not registered, double check your private key: %v", ethErr)
	case ethErr == nil && orchErr != nil:
		return core.NewUnrecoverableError(
			"your delegate cosmos key is not registered, double check your phrase: %v", orchErr)
	default:
		return core.NewUnrecoverableError(
			"delegate keys are not set, please register your delegate keys")
	}
}

// CheckForFee verifies the orchestrator account can pay the configured fee.
// A zero fee still requires the account to hold at least one unit of some
// token, otherwise the account cannot be charged at all.
func CheckForFee(
	ctx context.Context, query cosmos.IGravityQuery, fee common.Fee, address string,
) error {
	if fee.IsZero() {
		if err := query.GetAccountInfo(ctx, address); errors.Is(err, cosmos.ErrNoTokens) {
			return core.NewValidationError(
				"your orchestrator address has no tokens of any kind. even with zero fees the account "+
					"needs to be initialized by depositing tokens, send the smallest possible unit of any token to %s",
				address)
		}

		return nil
	}

	balances, err := getBalancesWithRetry(ctx, query, address)
	if err != nil {
		return err
	}

	for _, balance := range balances {
		if !strings.Contains(balance.Denom, fee.Denom) {
			continue
		}

		if balance.Amount.Cmp(fee.Amount) < 0 {
			return core.NewValidationError(
				"you have specified a fee greater than your balance of that coin: %s > %s", fee, balance)
		}

		return nil
	}

	return core.NewUnrecoverableError(
		"you have specified that fees should be paid in %s but account %s has no balance of that token",
		fee.Denom, address)
}

// CheckForEth verifies the delegate eth address holds at least some dust to
// pay for chain-B operations.
func CheckForEth(
	ctx context.Context, ethClient eth.IEthChainClient, address ethcommon.Address,
) error {
	balance, err := ethClient.BalanceAt(ctx, address)
	if err != nil {
		return err
	}

	if balance.Sign() == 0 {
		return core.NewValidationError(
			"you don't have any ethereum, send some to %s for this program to work. "+
				"dust will do for basic operations, even with relaying disabled the oracle needs some",
			address)
	}

	return nil
}

func getBalancesWithRetry(
	ctx context.Context, query cosmos.IGravityQuery, address string,
) ([]common.Fee, error) {
	var balances []common.Fee

	backoff := retry.WithMaxRetries(balanceRetryMaxAttempts, retry.NewExponential(balanceRetryBase))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error

		balances, err = query.GetAccountBalances(ctx, address)
		if err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return balances, nil
}
