package orchestrator

import (
	"context"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/core"
)

// OrchestratorImpl combines the roles a validator must run to keep the
// bridge live: the event oracle and the confirmation signer, plus the
// permissionless relayer when enabled. Both oracle and signer are
// safety-critical, partial operation is treated as unsafe: the first task to
// fail takes the whole orchestrator down.
type OrchestratorImpl struct {
	oracle         core.Task
	signer         core.Task
	relayer        core.Task
	relayerEnabled bool
	logger         hclog.Logger
}

func NewOrchestrator(
	oracle core.Task,
	signer core.Task,
	relayer core.Task,
	relayerEnabled bool,
	logger hclog.Logger,
) *OrchestratorImpl {
	return &OrchestratorImpl{
		oracle:         oracle,
		signer:         signer,
		relayer:        relayer,
		relayerEnabled: relayerEnabled,
		logger:         logger,
	}
}

// Start runs all enabled tasks until the first of them returns an error,
// which cancels the rest and becomes the terminal result. In-flight ticks of
// the other tasks are abandoned at their next suspension point.
func (o *OrchestratorImpl) Start(ctx context.Context) error {
	o.logger.Info("starting orchestrator", "relayerEnabled", o.relayerEnabled)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return o.oracle.Start(groupCtx)
	})

	group.Go(func() error {
		return o.signer.Start(groupCtx)
	})

	if o.relayerEnabled && o.relayer != nil {
		group.Go(func() error {
			return o.relayer.Start(groupCtx)
		})
	}

	return group.Wait()
}
