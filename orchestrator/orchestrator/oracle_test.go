package orchestrator

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/core"
)

func TestOracleTick(t *testing.T) {
	ctx := context.Background()
	testError := errors.New("test err")

	config := &core.OrchestratorConfig{
		OracleLoopTimeMilis: 1,
		RetryDelayMilis:     1,
	}

	movingStatus := cosmos.ChainStatus{State: cosmos.ChainStateMoving, BlockHeight: 200}

	newOracle := func(
		ethClientMock *eth.EthChainClientMock,
		queryMock *cosmos.GravityQueryMock,
		eventsCheckerMock *core.EventsCheckerMock,
		checkpointQuerierMock *core.CheckpointQuerierMock,
	) *OracleImpl {
		return NewOracle(config, ethClientMock, queryMock,
			eventsCheckerMock, checkpointQuerierMock, hclog.NewNullLogger())
	}

	t.Run("advances checkpoint after a clean pass", func(t *testing.T) {
		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}

		ethClientMock.On("BlockNumber", ctx).Return(big.NewInt(150), nil)
		queryMock.On("GetChainStatus", ctx).Return(movingStatus, nil)
		eventsCheckerMock.On("CheckForEvents", ctx, big.NewInt(100), big.NewInt(150)).
			Return(core.CheckedNonces{BlockNumber: big.NewInt(150), EventNonce: big.NewInt(7)}, nil)

		o := newOracle(ethClientMock, queryMock, eventsCheckerMock, &core.CheckpointQuerierMock{})
		o.lastCheckedBlock = big.NewInt(100)

		o.tick(ctx)

		require.Equal(t, big.NewInt(150), o.lastCheckedBlock)
		require.Equal(t, big.NewInt(7), o.lastCheckedEvent)
	})

	t.Run("syncing cosmos node pauses event work", func(t *testing.T) {
		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}

		ethClientMock.On("BlockNumber", ctx).Return(big.NewInt(150), nil)
		queryMock.On("GetChainStatus", ctx).
			Return(cosmos.ChainStatus{State: cosmos.ChainStateSyncing}, nil)

		o := newOracle(ethClientMock, queryMock, eventsCheckerMock, &core.CheckpointQuerierMock{})
		o.lastCheckedBlock = big.NewInt(100)

		o.tick(ctx)

		eventsCheckerMock.AssertNotCalled(t, "CheckForEvents",
			mock.Anything, mock.Anything, mock.Anything)
		require.Equal(t, big.NewInt(100), o.lastCheckedBlock)
	})

	t.Run("unreachable eth node pauses event work", func(t *testing.T) {
		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}

		ethClientMock.On("BlockNumber", ctx).Return(nil, testError)
		queryMock.On("GetChainStatus", ctx).Return(movingStatus, nil)

		o := newOracle(ethClientMock, queryMock, eventsCheckerMock, &core.CheckpointQuerierMock{})
		o.lastCheckedBlock = big.NewInt(100)

		o.tick(ctx)

		eventsCheckerMock.AssertNotCalled(t, "CheckForEvents",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed event scan leaves the checkpoint untouched", func(t *testing.T) {
		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}

		ethClientMock.On("BlockNumber", ctx).Return(big.NewInt(150), nil)
		queryMock.On("GetChainStatus", ctx).Return(movingStatus, nil)
		eventsCheckerMock.On("CheckForEvents", ctx, big.NewInt(100), big.NewInt(150)).
			Return(core.CheckedNonces{}, testError)

		o := newOracle(ethClientMock, queryMock, eventsCheckerMock, &core.CheckpointQuerierMock{})
		o.lastCheckedBlock = big.NewInt(100)
		o.lastCheckedEvent = big.NewInt(5)

		o.tick(ctx)

		require.Equal(t, big.NewInt(100), o.lastCheckedBlock)
		require.Equal(t, big.NewInt(5), o.lastCheckedEvent)
	})

	t.Run("event nonce rollback re-derives the checkpoint", func(t *testing.T) {
		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}
		checkpointQuerierMock := &core.CheckpointQuerierMock{}

		ethClientMock.On("BlockNumber", ctx).Return(big.NewInt(150), nil)
		queryMock.On("GetChainStatus", ctx).Return(movingStatus, nil)
		eventsCheckerMock.On("CheckForEvents", ctx, big.NewInt(100), big.NewInt(150)).
			Return(core.CheckedNonces{BlockNumber: big.NewInt(150), EventNonce: big.NewInt(10)}, nil)
		checkpointQuerierMock.On("GetLastCheckedBlock", ctx).Return(big.NewInt(90), nil)

		o := newOracle(ethClientMock, queryMock, eventsCheckerMock, checkpointQuerierMock)
		o.lastCheckedBlock = big.NewInt(100)
		o.lastCheckedEvent = big.NewInt(50)

		o.tick(ctx)

		require.Equal(t, big.NewInt(90), o.lastCheckedBlock)
		require.Equal(t, big.NewInt(10), o.lastCheckedEvent)
	})

	t.Run("failed re-derivation keeps the previous checkpoint", func(t *testing.T) {
		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}
		checkpointQuerierMock := &core.CheckpointQuerierMock{}

		ethClientMock.On("BlockNumber", ctx).Return(big.NewInt(150), nil)
		queryMock.On("GetChainStatus", ctx).Return(movingStatus, nil)
		eventsCheckerMock.On("CheckForEvents", ctx, big.NewInt(100), big.NewInt(150)).
			Return(core.CheckedNonces{BlockNumber: big.NewInt(150), EventNonce: big.NewInt(10)}, nil)
		checkpointQuerierMock.On("GetLastCheckedBlock", ctx).Return(nil, testError)

		o := newOracle(ethClientMock, queryMock, eventsCheckerMock, checkpointQuerierMock)
		o.lastCheckedBlock = big.NewInt(100)
		o.lastCheckedEvent = big.NewInt(50)

		o.tick(ctx)

		require.Equal(t, big.NewInt(100), o.lastCheckedBlock)
		require.Equal(t, big.NewInt(50), o.lastCheckedEvent)
	})
}

func TestOracleStart(t *testing.T) {
	config := &core.OrchestratorConfig{
		OracleLoopTimeMilis: 1,
		RetryDelayMilis:     1,
	}

	t.Run("fails when resync cannot complete", func(t *testing.T) {
		canceledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		checkpointQuerierMock := &core.CheckpointQuerierMock{}
		checkpointQuerierMock.On("GetLastCheckedBlock", mock.Anything).
			Return(nil, errors.New("test err"))

		o := NewOracle(config, &eth.EthChainClientMock{}, &cosmos.GravityQueryMock{},
			&core.EventsCheckerMock{}, checkpointQuerierMock, hclog.NewNullLogger())

		err := o.Start(canceledCtx)
		require.ErrorContains(t, err, "failed to resync oracle checkpoint")
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		ethClientMock := &eth.EthChainClientMock{}
		queryMock := &cosmos.GravityQueryMock{}
		eventsCheckerMock := &core.EventsCheckerMock{}
		checkpointQuerierMock := &core.CheckpointQuerierMock{}

		checkpointQuerierMock.On("GetLastCheckedBlock", mock.Anything).Return(big.NewInt(100), nil)
		ethClientMock.On("BlockNumber", mock.Anything).Return(big.NewInt(150), nil)
		queryMock.On("GetChainStatus", mock.Anything).
			Return(cosmos.ChainStatus{State: cosmos.ChainStateMoving, BlockHeight: 200}, nil)
		eventsCheckerMock.On("CheckForEvents", mock.Anything, mock.Anything, mock.Anything).
			Return(core.CheckedNonces{BlockNumber: big.NewInt(150), EventNonce: big.NewInt(1)}, nil)

		o := NewOracle(config, ethClientMock, queryMock,
			eventsCheckerMock, checkpointQuerierMock, hclog.NewNullLogger())

		require.ErrorIs(t, o.Start(ctx), context.DeadlineExceeded)
	})
}
