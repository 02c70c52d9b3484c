package core

import (
	"context"
	"math/big"

	"github.com/stretchr/testify/mock"
)

type EventsCheckerMock struct {
	mock.Mock
}

var _ EventsChecker = (*EventsCheckerMock)(nil)

func (m *EventsCheckerMock) CheckForEvents(
	ctx context.Context, lastCheckedBlock, latestBlock *big.Int,
) (CheckedNonces, error) {
	args := m.Called(ctx, lastCheckedBlock, latestBlock)

	arg0, _ := args.Get(0).(CheckedNonces)

	return arg0, args.Error(1)
}

type CheckpointQuerierMock struct {
	mock.Mock
}

var _ CheckpointQuerier = (*CheckpointQuerierMock)(nil)

func (m *CheckpointQuerierMock) GetLastCheckedBlock(ctx context.Context) (*big.Int, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*big.Int)

	return arg0, args.Error(1)
}

type TaskMock struct {
	mock.Mock
}

var _ Task = (*TaskMock)(nil)

func (m *TaskMock) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
