package core

import "time"

// BatchRequestMode controls when the relayer asks the chain to create
// batches out of the unbatched tx pool.
type BatchRequestMode string

const (
	// BatchRequestModeNone never requests batch creation.
	BatchRequestModeNone BatchRequestMode = "none"
	// BatchRequestModeProfitableOnly requests a batch only when its pooled
	// fees exceed the estimated gas cost of relaying it.
	BatchRequestModeProfitableOnly BatchRequestMode = "profitable_only"
	// BatchRequestModeEveryBatch requests a batch for every pending fee quote
	// regardless of profitability.
	BatchRequestModeEveryBatch BatchRequestMode = "every_batch"
)

const defaultPullTimeMilis = 60_000

type RelayerConfiguration struct {
	BatchRequestMode BatchRequestMode `json:"batchRequestMode"`
	PullTimeMilis    uint64           `json:"pullTimeMilis"`
}

func (c *RelayerConfiguration) FillDefaults() {
	if c.BatchRequestMode == "" {
		c.BatchRequestMode = BatchRequestModeProfitableOnly
	}

	if c.PullTimeMilis == 0 {
		c.PullTimeMilis = defaultPullTimeMilis
	}
}

func (c RelayerConfiguration) PullTime() time.Duration {
	return time.Millisecond * time.Duration(c.PullTimeMilis)
}
