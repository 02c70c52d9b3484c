package telemetry

import (
	"github.com/hashicorp/go-metrics"
)

const (
	oracleMetricsPrefix  = "oracle"
	signerMetricsPrefix  = "signer"
	commonMetricsPrefix  = "orchestrator"
	relayerMetricsPrefix = "relayer"
)

// Heights on both chains are well within float32 gauge range for the
// foreseeable future, matching the go-metrics gauge contract.

func UpdateLatestCosmosBlock(height uint64) {
	metrics.SetGauge([]string{oracleMetricsPrefix, "latest_cosmos_block"}, float32(height))
}

func UpdateLatestEthBlock(height uint64) {
	metrics.SetGauge([]string{oracleMetricsPrefix, "latest_eth_block"}, float32(height))
}

func UpdateLastCheckedEvent(nonce uint64) {
	metrics.SetGauge([]string{oracleMetricsPrefix, "last_checked_event"}, float32(nonce))
}

func UpdateBlocksUntilSlashing(blocks uint64) {
	metrics.SetGauge([]string{signerMetricsPrefix, "blocks_until_slashing"}, float32(blocks))
}

func IncrWarningCounter(reason string) {
	metrics.IncrCounter([]string{commonMetricsPrefix, "warnings_counter", reason}, 1)
}

func IncrErrorCounter(reason string) {
	metrics.IncrCounter([]string{commonMetricsPrefix, "errors_counter", reason}, 1)
}

func UpdateRelayerBatchRequestCounter(denom string) {
	metrics.IncrCounter([]string{relayerMetricsPrefix, "batch_request_counter", denom}, 1)
}
