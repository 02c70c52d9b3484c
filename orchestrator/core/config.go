package core

import (
	"time"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
	relayerCore "github.com/Ethernal-Tech/gravity-orchestrator/relayer/core"
	"github.com/Ethernal-Tech/gravity-orchestrator/telemetry"
)

const (
	defaultOracleLoopTimeMilis = 13_000
	defaultSignerLoopTimeMilis = 11_000
	defaultRetryDelayMilis     = 5_000
	defaultTimeoutMilis        = 10_000
)

type BootstrapConfig struct {
	AddressPrefix string `json:"addressPrefix"`
	// Empty URL disables the corresponding connection and everything that
	// depends on it.
	CosmosGrpcURL string `json:"cosmosGrpcUrl"`
	EthRPCURL     string `json:"ethRpcUrl"`
	TimeoutMilis  uint64 `json:"timeoutMilis"`
}

type OrchestratorConfig struct {
	OracleLoopTimeMilis uint64     `json:"oracleLoopTimeMilis"`
	SignerLoopTimeMilis uint64     `json:"signerLoopTimeMilis"`
	RetryDelayMilis     uint64     `json:"retryDelayMilis"`
	RelayerEnabled      bool       `json:"relayerEnabled"`
	ClientBackend       string     `json:"clientBackend"`
	EthAddress          string     `json:"ethAddress"`
	OrchestratorAddress string     `json:"orchestratorAddress"`
	Fee                 common.Fee `json:"fee"`
}

type AppConfig struct {
	Bootstrap    BootstrapConfig                  `json:"bootstrap"`
	Orchestrator OrchestratorConfig               `json:"orchestrator"`
	Relayer      relayerCore.RelayerConfiguration `json:"relayer"`
	Telemetry    telemetry.TelemetryConfig        `json:"telemetry"`
	LogLevel     string                           `json:"logLevel"`
}

func (c *AppConfig) FillDefaults() {
	if c.Orchestrator.OracleLoopTimeMilis == 0 {
		c.Orchestrator.OracleLoopTimeMilis = defaultOracleLoopTimeMilis
	}

	if c.Orchestrator.SignerLoopTimeMilis == 0 {
		c.Orchestrator.SignerLoopTimeMilis = defaultSignerLoopTimeMilis
	}

	if c.Orchestrator.RetryDelayMilis == 0 {
		c.Orchestrator.RetryDelayMilis = defaultRetryDelayMilis
	}

	if c.Bootstrap.TimeoutMilis == 0 {
		c.Bootstrap.TimeoutMilis = defaultTimeoutMilis
	}
}

func (c OrchestratorConfig) OracleLoopTime() time.Duration {
	return time.Millisecond * time.Duration(c.OracleLoopTimeMilis)
}

func (c OrchestratorConfig) SignerLoopTime() time.Duration {
	return time.Millisecond * time.Duration(c.SignerLoopTimeMilis)
}

func (c OrchestratorConfig) RetryDelay() time.Duration {
	return time.Millisecond * time.Duration(c.RetryDelayMilis)
}

func (c BootstrapConfig) Timeout() time.Duration {
	return time.Millisecond * time.Duration(c.TimeoutMilis)
}
