package core

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
)

func TestClientFactoryRegistry(t *testing.T) {
	identity := ValidatorIdentity{OrchestratorAddress: "gravity1orchestrator"}

	t.Run("unknown backend lists what is registered", func(t *testing.T) {
		_, err := NewClientBundle("no-such-backend", nil, nil, identity, hclog.NewNullLogger())
		require.ErrorContains(t, err, "unknown gravity client backend")
	})

	t.Run("registered factory is dispatched case insensitively", func(t *testing.T) {
		bundle := &ClientBundle{Query: &cosmos.GravityQueryMock{}}

		RegisterClientFactory("TestBackend", func(
			_ *cosmos.Contact, _ eth.IEthChainClient,
			factoryIdentity ValidatorIdentity, _ hclog.Logger,
		) (*ClientBundle, error) {
			require.Equal(t, identity, factoryIdentity)

			return bundle, nil
		})

		built, err := NewClientBundle("testbackend", nil, nil, identity, hclog.NewNullLogger())
		require.NoError(t, err)
		require.Same(t, bundle, built)
	})
}

func TestAppConfigFillDefaults(t *testing.T) {
	config := &AppConfig{}
	config.FillDefaults()
	config.Relayer.FillDefaults()

	require.Equal(t, uint64(13_000), config.Orchestrator.OracleLoopTimeMilis)
	require.Equal(t, uint64(11_000), config.Orchestrator.SignerLoopTimeMilis)
	require.Equal(t, uint64(5_000), config.Orchestrator.RetryDelayMilis)
	require.Equal(t, uint64(10_000), config.Bootstrap.TimeoutMilis)

	// explicit values survive
	config = &AppConfig{
		Orchestrator: OrchestratorConfig{OracleLoopTimeMilis: 500},
	}
	config.FillDefaults()

	require.Equal(t, uint64(500), config.Orchestrator.OracleLoopTimeMilis)
}
