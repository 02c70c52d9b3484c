package clirunorchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/Ethernal-Tech/gravity-orchestrator/common"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/bootstrap"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/core"
	"github.com/Ethernal-Tech/gravity-orchestrator/orchestrator/orchestrator"
	relayerPkg "github.com/Ethernal-Tech/gravity-orchestrator/relayer/relayer"
	"github.com/Ethernal-Tech/gravity-orchestrator/telemetry"
)

var initParamsData = &initParams{}

func GetRunOrchestratorCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:     "run-orchestrator",
		Short:   "runs the oracle, signer and relayer roles of this validator",
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	initParamsData.setFlags(runCmd)

	return runCmd
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return initParamsData.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	config, err := common.LoadJSON[core.AppConfig](initParamsData.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	config.FillDefaults()
	config.Relayer.FillDefaults()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "gravity-orchestrator",
		Level: hclog.LevelFromString(config.LogLevel),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = execute(ctx, config, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func execute(ctx context.Context, config *core.AppConfig, logger hclog.Logger) error {
	telemetryObj := telemetry.NewTelemetry(config.Telemetry, logger.Named("telemetry"))
	if err := telemetryObj.Start(); err != nil {
		return fmt.Errorf("failed to start telemetry: %w", err)
	}

	defer func() {
		_ = telemetryObj.Close(context.Background())
	}()

	bootstrapper := bootstrap.NewConnectionBootstrapper(logger.Named("bootstrap"))

	connections, err := bootstrapper.Establish(
		ctx,
		config.Bootstrap.AddressPrefix,
		config.Bootstrap.CosmosGrpcURL,
		config.Bootstrap.EthRPCURL,
		config.Bootstrap.Timeout(),
	)
	if err != nil {
		return fmt.Errorf("failed to establish connections: %w", err)
	}

	defer connections.Close()

	if connections.Contact == nil || connections.Eth == nil {
		return errors.New("orchestrator requires both the cosmos grpc url and the eth rpc url to be configured")
	}

	identity := core.ValidatorIdentity{
		OrchestratorAddress: config.Orchestrator.OrchestratorAddress,
		EthAddress:          common.HexToAddress(config.Orchestrator.EthAddress),
	}

	clients, err := core.NewClientBundle(
		config.Orchestrator.ClientBackend, connections.Contact, connections.Eth,
		identity, logger.Named("clients"))
	if err != nil {
		return fmt.Errorf("failed to create chain clients: %w", err)
	}

	if err := bootstrap.WaitForCosmosNodeReady(ctx, clients.Query, logger); err != nil {
		return err
	}

	if err := bootstrap.CheckDelegateAddresses(ctx, clients.Query, identity, logger); err != nil {
		return err
	}

	if err := bootstrap.CheckForFee(
		ctx, clients.Query, config.Orchestrator.Fee, identity.OrchestratorAddress); err != nil {
		return err
	}

	if err := bootstrap.CheckForEth(ctx, connections.Eth, identity.EthAddress); err != nil {
		return err
	}

	oracle := orchestrator.NewOracle(
		&config.Orchestrator, connections.Eth, clients.Query,
		clients.EventsChecker, clients.CheckpointQuerier, logger.Named("oracle"))

	signer := orchestrator.NewSigner(
		&config.Orchestrator, clients.Query, clients.Broadcast,
		identity, config.Orchestrator.Fee, logger.Named("signer"))

	batchRequester := relayerPkg.NewBatchRequester(
		&config.Relayer, connections.Eth, clients.Query, clients.Broadcast,
		clients.PriceSource, identity.EthAddress, config.Orchestrator.Fee,
		logger.Named("batch_requester"))

	orchestratorObj := orchestrator.NewOrchestrator(
		oracle, signer, batchRequester,
		config.Orchestrator.RelayerEnabled, logger.Named("orchestrator"))

	return orchestratorObj.Start(ctx)
}
