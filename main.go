package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clirunorchestrator "github.com/Ethernal-Tech/gravity-orchestrator/cli/runorchestrator"
	cliversion "github.com/Ethernal-Tech/gravity-orchestrator/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravity-orchestrator",
		Short: "validator-operated relay and oracle process for the gravity bridge",
	}

	rootCmd.AddCommand(
		clirunorchestrator.GetRunOrchestratorCommand(),
		cliversion.GetVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
