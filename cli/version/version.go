package cliversion

import (
	"github.com/Ethernal-Tech/gravity-orchestrator/versioning"
	"github.com/spf13/cobra"
)

func GetVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Returns the current gravity-orchestrator version",
		Args:  cobra.NoArgs,
		Run:   runCommand,
	}
}

func runCommand(cmd *cobra.Command, _ []string) {
	cmd.Printf("Commit: %s\n", versioning.Commit)
	cmd.Printf("Branch: %s\n", versioning.Branch)
	cmd.Printf("Build Time: %s\n", versioning.BuildTime)
}
