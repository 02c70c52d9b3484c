package clirunorchestrator

import (
	"errors"

	"github.com/spf13/cobra"
)

const (
	configFlag     = "config"
	configFlagDesc = "path to config json file"
)

type initParams struct {
	config string
}

func (ip *initParams) validateFlags() error {
	if ip.config == "" {
		return errors.New("--config is required")
	}

	return nil
}

func (ip *initParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&ip.config,
		configFlag,
		"",
		configFlagDesc,
	)
}
