package config

import "github.com/spf13/cobra"

var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cli configuration",
	Long:  `Manage cli configuration stored in $HOME/.provision/config.yaml`,
}
