package config

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tyler-technologies/go-provision/internal/config"
)

var newConfigCmd = &cobra.Command{
	Use:   "new",
	Short: "Generates a config file in $HOME/.provision",
	Long:  `Generates a config file in $HOME/.provision`,
	Run: func(cmd *cobra.Command, args []string) {
		config.GenerateConfig(os.Stdin)
	},
}

func init() {
	ConfigCmd.AddCommand(newConfigCmd)
}
