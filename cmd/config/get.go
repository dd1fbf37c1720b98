package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tyler-technologies/go-provision/internal/config"
	"gopkg.in/yaml.v2"
)

var getConfigCmd = &cobra.Command{
	Use:   "get",
	Short: "Display currently configured options",
	Long:  `Display currently configured options`,
	Run: func(cmd *cobra.Command, args []string) {
		c := config.GetConfig()
		if c.AWSSecretAccessKey != "" {
			c.AWSSecretAccessKey = "********"
		}
		bytes, _ := yaml.Marshal(c)
		fmt.Print(string(bytes))
	},
}

func init() {
	ConfigCmd.AddCommand(getConfigCmd)
}
