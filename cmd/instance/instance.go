package instance

import (
	"github.com/spf13/cobra"
	"github.com/tyler-technologies/go-provision/cmd/instance/create"
)

var InstanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Provisions EC2 instances",
	Long:  `Provisions an EC2 instance with an attached, tagged data volume`,
}

func init() {
	InstanceCmd.AddCommand(create.CreateInstanceCmd)
}
