package create

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tyler-technologies/go-provision/internal/api"
	"github.com/tyler-technologies/go-provision/internal/config"
	"github.com/tyler-technologies/go-provision/internal/logging"
	"github.com/tyler-technologies/go-provision/internal/models"
)

var request = models.InstanceRequest{}

var CreateInstanceCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates an instance and attaches a data volume",
	Long: `Creates one EC2 instance, waits for it to run, creates a data volume in the
same availability zone, waits for it to become available and attaches it at ` + api.DeviceName + `.
Resources created before a failure are left in place.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateInstanceConfig(); err != nil {
			return err
		}
		return api.ValidateInstanceRequest(request)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c := config.GetConfig()
		status := logging.NewStatus(cmd.OutOrStdout())

		client, err := api.NewEC2Client(ctx, c)
		if err != nil {
			status.Failure("error: %v", err)
			return err
		}

		_, err = api.ProvisionInstance(ctx, client, request, api.Options{
			RunningTimeout: c.InstanceRunningTimeout,
			PollInterval:   c.VolumePollInterval,
		}, status)
		return err
	},
}

func init() {
	flags := CreateInstanceCmd.PersistentFlags()
	flags.StringVar(&request.ImageID, "image-id", "", "image the instance is launched from")
	flags.StringVar(&request.InstanceType, "instance-type", api.DefaultInstanceType, "instance type")
	flags.StringVar(&request.KeyName, "key-name", "", "key pair name")
	flags.StringVar(&request.SubnetID, "subnet-id", "", "subnet the instance is launched in")
	flags.StringSliceVar(&request.SecurityGroupIDs, "security-group-ids", nil, "security group ids, repeatable or comma separated")
	flags.Int32Var(&request.VolumeSizeGiB, "volume-size", api.DefaultVolumeSize, "data volume size in GiB")
	flags.StringVar(&request.VolumeType, "volume-type", api.DefaultVolumeType, "data volume type")
	flags.StringVar(&request.Tags.System, "system", "", "System tag value")
	flags.StringVar(&request.Tags.Owner, "owner", "", "Owner tag value")
	flags.StringVar(&request.Tags.Environment, "environment", "", "Environment tag value: dev, test, staging, prod or qa")
	flags.StringVar(&request.Tags.Billable, "billable", "", "Billable tag value")
	flags.StringP("region", "r", "", "AWS region, overrides configuration")
	flags.StringP("profile", "p", "", "AWS shared config profile, overrides configuration")
	config.BindFlag("aws_region", flags.Lookup("region"))
	config.BindFlag("aws_profile", flags.Lookup("profile"))
	_ = CreateInstanceCmd.MarkPersistentFlagRequired("image-id")
}
