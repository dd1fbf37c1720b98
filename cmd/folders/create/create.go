package create

import (
	"github.com/spf13/cobra"
	"github.com/tyler-technologies/go-provision/internal/accounts"
	"github.com/tyler-technologies/go-provision/internal/config"
	"github.com/tyler-technologies/go-provision/internal/folders"
	"github.com/tyler-technologies/go-provision/internal/logging"
)

var dryRun bool
var failOnError bool

var CreateFoldersCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a folder for every account in the account list",
	Long: `Creates a folder under the base path for every account in the account list
and grants the account inheritable full control on it. Failures are reported
per account and do not stop the batch.`,
	Args: func(cmd *cobra.Command, args []string) error {
		return config.ValidateFolderConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := config.GetConfig()
		status := logging.NewStatus(cmd.OutOrStdout())

		names, err := accounts.ReadAccountList(c.AccountListFile)
		if err != nil {
			status.Failure("error: %v", err)
			return err
		}

		p := &folders.Provisioner{
			BasePath: c.FolderBasePath,
			Granter:  folders.NewGranter(),
			Status:   status,
			DryRun:   dryRun,
		}
		report := p.Provision(names)
		if failOnError {
			return report.ErrorOrNil()
		}
		return nil
	},
}

func init() {
	CreateFoldersCmd.PersistentFlags().StringP("base-path", "b", "", "parent directory the account folders are created in")
	CreateFoldersCmd.PersistentFlags().StringP("accounts", "a", "", "file with one account name per line")
	CreateFoldersCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would be created without touching the filesystem")
	CreateFoldersCmd.PersistentFlags().BoolVar(&failOnError, "fail-on-error", false, "exit non-zero when any account fails")
	config.BindFlag("folder_base_path", CreateFoldersCmd.PersistentFlags().Lookup("base-path"))
	config.BindFlag("account_list_file", CreateFoldersCmd.PersistentFlags().Lookup("accounts"))
}
