package folders

import (
	"github.com/spf13/cobra"
	"github.com/tyler-technologies/go-provision/cmd/folders/create"
)

var FoldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Provisions per-account folders",
	Long:  `Provisions per-account folders and grants each account full control`,
}

func init() {
	FoldersCmd.AddCommand(create.CreateFoldersCmd)
}
