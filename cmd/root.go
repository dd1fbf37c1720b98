package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	cfg "github.com/tyler-technologies/go-provision/cmd/config"
	"github.com/tyler-technologies/go-provision/cmd/folders"
	"github.com/tyler-technologies/go-provision/cmd/instance"
	"github.com/tyler-technologies/go-provision/internal/config"
	"github.com/tyler-technologies/go-provision/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "provision",
	Short: "Administrative provisioning scripts",
	Long:  `Provisions account folders with full control grants, and EC2 instances with a tagged data volume`,
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Generate markdown documentation",
	Run: func(cmd *cobra.Command, args []string) {
		err := doc.GenMarkdownTree(rootCmd, "./docs")
		if err != nil {
			log.Fatal(err)
		}
	},
}

// Execute will run the cli command
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

var cfgFile string
var envFile string

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.DisableAutoGenTag = true
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	rootCmd.AddCommand(cfg.ConfigCmd)
	rootCmd.AddCommand(folders.FoldersCmd)
	rootCmd.AddCommand(instance.InstanceCmd)
	rootCmd.AddCommand(docCmd)
}

func initConfig() {
	// a missing .env file is not an error
	_ = godotenv.Load(envFile)
	config.InitConfig(cfgFile)
	logging.InitLogger()
}
