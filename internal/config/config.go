package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/spf13/pflag"
	vpr "github.com/spf13/viper"
	"github.com/tyler-technologies/go-provision/internal/config/file"
	"gopkg.in/yaml.v2"
)

const (
	DefaultLogLevel               = "info"
	DefaultAccountListFile        = "./accounts.txt"
	DefaultInstanceRunningTimeout = 300 * time.Second
	DefaultVolumePollInterval     = 2 * time.Second
)

var (
	ErrFolderBasePathRequired  = errors.New("folder base path is required")
	ErrAccountListFileRequired = errors.New("account list file is required")
	ErrRunningTimeoutInvalid   = errors.New("instance running timeout must be greater than zero")
	ErrPollIntervalInvalid     = errors.New("volume poll interval must be greater than zero")
)

var viper = vpr.New()

var configuration Configuration

type Configuration struct {
	LogLevel               string        `mapstructure:"log_level" yaml:"log_level"`
	FolderBasePath         string        `mapstructure:"folder_base_path" yaml:"folder_base_path"`
	AccountListFile        string        `mapstructure:"account_list_file" yaml:"account_list_file"`
	AWSRegion              string        `mapstructure:"aws_region" yaml:"aws_region,omitempty"`
	AWSProfile             string        `mapstructure:"aws_profile" yaml:"aws_profile,omitempty"`
	AWSEndpoint            string        `mapstructure:"aws_endpoint" yaml:"aws_endpoint,omitempty"`
	AWSAccessKeyID         string        `mapstructure:"aws_access_key_id" yaml:"aws_access_key_id,omitempty"`
	AWSSecretAccessKey     string        `mapstructure:"aws_secret_access_key" yaml:"aws_secret_access_key,omitempty"`
	InstanceRunningTimeout time.Duration `mapstructure:"instance_running_timeout" yaml:"instance_running_timeout"`
	VolumePollInterval     time.Duration `mapstructure:"volume_poll_interval" yaml:"volume_poll_interval"`
}

func GetConfig() Configuration {
	return configuration
}

// ValidateFolderConfig checks the settings the folder provisioner depends on.
func ValidateFolderConfig() error {
	if len(configuration.FolderBasePath) == 0 {
		return ErrFolderBasePathRequired
	}
	if len(configuration.AccountListFile) == 0 {
		return ErrAccountListFileRequired
	}
	return nil
}

// ValidateInstanceConfig checks the settings the instance provisioner depends on.
// Region and credentials are left to the AWS SDK default chain.
func ValidateInstanceConfig() error {
	if configuration.InstanceRunningTimeout <= 0 {
		return ErrRunningTimeoutInvalid
	}
	if configuration.VolumePollInterval <= 0 {
		return ErrPollIntervalInvalid
	}
	return nil
}

func New() *Configuration {
	c := Configuration{
		LogLevel:               DefaultLogLevel,
		AccountListFile:        DefaultAccountListFile,
		InstanceRunningTimeout: DefaultInstanceRunningTimeout,
		VolumePollInterval:     DefaultVolumePollInterval,
	}
	return &c
}

func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME/.provision")
		viper.AddConfigPath(".")
	}

	defaults := New()
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("account_list_file", defaults.AccountListFile)
	viper.SetDefault("instance_running_timeout", defaults.InstanceRunningTimeout)
	viper.SetDefault("volume_poll_interval", defaults.VolumePollInterval)

	_ = viper.BindEnv("log_level", "PROVISION_LOG_LEVEL")
	_ = viper.BindEnv("folder_base_path", "PROVISION_FOLDER_BASE_PATH")
	_ = viper.BindEnv("account_list_file", "PROVISION_ACCOUNT_LIST_FILE")
	_ = viper.BindEnv("aws_region", "AWS_REGION")
	_ = viper.BindEnv("aws_profile", "AWS_PROFILE")
	_ = viper.BindEnv("aws_endpoint", "PROVISION_AWS_ENDPOINT")
	_ = viper.BindEnv("aws_access_key_id", "AWS_ACCESS_KEY_ID")
	_ = viper.BindEnv("aws_secret_access_key", "AWS_SECRET_ACCESS_KEY")
	_ = viper.BindEnv("instance_running_timeout", "PROVISION_INSTANCE_RUNNING_TIMEOUT")
	_ = viper.BindEnv("volume_poll_interval", "PROVISION_VOLUME_POLL_INTERVAL")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	configuration = Configuration{}
	if err := viper.Unmarshal(&configuration); err != nil {
		log.Fatalf("ERROR: Error reading config: %v", err)
	}
}

// BindFlag lets a command line flag override the configuration key. Bind
// before InitConfig runs; an unset flag leaves file and env values alone.
func BindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		log.Fatalf("ERROR: Error binding flag %s: %v", key, err)
	}
}

// GenerateConfig prompts for the settings on in and saves them to $HOME/.provision/config.yaml.
func GenerateConfig(in io.Reader) {
	c := promptConfig(in)
	bytes, _ := yaml.Marshal(c)
	file.Create(string(bytes))
}

func promptConfig(in io.Reader) Configuration {
	reader := bufio.NewReader(in)
	c := New()

	fmt.Println("Enter folder base path: ")
	basePath, _ := reader.ReadString('\n')
	c.FolderBasePath = strings.TrimSpace(basePath)

	fmt.Printf("Enter account list file [%s]: \n", DefaultAccountListFile)
	if accountList, _ := reader.ReadString('\n'); strings.TrimSpace(accountList) != "" {
		c.AccountListFile = strings.TrimSpace(accountList)
	}

	fmt.Println("Enter AWS region: ")
	region, _ := reader.ReadString('\n')
	c.AWSRegion = strings.TrimSpace(region)

	fmt.Println("Enter AWS profile: ")
	profile, _ := reader.ReadString('\n')
	c.AWSProfile = strings.TrimSpace(profile)

	return *c
}
