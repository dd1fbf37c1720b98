package file

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/eiannone/keyboard"
)

const (
	configDirName  = ".provision"
	configFileName = "config.yaml"
)

// confirmOverwrite reads a single key press; enter, Y and y accept.
var confirmOverwrite = func() bool {
	txt, key, err := keyboard.GetSingleKey()
	if err != nil {
		return false
	}
	return key == keyboard.KeyEnter || txt == 'Y' || txt == 'y'
}

// Path returns the location of the user level config file.
func Path() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, configDirName, configFileName)
}

func Create(contents string) {
	cfgFile := Path()
	configDir := filepath.Dir(cfgFile)
	if _, err := os.Stat(configDir); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				log.Fatalf("Unable to create config directory in path: %s. Error: %s", configDir, err.Error())
			}
		}
	}
	_, err := os.Stat(cfgFile)
	if os.IsNotExist(err) {
		saveConfig(cfgFile, contents)
		return
	}
	fmt.Printf("Config file (%s) found, Overwrite? [Y/n] ", cfgFile)
	if confirmOverwrite() {
		saveConfig(cfgFile, contents)
	}
}

func saveConfig(cfgFile string, contents string) {
	file, err := os.Create(cfgFile)
	if err != nil {
		log.Fatalf("Error: failed while creating config file. Error: %s", err.Error())
	}
	defer file.Close()

	_, err = io.WriteString(file, contents)
	if err != nil {
		log.Fatal("Error: failed while attempting to write config yaml")
	}
	_ = file.Sync()

	fmt.Println("\nSuccessfully configured provisioning cli. Use `provision config get` to view your configuration.")
}
