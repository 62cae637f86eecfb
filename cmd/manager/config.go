package main

import (
	"io/ioutil"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "/etc/qc71manager.yml"

// managerConfig is the on-disk configuration. Every field is optional;
// the zero value runs against detected hardware with no log rotation.
type managerConfig struct {
	// Model overrides DMI detection ("evo", "creative", "executive",
	// "hero", "titan")
	Model string `yaml:"model"`
	// LogPath enables rotated file logging when set
	LogPath string `yaml:"log_path"`
	// StatePath overrides where persisted configurations are stored
	StatePath string `yaml:"state_path"`
	DryRun    bool   `yaml:"dry_run"`
	// CheckUpdates enables the periodic release check against GitHub
	CheckUpdates bool `yaml:"check_updates"`
}

func loadConfig(path string) (managerConfig, error) {
	var conf managerConfig

	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("[supervisor] no configuration at %s, using defaults\n", path)
		return conf, nil
	}
	if err != nil {
		return conf, err
	}

	if err := yaml.Unmarshal(b, &conf); err != nil {
		return conf, err
	}
	return conf, nil
}
