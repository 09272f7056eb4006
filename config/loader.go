package config

import (
	"fmt"

	"github.com/multiversx/mx-esdt-fee-interactor/common"
)

const (
	defaultDeployGasLimit            = 35_000_000
	defaultCallGasLimit              = 30_000_000
	defaultStatusPollingIntervalInMs = 1000
	defaultStateFile                 = "state.toml"
)

// LoadConfig returns a Config by reading the toml file found at the provided path
func LoadConfig(filePath string) (*Config, error) {
	cfg := &Config{}
	err := common.LoadTomlFile(cfg, filePath)
	if err != nil {
		return nil, fmt.Errorf("%w while loading config file %s", err, filePath)
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Contract.DeployGasLimit == 0 {
		cfg.Contract.DeployGasLimit = defaultDeployGasLimit
	}
	if cfg.Contract.CallGasLimit == 0 {
		cfg.Contract.CallGasLimit = defaultCallGasLimit
	}
	if len(cfg.Contract.StateFile) == 0 {
		cfg.Contract.StateFile = defaultStateFile
	}
	if cfg.Gateway.StatusPollingIntervalInMs == 0 {
		cfg.Gateway.StatusPollingIntervalInMs = defaultStatusPollingIntervalInMs
	}
}
