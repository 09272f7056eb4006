package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file should error", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "missing.toml")
	})
	t.Run("defaults are applied for missing values", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[Gateway]
    URL = "http://127.0.0.1:7950"

[Scenario]
    Token = "TOKENTEST-b0b548"
`
		require.Nil(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path)
		require.Nil(t, err)
		assert.Equal(t, "http://127.0.0.1:7950", cfg.Gateway.URL)
		assert.Equal(t, "TOKENTEST-b0b548", cfg.Scenario.Token)
		assert.Equal(t, uint64(defaultDeployGasLimit), cfg.Contract.DeployGasLimit)
		assert.Equal(t, uint64(defaultCallGasLimit), cfg.Contract.CallGasLimit)
		assert.Equal(t, defaultStateFile, cfg.Contract.StateFile)
		assert.Equal(t, uint32(defaultStatusPollingIntervalInMs), cfg.Gateway.StatusPollingIntervalInMs)
	})
	t.Run("interactor config file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig("../cmd/interactor/config/config.toml")
		require.Nil(t, err)
		assert.Equal(t, "http://127.0.0.1:8085", cfg.Gateway.URL)
		assert.Equal(t, uint32(60), cfg.Gateway.RequestTimeoutInSeconds)
		assert.Equal(t, "./walletNew.pem", cfg.Wallet.PemFile)
		assert.Equal(t, uint64(35000000), cfg.Contract.DeployGasLimit)
		assert.Equal(t, "XMAS-43a751", cfg.Scenario.FeeToken)
		assert.Equal(t, uint32(100), cfg.Scenario.FeePercent)
	})
	t.Run("chain simulator config file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig("../cmd/chainsimulator/config/config.toml")
		require.Nil(t, err)

		simulatorConfig := cfg.ChainSimulator
		assert.Equal(t, "127.0.0.1:8085", simulatorConfig.RestApiInterface)
		assert.Equal(t, "chain", simulatorConfig.ChainID)
		assert.Equal(t, []string{"*"}, simulatorConfig.CorsAllowedOrigins)
		require.Len(t, simulatorConfig.InitialAccounts, 1)
		assert.Equal(t, []TokenBalanceConfig{
			{Token: "TOKENTEST-b0b548", Amount: "1000000"},
			{Token: "XMAS-43a751", Amount: "1000000"},
		}, simulatorConfig.InitialAccounts[0].Balances)
		assert.Equal(t, uint32(100), simulatorConfig.Antiflood.SimultaneousRequests)
		require.Len(t, simulatorConfig.Antiflood.EndpointsThrottlers, 2)
		assert.Equal(t, EndpointsThrottlersConfig{
			Endpoint:           "/transaction/send",
			MaxNumGoRoutines:   10,
			SameSourceRequests: 1000,
		}, simulatorConfig.Antiflood.EndpointsThrottlers[0])
		assert.Equal(t, []RouteConfig{{Name: "/query", Open: true}}, simulatorConfig.ApiRoutes.APIPackages["vm-values"].Routes)
		assert.Len(t, simulatorConfig.ApiRoutes.APIPackages["address"].Routes, 2)
	})
}
