package main

import (
	"io"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	amount, err := parseAmount("1000000000000000000000")
	require.Nil(t, err)
	expected, _ := big.NewInt(0).SetString("1000000000000000000000", 10)
	assert.Equal(t, expected, amount)

	_, err = parseAmount("")
	assert.ErrorContains(t, err, "invalid amount")

	_, err = parseAmount("-1")
	assert.ErrorContains(t, err, "invalid amount")

	_, err = parseAmount("1e3")
	assert.ErrorContains(t, err, "invalid amount")
}

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Gateway:  config.GatewayConfig{URL: "http://127.0.0.1:8085"},
		Wallet:   config.WalletConfig{PemFile: "./walletNew.pem"},
		Contract: config.ContractConfig{CodePath: "./fee.wasm", StateFile: "state.toml"},
	}

	applyOverrides(cfg, &configOverrides{})
	assert.Equal(t, "http://127.0.0.1:8085", cfg.Gateway.URL)
	assert.Equal(t, "./walletNew.pem", cfg.Wallet.PemFile)

	applyOverrides(cfg, &configOverrides{
		pemFile:    "other.pem",
		stateFile:  "other.toml",
		codeFile:   "other.mxsc.json",
		gatewayURL: "https://devnet-gateway.multiversx.com",
	})
	assert.Equal(t, "https://devnet-gateway.multiversx.com", cfg.Gateway.URL)
	assert.Equal(t, "other.pem", cfg.Wallet.PemFile)
	assert.Equal(t, "other.toml", cfg.Contract.StateFile)
	assert.Equal(t, "other.mxsc.json", cfg.Contract.CodePath)
}

func TestValueOrDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "XMAS-43a751", valueOrDefault("", "XMAS-43a751"))
	assert.Equal(t, "TOKENTEST-b0b548", valueOrDefault("TOKENTEST-b0b548", "XMAS-43a751"))
}

func TestCreateApp_CommandErrors(t *testing.T) {
	t.Run("unknown command should error", func(t *testing.T) {
		app := createApp()
		app.Writer = io.Discard
		app.ErrWriter = io.Discard

		err := app.Run([]string{"interactor", "bogus"})
		assert.ErrorIs(t, err, errUnknownCommand)
		assert.ErrorContains(t, err, "bogus")
	})
	t.Run("no command should error", func(t *testing.T) {
		app := createApp()
		app.Writer = io.Discard
		app.ErrWriter = io.Discard

		err := app.Run([]string{"interactor"})
		assert.Equal(t, errMissingCommand, err)
	})
	t.Run("command aliases are known", func(t *testing.T) {
		app := createApp()

		assert.NotNil(t, app.Command("setExactValueFee"))
		assert.NotNil(t, app.Command("get-paid-fees"))
		assert.Nil(t, app.Command("bogus"))
	})
}

func createTestConfig(dir string) *config.Config {
	return &config.Config{
		Gateway: config.GatewayConfig{URL: "http://127.0.0.1:8085"},
		Wallet:  config.WalletConfig{PemFile: filepath.Join(dir, "missing.pem")},
		Contract: config.ContractConfig{
			CodePath:  filepath.Join(dir, "missing.wasm"),
			StateFile: filepath.Join(dir, "state.toml"),
		},
	}
}

func TestRunWithInteractor_StateIsSavedOnCreationErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing contract code should error before the wallet is loaded", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig(t.TempDir())
		runCalled := false
		err := runWithInteractor(cfg, true, func(ci interactorHandler) error {
			runCalled = true
			return nil
		})
		assert.True(t, os.IsNotExist(err))
		assert.ErrorContains(t, err, "missing.wasm")
		assert.False(t, runCalled)

		_, err = os.Stat(cfg.Contract.StateFile)
		assert.Nil(t, err)
	})
	t.Run("missing wallet should error", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig(t.TempDir())
		runCalled := false
		err := runWithInteractor(cfg, false, func(ci interactorHandler) error {
			runCalled = true
			return nil
		})
		assert.ErrorContains(t, err, "missing.pem")
		assert.False(t, runCalled)

		_, err = os.Stat(cfg.Contract.StateFile)
		assert.Nil(t, err)
	})
	t.Run("corrupted state should error without overwriting it", func(t *testing.T) {
		t.Parallel()

		cfg := createTestConfig(t.TempDir())
		require.Nil(t, os.WriteFile(cfg.Contract.StateFile, []byte("contract_address = = ="), 0644))

		err := runWithInteractor(cfg, false, func(ci interactorHandler) error {
			return nil
		})
		assert.NotNil(t, err)

		content, err := os.ReadFile(cfg.Contract.StateFile)
		require.Nil(t, err)
		assert.Equal(t, "contract_address = = =", string(content))
	})
}
