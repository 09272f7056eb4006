package interactor_test

import (
	"bytes"
	"context"
	"math/big"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core"
	vmcommon "github.com/multiversx/mx-chain-vm-common-go"
	apiGin "github.com/multiversx/mx-esdt-fee-interactor/api/gin"
	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/multiversx/mx-esdt-fee-interactor/gateway"
	"github.com/multiversx/mx-esdt-fee-interactor/node/chainSimulator"
	"github.com/multiversx/mx-esdt-fee-interactor/node/chainSimulator/dtos"
	"github.com/multiversx/mx-esdt-fee-interactor/process/interactor"
	"github.com/multiversx/mx-esdt-fee-interactor/process/outcome"
	"github.com/multiversx/mx-esdt-fee-interactor/process/txBuilder"
	"github.com/multiversx/mx-esdt-fee-interactor/state"
	"github.com/multiversx/mx-esdt-fee-interactor/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "TOKENTEST-b0b548"
	testFeeToken = "XMAS-43a751"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type simulatorSetup struct {
	server    *httptest.Server
	converter core.PubkeyConverter
}

func startSimulator(t *testing.T, fundedAddresses ...string) *simulatorSetup {
	converter, err := common.NewAddressConverter()
	require.Nil(t, err)

	sim, err := chainSimulator.NewChainSimulator(chainSimulator.ArgsChainSimulator{
		ChainID:               "chain",
		MinGasPrice:           1000000000,
		MinGasLimit:           50000,
		GasPerDataByte:        1500,
		MinTransactionVersion: 1,
		AddressConverter:      converter,
	})
	require.Nil(t, err)

	states := make([]*dtos.AddressState, 0, len(fundedAddresses))
	for _, address := range fundedAddresses {
		states = append(states, &dtos.AddressState{
			Address: address,
			Balance: "1000000000000000000000",
			ESDTBalances: map[string]string{
				testToken:    "1000000",
				testFeeToken: "1000000",
			},
		})
	}
	require.Nil(t, sim.SetStateMultiple(states))

	allRoutesOpen := config.ApiRoutesConfig{
		APIPackages: map[string]config.APIPackageConfig{
			"network":     {Routes: []config.RouteConfig{{Name: "/config", Open: true}}},
			"address":     {Routes: []config.RouteConfig{{Name: "/:address", Open: true}}},
			"vm-values":   {Routes: []config.RouteConfig{{Name: "/query", Open: true}}},
			"transaction": {Routes: []config.RouteConfig{{Name: "/send", Open: true}, {Name: "/:txhash", Open: true}, {Name: "/:txhash/process-status", Open: true}}},
		},
	}
	webServer, err := apiGin.NewGinWebServerHandler(apiGin.ArgsNewWebServer{
		Facade:           sim,
		RestApiInterface: "127.0.0.1:0",
		ApiConfig:        allRoutesOpen,
		AntiFloodConfig: config.WebServerAntifloodConfig{
			SimultaneousRequests:         100,
			SameSourceRequests:           100000,
			SameSourceResetIntervalInSec: 1,
		},
		MetricsRegistry: prometheus.NewRegistry(),
		DebugMode:       true,
	})
	require.Nil(t, err)

	engine, err := webServer.CreateEngine()
	require.Nil(t, err)

	server := httptest.NewServer(engine)
	t.Cleanup(func() {
		server.Close()
		_ = webServer.Close()
		_ = sim.Close()
	})

	return &simulatorSetup{
		server:    server,
		converter: converter,
	}
}

type feeInteractor interface {
	Deploy(ctx context.Context) (string, error)
	SetExactValueFee(ctx context.Context, feeToken string, feeAmount *big.Int, token string) (*data.Outcome, error)
	SetPercentageFee(ctx context.Context, feePercent uint32, token string) (*data.Outcome, error)
	TransferWithFee(ctx context.Context, token string, amount *big.Int, feeToken string, feeAmount *big.Int) (*data.Outcome, error)
	Transfer(ctx context.Context, payments ...data.EsdtPayment) (*data.Outcome, error)
	TransferNative(ctx context.Context, value *big.Int) (*data.Outcome, error)
	ClaimFees(ctx context.Context) (*data.Outcome, error)
	TokenFee(ctx context.Context, token string) (*data.TokenFee, error)
	PaidFees(ctx context.Context) ([]data.PaidFee, error)
	AssertExpected(outcome *data.Outcome, expected *data.DeclaredFailure) error
	RunScenarios(ctx context.Context, scenarios []interactor.Scenario) error
}

func createInteractor(t *testing.T, seed byte) (feeInteractor, interactor.StateHandler, string) {
	converter, err := common.NewAddressConverter()
	require.Nil(t, err)

	w, err := wallet.NewWalletFromSecretKey(bytes.Repeat([]byte{seed}, 32), converter)
	require.Nil(t, err)

	setup := startSimulator(t, w.Bech32Address())

	client, err := gateway.NewGatewayClient(gateway.ArgsGatewayClient{
		URL:                   setup.server.URL,
		RequestTimeout:        time.Second * 10,
		StatusPollingInterval: time.Millisecond * 10,
	})
	require.Nil(t, err)

	stateFile := filepath.Join(t.TempDir(), "state.toml")
	persistedState, err := state.LoadPersistedState(stateFile, converter)
	require.Nil(t, err)

	serializer := abi.NewDefaultSerializer()
	builder, err := txBuilder.NewTxBuilder(txBuilder.ArgsTxBuilder{
		Serializer:       serializer,
		AddressConverter: converter,
	})
	require.Nil(t, err)

	classifier, err := outcome.NewOutcomeClassifier(converter)
	require.Nil(t, err)

	ci, err := interactor.NewContractInteractor(interactor.ArgsContractInteractor{
		Gateway:          client,
		Wallet:           w,
		State:            persistedState,
		Builder:          builder,
		Classifier:       classifier,
		Serializer:       serializer,
		AddressConverter: converter,
		ContractCode:     []byte("esdt-transfer-with-fee"),
		DeployGasLimit:   35000000,
		CallGasLimit:     30000000,
	})
	require.Nil(t, err)

	return ci, persistedState, stateFile
}

func TestContractInteractor_DefaultScenarios(t *testing.T) {
	t.Parallel()

	ci, _, _ := createInteractor(t, 1)

	scenarios := interactor.DefaultScenarios(interactor.ScenarioTokens{
		Token:    testToken,
		FeeToken: testFeeToken,
	})
	err := ci.RunScenarios(context.Background(), scenarios)
	assert.Nil(t, err)
}

func TestContractInteractor_DeployPersistsAddress(t *testing.T) {
	t.Parallel()

	ci, stateHandler, stateFile := createInteractor(t, 2)

	address, err := ci.Deploy(context.Background())
	require.Nil(t, err)
	require.NotEmpty(t, address)
	require.Nil(t, stateHandler.Close())

	converter, _ := common.NewAddressConverter()
	reloaded, err := state.LoadPersistedState(stateFile, converter)
	require.Nil(t, err)

	currentAddress, err := reloaded.CurrentAddress()
	require.Nil(t, err)
	assert.Equal(t, address, currentAddress)
}

func TestContractInteractor_FeeConfigurationAndQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ci, _, _ := createInteractor(t, 3)

	_, err := ci.Deploy(ctx)
	require.Nil(t, err)

	fee, err := ci.TokenFee(ctx, testToken)
	require.Nil(t, err)
	assert.Equal(t, data.FeeUnset, fee.Type)

	result, err := ci.SetExactValueFee(ctx, testFeeToken, big.NewInt(5), testToken)
	require.Nil(t, err)
	require.Nil(t, ci.AssertExpected(result, nil))

	fee, err = ci.TokenFee(ctx, testToken)
	require.Nil(t, err)
	assert.Equal(t, data.FeeExactValue, fee.Type)
	require.NotNil(t, fee.Payment)
	assert.Equal(t, testFeeToken, fee.Payment.TokenIdentifier)
	assert.Equal(t, uint64(0), fee.Payment.Nonce)
	assert.Equal(t, "5", fee.Payment.Amount.String())

	result, err = ci.TransferWithFee(ctx, testToken, big.NewInt(100), testFeeToken, big.NewInt(5))
	require.Nil(t, err)
	require.Nil(t, ci.AssertExpected(result, nil))

	result, err = ci.TransferWithFee(ctx, testToken, big.NewInt(100), testFeeToken, big.NewInt(5))
	require.Nil(t, err)
	require.Nil(t, ci.AssertExpected(result, nil))

	paidFees, err := ci.PaidFees(ctx)
	require.Nil(t, err)
	require.Len(t, paidFees, 1)
	assert.Equal(t, testFeeToken, paidFees[0].TokenIdentifier)
	assert.Equal(t, "10", paidFees[0].Amount.String())

	result, err = ci.SetPercentageFee(ctx, 250, testToken)
	require.Nil(t, err)
	require.Nil(t, ci.AssertExpected(result, nil))

	fee, err = ci.TokenFee(ctx, testToken)
	require.Nil(t, err)
	assert.Equal(t, data.FeePercentage, fee.Type)
	assert.Equal(t, uint32(250), fee.Percent)

	result, err = ci.ClaimFees(ctx)
	require.Nil(t, err)
	require.Nil(t, ci.AssertExpected(result, nil))

	result, err = ci.ClaimFees(ctx)
	require.Nil(t, err)
	assert.Nil(t, ci.AssertExpected(result, data.NewDeclaredFailure(vmcommon.UserError, "There is nothing to claim")))
}

func TestContractInteractor_CallBeforeDeployShouldError(t *testing.T) {
	t.Parallel()

	ci, _, _ := createInteractor(t, 4)

	_, err := ci.ClaimFees(context.Background())
	assert.Equal(t, state.ErrNotDeployed, err)
}
