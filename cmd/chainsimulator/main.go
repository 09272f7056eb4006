package main

import (
	"os"
	"os/signal"
	"syscall"

	logger "github.com/multiversx/mx-chain-logger-go"
	apiGin "github.com/multiversx/mx-esdt-fee-interactor/api/gin"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/multiversx/mx-esdt-fee-interactor/node/chainSimulator"
	"github.com/multiversx/mx-esdt-fee-interactor/node/chainSimulator/dtos"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

func main() {
	_ = logger.SetDisplayByteSlice(logger.ToHexShort)

	app := cli.NewApp()
	app.Name = "ESDT transfer with fee chain simulator"
	app.Usage = "Serves a single shard, gateway compatible REST API that executes the esdt-transfer-with-fee " +
		"contract semantics synchronously. Meant for local runs of the interactor."
	app.Flags = getFlags()
	app.Action = startChainSimulator

	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func startChainSimulator(ctx *cli.Context) error {
	err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name))
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(ctx.GlobalString(configurationFile.Name))
	if err != nil {
		return err
	}
	simulatorConfig := cfg.ChainSimulator
	if ctx.GlobalIsSet(restApiInterface.Name) {
		simulatorConfig.RestApiInterface = ctx.GlobalString(restApiInterface.Name)
	}

	addressConverter, err := common.NewAddressConverter()
	if err != nil {
		return err
	}

	simulator, err := chainSimulator.NewChainSimulator(chainSimulator.ArgsChainSimulator{
		ChainID:          simulatorConfig.ChainID,
		MinGasPrice:      simulatorConfig.MinGasPrice,
		MinGasLimit:      simulatorConfig.MinGasLimit,
		GasPerDataByte:   simulatorConfig.GasPerDataByte,
		AddressConverter: addressConverter,
	})
	if err != nil {
		return err
	}

	err = simulator.SetStateMultiple(createInitialStates(simulatorConfig))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	webServer, err := apiGin.NewGinWebServerHandler(apiGin.ArgsNewWebServer{
		Facade:             simulator,
		RestApiInterface:   simulatorConfig.RestApiInterface,
		ApiConfig:          simulatorConfig.ApiRoutes,
		AntiFloodConfig:    simulatorConfig.Antiflood,
		CorsAllowedOrigins: simulatorConfig.CorsAllowedOrigins,
		MetricsRegistry:    registry,
		DebugMode:          ctx.GlobalBool(debugMode.Name),
	})
	if err != nil {
		return err
	}

	err = webServer.StartHttpServer()
	if err != nil {
		return err
	}

	log.Info("chain simulator started",
		"rest api interface", simulatorConfig.RestApiInterface,
		"chain ID", simulatorConfig.ChainID,
		"initial accounts", len(simulatorConfig.InitialAccounts),
	)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	log.Info("terminating at user's signal...")

	err = webServer.Close()
	if err != nil {
		log.Warn("error closing the web server", "error", err)
	}

	return simulator.Close()
}

func createInitialStates(simulatorConfig config.ChainSimulatorConfig) []*dtos.AddressState {
	states := make([]*dtos.AddressState, 0, len(simulatorConfig.InitialAccounts))
	for _, account := range simulatorConfig.InitialAccounts {
		esdtBalances := make(map[string]string, len(account.Balances))
		for _, balance := range account.Balances {
			esdtBalances[balance.Token] = balance.Amount
		}

		states = append(states, &dtos.AddressState{
			Address:      account.Address,
			Balance:      simulatorConfig.InitialEGLDBalance,
			ESDTBalances: esdtBalances,
		})
	}

	return states
}
