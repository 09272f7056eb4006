package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/multiversx/mx-chain-core-go/core"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-esdt-fee-interactor/abi"
	"github.com/multiversx/mx-esdt-fee-interactor/common"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/multiversx/mx-esdt-fee-interactor/data"
	"github.com/multiversx/mx-esdt-fee-interactor/gateway"
	"github.com/multiversx/mx-esdt-fee-interactor/process/interactor"
	"github.com/multiversx/mx-esdt-fee-interactor/process/outcome"
	"github.com/multiversx/mx-esdt-fee-interactor/process/txBuilder"
	"github.com/multiversx/mx-esdt-fee-interactor/state"
	"github.com/multiversx/mx-esdt-fee-interactor/wallet"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	errMissingCommand = errors.New("no command provided")
	errUnknownCommand = errors.New("unknown command")
)

type configOverrides struct {
	pemFile    string
	stateFile  string
	codeFile   string
	gatewayURL string
}

// appVersion should be populated at build time using ldflags
var appVersion = "undefined"

func main() {
	_ = logger.SetDisplayByteSlice(logger.ToHexShort)

	app := createApp()
	err := app.Run(os.Args)
	if err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func createApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ESDT transfer with fee interactor"
	app.Version = appVersion
	app.Usage = "Deploys and drives the esdt-transfer-with-fee contract through a gateway"
	app.Flags = getFlags()
	app.Before = func(c *cli.Context) error {
		return logger.SetLogLevel(c.GlobalString(logLevel.Name))
	}
	app.Action = missingOrUnknownCommand
	app.Commands = []cli.Command{
		{
			Name:   "deploy",
			Usage:  "deploys a new instance of the contract and records its address",
			Action: withInteractor(deploy, true),
		},
		{
			Name:    "set-exact-fee",
			Aliases: []string{"setExactValueFee"},
			Usage:   "requires each transfer of --token to be accompanied by --fee-amount of --fee-token, missing flags default to the [Scenario] config",
			Flags:   []cli.Flag{tokenFlag, feeTokenFlag, feeAmountFlag},
			Action:  withInteractor(setExactValueFee, false),
		},
		{
			Name:    "set-percentage-fee",
			Aliases: []string{"setPercentageFee"},
			Usage:   "retains --fee-percent out of 10000 of each transfer of --token, missing flags default to the [Scenario] config",
			Flags:   []cli.Flag{tokenFlag, feePercentFlag},
			Action:  withInteractor(setPercentageFee, false),
		},
		{
			Name:   "transfer",
			Usage:  "transfers --amount of --token together with --fee-amount of --fee-token back to the sender",
			Flags:  []cli.Flag{tokenFlag, amountFlag, feeTokenFlag, feeAmountFlag},
			Action: withInteractor(transfer, false),
		},
		{
			Name:    "claim-fees",
			Aliases: []string{"claimFees"},
			Usage:   "sends the collected fees to the contract owner",
			Action:  withInteractor(claimFees, false),
		},
		{
			Name:    "get-token-fee",
			Aliases: []string{"getTokenFee"},
			Usage:   "queries the fee configured for --token",
			Flags:   []cli.Flag{tokenFlag},
			Action:  withInteractor(getTokenFee, false),
		},
		{
			Name:    "get-paid-fees",
			Aliases: []string{"getPaidFees"},
			Usage:   "queries the collected and not yet claimed fees",
			Action:  withInteractor(getPaidFees, false),
		},
		{
			Name:   "scenarios",
			Usage:  "runs the fee scenarios, each on a newly deployed contract",
			Action: withInteractor(runScenarios, true),
		},
	}

	return app
}

// missingOrUnknownCommand is reached only when the first argument names no command
func missingOrUnknownCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		_ = cli.ShowAppHelp(c)
		return errMissingCommand
	}

	return fmt.Errorf("%w %q", errUnknownCommand, c.Args().First())
}

type interactorHandler interface {
	Deploy(ctx context.Context) (string, error)
	SetExactValueFee(ctx context.Context, feeToken string, feeAmount *big.Int, token string) (*data.Outcome, error)
	SetPercentageFee(ctx context.Context, feePercent uint32, token string) (*data.Outcome, error)
	TransferWithFee(ctx context.Context, token string, amount *big.Int, feeToken string, feeAmount *big.Int) (*data.Outcome, error)
	ClaimFees(ctx context.Context) (*data.Outcome, error)
	TokenFee(ctx context.Context, token string) (*data.TokenFee, error)
	PaidFees(ctx context.Context) ([]data.PaidFee, error)
	RunScenarios(ctx context.Context, scenarios []interactor.Scenario) error
}

type commandFunc func(ctx context.Context, c *cli.Context, cfg *config.Config, ci interactorHandler) error

func withInteractor(command commandFunc, needsCode bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.LoadConfig(c.GlobalString(configurationFile.Name))
		if err != nil {
			return err
		}

		overrides := &configOverrides{}
		applyFlags(c, overrides)
		applyOverrides(cfg, overrides)

		return runWithInteractor(cfg, needsCode, func(ci interactorHandler) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return command(ctx, c, cfg, ci)
		})
	}
}

// runWithInteractor loads the persisted state before anything else so that it is written back
// on every exit path, including the ones where the interactor could not be created
func runWithInteractor(cfg *config.Config, needsCode bool, run func(ci interactorHandler) error) error {
	addressConverter, err := common.NewAddressConverter()
	if err != nil {
		return err
	}

	persistedState, err := state.LoadPersistedState(cfg.Contract.StateFile, addressConverter)
	if err != nil {
		return err
	}
	defer func() {
		errClose := persistedState.Close()
		if errClose != nil {
			log.Error("cannot persist the interactor state", "path", cfg.Contract.StateFile, "error", errClose)
		}
	}()

	ci, err := createInteractor(cfg, needsCode, persistedState, addressConverter)
	if err != nil {
		return err
	}

	return run(ci)
}

func applyOverrides(cfg *config.Config, overrides *configOverrides) {
	if len(overrides.pemFile) > 0 {
		cfg.Wallet.PemFile = overrides.pemFile
	}
	if len(overrides.stateFile) > 0 {
		cfg.Contract.StateFile = overrides.stateFile
	}
	if len(overrides.codeFile) > 0 {
		cfg.Contract.CodePath = overrides.codeFile
	}
	if len(overrides.gatewayURL) > 0 {
		cfg.Gateway.URL = overrides.gatewayURL
	}
}

func createInteractor(
	cfg *config.Config,
	needsCode bool,
	stateHandler interactor.StateHandler,
	addressConverter core.PubkeyConverter,
) (interactorHandler, error) {
	var code []byte
	var err error
	if needsCode {
		code, err = common.LoadContractCode(cfg.Contract.CodePath)
		if err != nil {
			return nil, err
		}
	}

	senderWallet, err := wallet.LoadWalletFromPemFile(cfg.Wallet.PemFile, cfg.Wallet.KeyIndex, addressConverter)
	if err != nil {
		return nil, err
	}

	client, err := gateway.NewGatewayClient(gateway.ArgsGatewayClient{
		URL:                   cfg.Gateway.URL,
		RequestTimeout:        time.Duration(cfg.Gateway.RequestTimeoutInSeconds) * time.Second,
		StatusPollingInterval: time.Duration(cfg.Gateway.StatusPollingIntervalInMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	serializer := abi.NewDefaultSerializer()
	builder, err := txBuilder.NewTxBuilder(txBuilder.ArgsTxBuilder{
		Serializer:       serializer,
		AddressConverter: addressConverter,
	})
	if err != nil {
		return nil, err
	}

	classifier, err := outcome.NewOutcomeClassifier(addressConverter)
	if err != nil {
		return nil, err
	}

	log.Info("interactor created", "sender", senderWallet.Bech32Address(), "gateway", cfg.Gateway.URL)

	ci, err := interactor.NewContractInteractor(interactor.ArgsContractInteractor{
		Gateway:                 client,
		Wallet:                  senderWallet,
		State:                   stateHandler,
		Builder:                 builder,
		Classifier:              classifier,
		Serializer:              serializer,
		AddressConverter:        addressConverter,
		ContractCode:            code,
		DeployGasLimit:          cfg.Contract.DeployGasLimit,
		CallGasLimit:            cfg.Contract.CallGasLimit,
		ForceTransactionVersion: cfg.Gateway.ForceTransactionVersion,
	})
	if err != nil {
		return nil, err
	}

	return ci, nil
}

func deploy(ctx context.Context, _ *cli.Context, _ *config.Config, ci interactorHandler) error {
	address, err := ci.Deploy(ctx)
	if err != nil {
		return err
	}

	fmt.Println("new address:", address)

	return nil
}

func setExactValueFee(ctx context.Context, c *cli.Context, cfg *config.Config, ci interactorHandler) error {
	token := valueOrDefault(c.String(tokenFlag.Name), cfg.Scenario.Token)
	feeToken := valueOrDefault(c.String(feeTokenFlag.Name), cfg.Scenario.FeeToken)

	feeAmount, err := parseAmount(valueOrDefault(c.String(feeAmountFlag.Name), cfg.Scenario.FeeAmount))
	if err != nil {
		return err
	}

	result, err := ci.SetExactValueFee(ctx, feeToken, feeAmount, token)
	if err != nil {
		return err
	}

	return printOutcome(result)
}

func setPercentageFee(ctx context.Context, c *cli.Context, cfg *config.Config, ci interactorHandler) error {
	feePercent := cfg.Scenario.FeePercent
	if c.IsSet(feePercentFlag.Name) {
		feePercent = uint32(c.Uint(feePercentFlag.Name))
	}

	result, err := ci.SetPercentageFee(ctx, feePercent, valueOrDefault(c.String(tokenFlag.Name), cfg.Scenario.Token))
	if err != nil {
		return err
	}

	return printOutcome(result)
}

func transfer(ctx context.Context, c *cli.Context, cfg *config.Config, ci interactorHandler) error {
	token := valueOrDefault(c.String(tokenFlag.Name), cfg.Scenario.Token)
	feeToken := valueOrDefault(c.String(feeTokenFlag.Name), cfg.Scenario.FeeToken)

	amount, err := parseAmount(valueOrDefault(c.String(amountFlag.Name), cfg.Scenario.TokenAmount))
	if err != nil {
		return err
	}
	feeAmount, err := parseAmount(valueOrDefault(c.String(feeAmountFlag.Name), cfg.Scenario.FeeAmount))
	if err != nil {
		return err
	}

	result, err := ci.TransferWithFee(ctx, token, amount, feeToken, feeAmount)
	if err != nil {
		return err
	}

	return printOutcome(result)
}

func claimFees(ctx context.Context, _ *cli.Context, _ *config.Config, ci interactorHandler) error {
	result, err := ci.ClaimFees(ctx)
	if err != nil {
		return err
	}

	return printOutcome(result)
}

func getTokenFee(ctx context.Context, c *cli.Context, cfg *config.Config, ci interactorHandler) error {
	fee, err := ci.TokenFee(ctx, valueOrDefault(c.String(tokenFlag.Name), cfg.Scenario.Token))
	if err != nil {
		return err
	}

	fmt.Println("token fee:", fee.String())
	log.Debug("raw token fee", "dump", spew.Sdump(fee))

	return nil
}

func getPaidFees(ctx context.Context, _ *cli.Context, _ *config.Config, ci interactorHandler) error {
	paidFees, err := ci.PaidFees(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("paid fees (%d):\n", len(paidFees))
	for _, paidFee := range paidFees {
		fmt.Printf("  %s-%d: %s\n", paidFee.TokenIdentifier, paidFee.Nonce, paidFee.Amount.String())
	}
	log.Debug("paid fees", "raw", spew.Sdump(paidFees))

	return nil
}

func runScenarios(ctx context.Context, _ *cli.Context, cfg *config.Config, ci interactorHandler) error {
	scenarios := interactor.DefaultScenarios(interactor.ScenarioTokens{
		Token:    cfg.Scenario.Token,
		FeeToken: cfg.Scenario.FeeToken,
	})

	err := ci.RunScenarios(ctx, scenarios)
	if err != nil {
		return err
	}

	fmt.Printf("all %d scenarios passed\n", len(scenarios))

	return nil
}

func printOutcome(result *data.Outcome) error {
	fmt.Println(result.String())
	log.Debug("raw outcome", "dump", spew.Sdump(result))
	if !result.IsSuccess() {
		return result.Failure
	}

	return nil
}

func parseAmount(value string) (*big.Int, error) {
	amount, ok := big.NewInt(0).SetString(value, 10)
	if !ok || amount.Sign() < 0 {
		return nil, errors.Errorf("invalid amount %q", value)
	}

	return amount, nil
}

func valueOrDefault(value string, defaultValue string) string {
	if len(value) > 0 {
		return value
	}

	return defaultValue
}
