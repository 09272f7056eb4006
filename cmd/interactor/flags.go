package main

import (
	"github.com/urfave/cli"
)

var (
	filePathPlaceholder = "[path]"
	// configurationFile defines a flag for the path to the main toml configuration file
	configurationFile = cli.StringFlag{
		Name: "config",
		Usage: "The `" + filePathPlaceholder + "` for the main configuration file. This TOML file contains the " +
			"gateway, wallet, contract and scenario settings.",
		Value: "./config/config.toml",
	}
	// logLevel defines the logger level
	logLevel = cli.StringFlag{
		Name: "log-level",
		Usage: "This flag specifies the logger `level(s)`. It can contain multiple comma-separated value. For example" +
			", if set to *:INFO the logs for all packages will have the INFO level. However, if set to *:INFO,api:DEBUG" +
			" the logs for all packages will have the INFO level, excepting the api package which will receive a DEBUG" +
			" log level.",
		Value: "*:INFO",
	}
	// pemFile overrides the wallet pem file from the configuration
	pemFile = cli.StringFlag{
		Name:  "pem",
		Usage: "The `" + filePathPlaceholder + "` for the pem file of the sender. Overrides the configured value.",
	}
	// stateFile overrides the state file from the configuration
	stateFile = cli.StringFlag{
		Name:  "state",
		Usage: "The `" + filePathPlaceholder + "` for the file persisting the deployed contract address. Overrides the configured value.",
	}
	// codeFile overrides the contract code location from the configuration
	codeFile = cli.StringFlag{
		Name:  "wasm",
		Usage: "The `" + filePathPlaceholder + "` for the contract code, a .wasm or a .mxsc.json file. Overrides the configured value.",
	}
	// gatewayURL overrides the gateway URL from the configuration
	gatewayURL = cli.StringFlag{
		Name:  "gateway",
		Usage: "The gateway `URL`. Overrides the configured value.",
	}

	tokenFlag = cli.StringFlag{
		Name:  "token",
		Usage: "The token `identifier` the fee applies to, or the one to transfer",
	}
	feeTokenFlag = cli.StringFlag{
		Name:  "fee-token",
		Usage: "The token `identifier` the exact value fee is paid in",
	}
	feeAmountFlag = cli.StringFlag{
		Name:  "fee-amount",
		Usage: "The fee `amount`, in the smallest denomination of the fee token",
	}
	feePercentFlag = cli.UintFlag{
		Name:  "fee-percent",
		Usage: "The retained fee `percent`, out of 10000",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "The `amount` to transfer, in the smallest denomination of the token",
	}
)

func getFlags() []cli.Flag {
	return []cli.Flag{
		configurationFile,
		logLevel,
		pemFile,
		stateFile,
		codeFile,
		gatewayURL,
	}
}

func applyFlags(ctx *cli.Context, cfg *configOverrides) {
	cfg.pemFile = ctx.GlobalString(pemFile.Name)
	cfg.stateFile = ctx.GlobalString(stateFile.Name)
	cfg.codeFile = ctx.GlobalString(codeFile.Name)
	cfg.gatewayURL = ctx.GlobalString(gatewayURL.Name)
}
