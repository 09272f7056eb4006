package main

import (
	"github.com/urfave/cli"
)

var (
	filePathPlaceholder = "[path]"
	// configurationFile defines a flag for the path to the toml file holding the simulator settings
	configurationFile = cli.StringFlag{
		Name: "config",
		Usage: "The `" + filePathPlaceholder + "` for the main configuration file. This TOML file contains the " +
			"network parameters, the genesis accounts and the REST API settings.",
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
	// restApiInterface overrides the configured REST API interface
	restApiInterface = cli.StringFlag{
		Name: "rest-api-interface",
		Usage: "The interface `address and port` to which the REST API will attempt to bind. " +
			"Overrides the configured value.",
	}
	// debugMode starts gin in debug mode
	debugMode = cli.BoolFlag{
		Name:  "debug-mode",
		Usage: "Boolean option for starting the REST API in gin debug mode.",
	}
)

func getFlags() []cli.Flag {
	return []cli.Flag{
		configurationFile,
		logLevel,
		restApiInterface,
		debugMode,
	}
}
