package config

// GatewayConfig holds the settings of the connection to the network gateway
type GatewayConfig struct {
	URL                       string
	RequestTimeoutInSeconds   uint32
	StatusPollingIntervalInMs uint32
	ForceTransactionVersion   uint32
}

// WalletConfig holds the location of the sender key
type WalletConfig struct {
	PemFile  string
	KeyIndex int
}

// ContractConfig holds the settings of the fee contract
type ContractConfig struct {
	CodePath       string
	StateFile      string
	DeployGasLimit uint64
	CallGasLimit   uint64
}

// ScenarioConfig holds the tokens used by the fee scenarios
type ScenarioConfig struct {
	Token       string
	FeeToken    string
	TokenAmount string
	FeeAmount   string
	FeePercent  uint32
}

// ChainSimulatorConfig holds the settings of the local chain simulator
type ChainSimulatorConfig struct {
	RestApiInterface   string
	ChainID            string
	MinGasPrice        uint64
	MinGasLimit        uint64
	GasPerDataByte     uint64
	InitialEGLDBalance string
	InitialAccounts    []InitialAccountConfig
	CorsAllowedOrigins []string
	Antiflood          WebServerAntifloodConfig
	ApiRoutes          ApiRoutesConfig
}

// WebServerAntifloodConfig will hold the anti-flooding parameters for the web server
type WebServerAntifloodConfig struct {
	SimultaneousRequests         uint32
	SameSourceRequests           uint32
	SameSourceResetIntervalInSec uint32
	EndpointsThrottlers          []EndpointsThrottlersConfig
}

// EndpointsThrottlersConfig holds the limits of one REST endpoint, replacing the server wide ones for that endpoint
type EndpointsThrottlersConfig struct {
	Endpoint           string
	MaxNumGoRoutines   uint32
	SameSourceRequests uint32
}

// ApiRoutesConfig holds the configuration related to Rest API routes
type ApiRoutesConfig struct {
	Logging     ApiLoggingConfig
	APIPackages map[string]APIPackageConfig
}

// ApiLoggingConfig holds the configuration related to API requests logging
type ApiLoggingConfig struct {
	LoggingEnabled          bool
	ThresholdInMicroSeconds int
}

// APIPackageConfig holds the configuration for the routes of each package
type APIPackageConfig struct {
	Routes []RouteConfig
}

// RouteConfig holds the configuration for a single route
type RouteConfig struct {
	Name string
	Open bool
}

// InitialAccountConfig holds the genesis balances of one simulator account
type InitialAccountConfig struct {
	Address  string
	Balances []TokenBalanceConfig
}

// TokenBalanceConfig holds the balance of one token
type TokenBalanceConfig struct {
	Token  string
	Amount string
}

// Config will hold the whole interactor configuration
type Config struct {
	Gateway        GatewayConfig
	Wallet         WalletConfig
	Contract       ContractConfig
	Scenario       ScenarioConfig
	ChainSimulator ChainSimulatorConfig
}
