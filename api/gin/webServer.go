package gin

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
	apiErrors "github.com/multiversx/mx-esdt-fee-interactor/api/errors"
	"github.com/multiversx/mx-esdt-fee-interactor/api/groups"
	"github.com/multiversx/mx-esdt-fee-interactor/api/middleware"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

var log = logger.GetOrCreate("api/gin")

// ArgsNewWebServer holds the arguments needed to create a new instance of webServer
type ArgsNewWebServer struct {
	Facade             shared.FacadeHandler
	RestApiInterface   string
	ApiConfig          config.ApiRoutesConfig
	AntiFloodConfig    config.WebServerAntifloodConfig
	CorsAllowedOrigins []string
	MetricsRegistry    *prometheus.Registry
	DebugMode          bool
}

type webServer struct {
	sync.RWMutex
	facade             shared.FacadeHandler
	restApiInterface   string
	apiConfig          config.ApiRoutesConfig
	antiFloodConfig    config.WebServerAntifloodConfig
	corsAllowedOrigins []string
	metricsRegistry    *prometheus.Registry
	debugMode          bool
	httpServer         shared.HttpServerCloser
	groups             map[string]shared.GroupHandler
	cancelFunc         func()
}

// NewGinWebServerHandler returns a new instance of webServer
func NewGinWebServerHandler(args ArgsNewWebServer) (*webServer, error) {
	err := checkArgs(args)
	if err != nil {
		return nil, err
	}

	return &webServer{
		facade:             args.Facade,
		restApiInterface:   args.RestApiInterface,
		apiConfig:          args.ApiConfig,
		antiFloodConfig:    args.AntiFloodConfig,
		corsAllowedOrigins: args.CorsAllowedOrigins,
		metricsRegistry:    args.MetricsRegistry,
		debugMode:          args.DebugMode,
	}, nil
}

func checkArgs(args ArgsNewWebServer) error {
	if check.IfNil(args.Facade) {
		return apiErrors.ErrNilFacadeHandler
	}
	if len(args.RestApiInterface) == 0 {
		return fmt.Errorf("%w: empty rest api interface", apiErrors.ErrCannotCreateGinWebServer)
	}
	if args.MetricsRegistry == nil {
		return fmt.Errorf("%w: nil metrics registry", apiErrors.ErrCannotCreateGinWebServer)
	}

	return nil
}

// CreateEngine builds the gin engine with all the middlewares and the open routes
func (ws *webServer) CreateEngine() (*gin.Engine, error) {
	ws.Lock()
	defer ws.Unlock()

	return ws.createEngine()
}

func (ws *webServer) createEngine() (*gin.Engine, error) {
	if !ws.debugMode {
		gin.DefaultWriter = &ginWriter{}
		gin.DefaultErrorWriter = &ginErrorWriter{}
		gin.DisableConsoleColor()
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(ws.createCorsConfig()))

	processors, err := ws.createMiddlewareLimiters()
	if err != nil {
		return nil, err
	}

	for _, proc := range processors {
		if check.IfNil(proc) {
			continue
		}

		engine.Use(proc.MiddlewareHandlerFunc())
	}

	err = ws.createGroups()
	if err != nil {
		return nil, err
	}

	ws.registerRoutes(engine)

	return engine, nil
}

// StartHttpServer will create a new instance of http.Server, populate it with all the routes and start it
func (ws *webServer) StartHttpServer() error {
	ws.Lock()
	defer ws.Unlock()

	engine, err := ws.createEngine()
	if err != nil {
		return err
	}

	server := &http.Server{Addr: ws.restApiInterface, Handler: engine}
	log.Debug("creating gin web sever", "interface", ws.restApiInterface)
	ws.httpServer, err = NewHttpServer(server)
	if err != nil {
		return err
	}

	log.Debug("starting web server",
		"SimultaneousRequests", ws.antiFloodConfig.SimultaneousRequests,
		"SameSourceRequests", ws.antiFloodConfig.SameSourceRequests,
		"SameSourceResetIntervalInSec", ws.antiFloodConfig.SameSourceResetIntervalInSec,
	)

	go ws.httpServer.Start()

	return nil
}

func (ws *webServer) createCorsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(ws.corsAllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}

	for _, origin := range ws.corsAllowedOrigins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
	}
	corsConfig.AllowOrigins = ws.corsAllowedOrigins

	return corsConfig
}

func (ws *webServer) createGroups() error {
	groupsMap := make(map[string]shared.GroupHandler)

	addressGroup, err := groups.NewAddressGroup(ws.facade)
	if err != nil {
		return err
	}
	groupsMap["address"] = addressGroup

	networkGroup, err := groups.NewNetworkGroup(ws.facade)
	if err != nil {
		return err
	}
	groupsMap["network"] = networkGroup

	transactionGroup, err := groups.NewTransactionGroup(ws.facade)
	if err != nil {
		return err
	}
	groupsMap["transaction"] = transactionGroup

	vmValuesGroup, err := groups.NewVmValuesGroup(ws.facade)
	if err != nil {
		return err
	}
	groupsMap["vm-values"] = vmValuesGroup

	ws.groups = groupsMap

	return nil
}

func (ws *webServer) registerRoutes(ginRouter *gin.Engine) {
	for groupName, groupHandler := range ws.groups {
		log.Debug("registering gin API group", "group name", groupName)
		ginGroup := ginRouter.Group(fmt.Sprintf("/%s", groupName))
		groupHandler.RegisterRoutes(ginGroup, ws.apiConfig, nil)
	}

	ginRouter.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(ws.metricsRegistry, promhttp.HandlerOpts{})))
}

func (ws *webServer) createMiddlewareLimiters() ([]shared.MiddlewareProcessor, error) {
	middlewares := make([]shared.MiddlewareProcessor, 0)

	if ws.apiConfig.Logging.LoggingEnabled {
		responseLoggerMiddleware := middleware.NewResponseLoggerMiddleware(time.Duration(ws.apiConfig.Logging.ThresholdInMicroSeconds) * time.Microsecond)
		middlewares = append(middlewares, responseLoggerMiddleware)
	}

	metricsMiddleware, err := middleware.NewMetricsMiddleware(ws.metricsRegistry)
	if err != nil {
		return nil, err
	}
	middlewares = append(middlewares, metricsMiddleware)

	sourceLimiter, err := middleware.NewSourceThrottler(ws.antiFloodConfig.SameSourceRequests, ws.antiFloodConfig.EndpointsThrottlers)
	if err != nil {
		return nil, err
	}

	if ws.cancelFunc != nil {
		ws.cancelFunc()
	}
	var ctx context.Context
	ctx, ws.cancelFunc = context.WithCancel(context.Background())

	go ws.sourceLimiterReset(ctx, sourceLimiter)

	middlewares = append(middlewares, sourceLimiter)

	globalLimiter, err := middleware.NewGlobalThrottler(ws.antiFloodConfig.SimultaneousRequests, ws.antiFloodConfig.EndpointsThrottlers)
	if err != nil {
		return nil, err
	}

	middlewares = append(middlewares, globalLimiter)

	return middlewares, nil
}

func (ws *webServer) sourceLimiterReset(ctx context.Context, reset middleware.ResetHandler) {
	betweenResetDuration := time.Second * time.Duration(ws.antiFloodConfig.SameSourceResetIntervalInSec)
	if betweenResetDuration == 0 {
		betweenResetDuration = time.Second
	}

	timer := time.NewTimer(betweenResetDuration)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			log.Trace("calling reset on WS source limiter")
			reset.Reset()
			timer.Reset(betweenResetDuration)
		case <-ctx.Done():
			log.Debug("closing webServer.sourceLimiterReset go routine")
			return
		}
	}
}

// Close will handle the closing of inner components
func (ws *webServer) Close() error {
	ws.Lock()
	defer ws.Unlock()

	if ws.cancelFunc != nil {
		ws.cancelFunc()
	}

	if check.IfNil(ws.httpServer) {
		return nil
	}

	err := ws.httpServer.Close()
	if err != nil {
		err = fmt.Errorf("%w while closing the http server in gin/webServer", err)
	}

	return err
}

// IsInterfaceNil returns true if there is no value under the interface
func (ws *webServer) IsInterfaceNil() bool {
	return ws == nil
}
