package groups

import (
	"path"

	"github.com/gin-gonic/gin"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
)

var log = logger.GetOrCreate("api/groups")

type baseGroup struct {
	endpoints []*shared.EndpointHandlerData
}

// GetEndpoints returns all the endpoints specific to the group
func (bg *baseGroup) GetEndpoints() []*shared.EndpointHandlerData {
	return bg.endpoints
}

// RegisterRoutes registers the endpoints opened in the package config of the group. A package missing from the
// config keeps all its endpoints closed.
func (bg *baseGroup) RegisterRoutes(
	ws *gin.RouterGroup,
	apiConfig config.ApiRoutesConfig,
	additionalMiddlewares []shared.MiddlewareProcessor,
) {
	packageName := path.Base(ws.BasePath())
	openRoutes := openRoutesOfPackage(apiConfig, packageName)

	for _, handlerData := range bg.endpoints {
		if !openRoutes[handlerData.Path] {
			log.Debug("endpoint is closed", "package", packageName, "path", handlerData.Path)
			continue
		}

		handlers := make([]gin.HandlerFunc, 0, len(additionalMiddlewares)+1)
		for _, middleware := range additionalMiddlewares {
			if middleware == nil || middleware.IsInterfaceNil() {
				continue
			}
			handlers = append(handlers, middleware.MiddlewareHandlerFunc())
		}
		handlers = append(handlers, handlerData.Handler)

		ws.Handle(handlerData.Method, handlerData.Path, handlers...)
		log.Trace("endpoint registered", "method", handlerData.Method, "path", path.Join(ws.BasePath(), handlerData.Path))
	}
}

func openRoutesOfPackage(apiConfig config.ApiRoutesConfig, packageName string) map[string]bool {
	packageConfig, ok := apiConfig.APIPackages[packageName]
	if !ok {
		return nil
	}

	openRoutes := make(map[string]bool, len(packageConfig.Routes))
	for _, route := range packageConfig.Routes {
		openRoutes[route.Name] = route.Open
	}

	return openRoutes
}

// IsInterfaceNil returns true if there is no value under the interface
func (bg *baseGroup) IsInterfaceNil() bool {
	return bg == nil
}
