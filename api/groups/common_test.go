package groups_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-esdt-fee-interactor/api/shared"
	"github.com/multiversx/mx-esdt-fee-interactor/config"
)

var expectedErr = errors.New("expected err")

func init() {
	gin.SetMode(gin.TestMode)
}

func startWebServer(group shared.GroupHandler, path string, apiConfig config.ApiRoutesConfig) *gin.Engine {
	ws := gin.New()
	routes := ws.Group(path)
	group.RegisterRoutes(routes, apiConfig, nil)

	return ws
}

func loadResponse(rsp io.Reader, destination interface{}) {
	jsonParser := json.NewDecoder(rsp)
	err := jsonParser.Decode(destination)
	if err != nil {
		fmt.Println(err.Error())
	}
}

func formatExpectedErr(err, innerErr error) string {
	return fmt.Sprintf("%s: %s", err.Error(), innerErr.Error())
}

func getRoutesConfig() config.ApiRoutesConfig {
	return config.ApiRoutesConfig{
		APIPackages: map[string]config.APIPackageConfig{
			"network": {
				Routes: []config.RouteConfig{
					{Name: "/config", Open: true},
				},
			},
			"address": {
				Routes: []config.RouteConfig{
					{Name: "/:address", Open: true},
					{Name: "/:address/esdt/:tokenIdentifier", Open: true},
				},
			},
			"transaction": {
				Routes: []config.RouteConfig{
					{Name: "/send", Open: true},
					{Name: "/:txhash", Open: true},
					{Name: "/:txhash/process-status", Open: true},
				},
			},
			"vm-values": {
				Routes: []config.RouteConfig{
					{Name: "/query", Open: true},
				},
			},
		},
	}
}
