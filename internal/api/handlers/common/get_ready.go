package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/api"
)

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// Readiness: checks all server components are initialized and the configured
// mnemonic parses. 521 mirrors the convention load balancers treat as
// hard-down.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(521, "Not ready.")
		}
		return c.String(http.StatusOK, "Ready.")
	}
}
