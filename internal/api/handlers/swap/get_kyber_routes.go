// Package swap proxies aggregator quotes so callers can price and assemble
// swaps without talking to the aggregators directly.
package swap

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
)

func GetKyberRoutesRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Swap.GET("/kyber/routes", getKyberRoutesHandler(s))
}

func getKyberRoutesHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenIn := c.QueryParam("token_in")
		tokenOut := c.QueryParam("token_out")
		amountIn := c.QueryParam("amount_in")
		if tokenIn == "" || tokenOut == "" || amountIn == "" {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "token_in, token_out and amount_in are required.")
		}

		resp, err := s.Kyber.GetRoutes(c.Request().Context(), tokenIn, tokenOut, amountIn)
		if err != nil {
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, httperrors.TypeGeneric, "Aggregator request failed.", err.Error())
		}

		return c.JSON(http.StatusOK, resp)
	}
}
