package swap

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	"github/keymint/go-signer/internal/dex"
)

func PostOdosQuoteRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Swap.POST("/odos/quote", postOdosQuoteHandler(s))
}

func postOdosQuoteHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body dex.QuoteRequest
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}
		if len(body.InputTokens) == 0 || len(body.OutputTokens) == 0 {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "inputTokens and outputTokens are required.")
		}

		resp, err := s.Odos.Quote(c.Request().Context(), &body)
		if err != nil {
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, httperrors.TypeGeneric, "Aggregator request failed.", err.Error())
		}

		return c.JSON(http.StatusOK, resp)
	}
}
