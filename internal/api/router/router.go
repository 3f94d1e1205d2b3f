// Package router wires the echo instance: middleware, error handling and the
// route tree.
package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/handlers"
	"github/keymint/go-signer/internal/api/httperrors"
)

// Init creates the echo instance on the server and attaches all routes.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = false
	s.Echo.HideBanner = true
	s.Echo.HTTPErrorHandler = errorHandler(s)

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(middleware.Recover())
	}
	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(middleware.RequestID())
	}
	if s.Config.Echo.EnablePrometheusMiddleware {
		s.Echo.Use(echoprometheus.NewMiddleware("signer"))
		s.Echo.GET("/-/metrics", echoprometheus.NewHandler())
	}

	s.Router = &api.Router{
		Root:          s.Echo.Group(""),
		Management:    s.Echo.Group("/-"),
		APIV1Accounts: s.Echo.Group("/api/v1/accounts"),
		APIV1EVM:      s.Echo.Group("/api/v1/evm"),
		APIV1Solana:   s.Echo.Group("/api/v1/solana"),
		APIV1Swap:     s.Echo.Group("/api/v1/swap"),
	}

	handlers.AttachAllRoutes(s)
}

// errorHandler renders *httperrors.HTTPError payloads and maps known domain
// sentinels; anything else becomes an opaque 500 unless error details are
// allowed by config.
func errorHandler(s *api.Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var payload *httperrors.HTTPError
		switch e := err.(type) {
		case *httperrors.HTTPError:
			payload = e
		case *echo.HTTPError:
			payload = httperrors.NewHTTPError(e.Code, httperrors.TypeGeneric, http.StatusText(e.Code))
		default:
			payload = httperrors.FromDomainError(err)
			if payload.Code == http.StatusInternalServerError && !s.Config.Echo.HideInternalServerErrorDetails {
				payload = httperrors.NewHTTPErrorWithDetail(payload.Code, payload.Type, payload.Title, err.Error())
			}
		}

		if payload.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", payload.Code).Str("path", c.Path()).Msg("Request failed")
		}

		if writeErr := c.JSON(payload.Code, payload); writeErr != nil {
			log.Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
