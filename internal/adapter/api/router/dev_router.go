package router

import (
	"github.com/labstack/echo/v4"

	"nuptio/internal/adapter/api/handler"
)

// SetupDevRouter mounts token-minting helpers for local testing. Skipped
// entirely outside development.
func SetupDevRouter(e *echo.Echo, devTokenHandler *handler.DevTokenHandler, environment string) {
	if environment != "development" {
		return
	}

	e.POST("/_dev/long-lived-token", devTokenHandler.LongLivedToken)
	e.POST("/_dev/local-token", devTokenHandler.LocalToken)
}
