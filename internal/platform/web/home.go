// Package web serves the built-in browser UI: a single-page form for
// submitting clinical notes, backed by the JSON API.
package web

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed index.html
var homePage []byte

// RegisterRoutes mounts the home page at the site root.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", Home)
}

func Home(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, homePage)
}
