package export

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/export/csv", h.ExportCSV)
}

// ExportCSV serves the master data as an attachment-disposed CSV so
// spreadsheet "web data" imports can poll it directly.
func (h *Handler) ExportCSV(c echo.Context) error {
	data, err := h.svc.CSV(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", Filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
