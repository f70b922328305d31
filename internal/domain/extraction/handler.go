package extraction

import (
	"errors"
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
	api.POST("/extract", h.Extract)
	api.GET("/stats", h.GetStats)
}

type extractRequest struct {
	Text      string `json:"text"`
	PatientID string `json:"patient_id"`
}

// response is the uniform envelope every extraction outcome is converted
// to at the request boundary.
type response struct {
	Success bool           `json:"success"`
	Data    ClinicalRecord `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (h *Handler) Extract(c echo.Context) error {
	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response{Success: false, Error: "invalid request body"})
	}

	rec, err := h.svc.Extract(c.Request().Context(), req.PatientID, req.Text)
	if err != nil {
		return c.JSON(statusFor(err), response{Success: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, response{Success: true, Data: rec})
}

func (h *Handler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetStats(c.Request().Context()))
}

// statusFor maps the error taxonomy onto HTTP status codes: validation
// failures are user-correctable 400s, everything else is a 500.
func statusFor(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
