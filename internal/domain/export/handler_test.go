package export

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinex/clinex/internal/domain/extraction"
)

func doExport(t *testing.T, h *Handler) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ExportCSV(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestExportCSV_Headers(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{records: []extraction.ClinicalRecord{
		{"patient_id": "001", "diagnosis": "Malaria"},
	}}))

	rec := doExport(t, h)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv content type, got %s", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != "attachment; filename=clinical_master_data.csv" {
		t.Errorf("unexpected content disposition: %s", cd)
	}
}

func TestExportCSV_EmptyStore(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{}))

	rec := doExport(t, h)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "patient_id,date_added,diagnosis,outcome\n" {
		t.Errorf("expected placeholder header, got %q", rec.Body.String())
	}
}

func TestExportCSV_StorageFailure(t *testing.T) {
	h := NewHandler(NewService(&mockRepo{
		err: &extraction.StorageError{Op: "list", Err: errors.New("unavailable")},
	}))

	rec := doExport(t, h)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("expected error envelope, got %q", rec.Body.String())
	}
}
