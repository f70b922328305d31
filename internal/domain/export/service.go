package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/clinex/clinex/internal/domain/extraction"
)

// Filename is the attachment name spreadsheet tools see when polling
// the export endpoint.
const Filename = "clinical_master_data.csv"

// defaultHeader is served when no records exist. It is a convenience
// placeholder, not derived from the union rule.
var defaultHeader = []string{"patient_id", "date_added", "diagnosis", "outcome"}

type Service struct {
	repo extraction.RecordRepository
}

func NewService(repo extraction.RecordRepository) *Service {
	return &Service{repo: repo}
}

// CSV serializes every stored record, most recent first. The column set
// is the lexicographically sorted union of all field names across the
// returned records, recomputed on every call, so a new field on any
// record changes the header on the next export. List values are joined
// with "; "; fields a record lacks render as empty cells.
func (s *Service) CSV(ctx context.Context) (string, error) {
	records, err := s.repo.ListByRecency(ctx)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if len(records) == 0 {
		w.Write(defaultHeader)
		w.Flush()
		return buf.String(), w.Error()
	}

	fieldSet := make(map[string]struct{})
	for _, rec := range records {
		for k := range rec {
			fieldSet[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(fieldSet))
	for k := range fieldSet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	w.Write(columns)
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = flatten(rec[col])
		}
		w.Write(row)
	}
	w.Flush()
	return buf.String(), w.Error()
}

// flatten renders one cell value: lists become their elements joined
// with "; ", absent fields become empty cells, everything else is
// stringified as-is.
func flatten(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, "; ")
	default:
		return fmt.Sprint(val)
	}
}
