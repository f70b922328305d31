package extraction

import (
	"context"
	"strings"
	"time"
)

// Extractor is the client boundary the service calls through.
type Extractor interface {
	Extract(ctx context.Context, noteText, patientID string) (ClinicalRecord, error)
}

// Stats is the payload of the stats endpoint.
type Stats struct {
	Total int `json:"total"`
}

type Service struct {
	client Extractor
	repo   RecordRepository
	now    func() time.Time
}

func NewService(client Extractor, repo RecordRepository) *Service {
	return &Service{client: client, repo: repo, now: time.Now}
}

// Extract validates the inputs, runs the model extraction, stamps the
// result with the current instant, and upserts it into the store. On any
// client failure the store is left untouched and the failure kind is
// propagated unchanged.
func (s *Service) Extract(ctx context.Context, patientID, noteText string) (ClinicalRecord, error) {
	patientID = strings.TrimSpace(patientID)
	noteText = strings.TrimSpace(noteText)
	if patientID == "" {
		return nil, &ValidationError{Field: "patient_id"}
	}
	if noteText == "" {
		return nil, &ValidationError{Field: "text"}
	}

	rec, err := s.client.Extract(ctx, noteText, patientID)
	if err != nil {
		return nil, err
	}

	// The submitted id and the server clock always win over whatever the
	// model put in the reply.
	addedAt := s.now().UTC()
	rec["patient_id"] = patientID
	rec["date_added"] = addedAt.Format(time.RFC3339)

	if err := s.repo.Upsert(ctx, patientID, addedAt, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetStats reports the total record count. A storage failure degrades to
// a zero count rather than failing the request.
func (s *Service) GetStats(ctx context.Context) Stats {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Stats{Total: 0}
	}
	return Stats{Total: total}
}
