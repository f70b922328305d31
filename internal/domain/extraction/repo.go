package extraction

import (
	"context"
	"time"
)

// RecordRepository is the keyed store of extracted records.
type RecordRepository interface {
	// Upsert writes or fully replaces the record for patientID. The write
	// is atomic: concurrent upserts for the same id never interleave, the
	// later arrival wins entirely.
	Upsert(ctx context.Context, patientID string, addedAt time.Time, rec ClinicalRecord) error
	// ListByRecency returns every stored record ordered by date_added
	// descending, as a consistent snapshot.
	ListByRecency(ctx context.Context) ([]ClinicalRecord, error)
	// Count returns the number of distinct patient ids currently stored.
	Count(ctx context.Context) (int, error)
}
