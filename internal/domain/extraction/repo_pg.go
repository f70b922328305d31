package extraction

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type recordRepoPG struct{ pool *pgxpool.Pool }

func NewRecordRepoPG(pool *pgxpool.Pool) RecordRepository {
	return &recordRepoPG{pool: pool}
}

// Upsert relies on the conflict-target update being row-atomic in
// Postgres: two concurrent writes for the same patient_id serialize on
// the row lock and the later one replaces the blob wholesale.
func (r *recordRepoPG) Upsert(ctx context.Context, patientID string, addedAt time.Time, rec ClinicalRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return &StorageError{Op: "upsert", Err: err}
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO patient_records (patient_id, date_added, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (patient_id)
		DO UPDATE SET date_added = EXCLUDED.date_added, data = EXCLUDED.data`,
		patientID, addedAt, data)
	if err != nil {
		return &StorageError{Op: "upsert", Err: err}
	}
	return nil
}

func (r *recordRepoPG) ListByRecency(ctx context.Context) ([]ClinicalRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT data FROM patient_records ORDER BY date_added DESC, patient_id`)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	var records []ClinicalRecord
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, &StorageError{Op: "list", Err: err}
		}
		var rec ClinicalRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, &StorageError{Op: "list", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return records, nil
}

func (r *recordRepoPG) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient_records`).Scan(&total); err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return total, nil
}
