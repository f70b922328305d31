package extraction

// ClinicalRecord is one structured record extracted from a free-text
// clinical note, keyed by patient_id. The field set is dictated by the
// prompt contract rather than enforced here: the model may return fields
// beyond the canonical schema and the store keeps them verbatim, which is
// what lets the CSV export compute its header as a per-call union of
// field names. A fixed struct could not represent that.
type ClinicalRecord map[string]interface{}

// SchemaFields is the canonical 24-field set requested from the model,
// in prompt order. date_added is server-assigned and not part of it.
var SchemaFields = []string{
	"patient_id",
	"address",
	"age_years",
	"gender",
	"occupation",
	"presenting_complaints",
	"duration_of_symptoms",
	"referral_source",
	"comorbidities_present",
	"comorbidities_list",
	"diagnosis",
	"category_of_emergency",
	"triage_level",
	"vitals_bp",
	"vitals_pr",
	"vitals_rr",
	"vitals_temperature",
	"vitals_spo2",
	"vitals_gcs",
	"initial_treatment",
	"treat_antibiotics",
	"treat_analgesics",
	"treat_ivfluid",
	"treat_oxygen",
	"outcome",
}

// PatientID returns the record's patient_id, or "" if absent.
func (r ClinicalRecord) PatientID() string {
	v, _ := r["patient_id"].(string)
	return v
}

// DateAdded returns the server-assigned timestamp string, or "" if the
// record has not been stamped yet.
func (r ClinicalRecord) DateAdded() string {
	v, _ := r["date_added"].(string)
	return v
}
