package extraction

import "fmt"

// The prompt is the only correctness lever available against a
// non-deterministic model, so every field carries an explicit extraction
// rule and an explicit fallback value to bound output variance.
const promptTemplate = `You are an expert clinical data extraction specialist. Extract structured data from this clinical note.

Clinical Note:
%s

Extract the following fields and return ONLY valid JSON with no markdown, no preamble:

{
  "patient_id": "%s",
  "address": "Extract text after 'Address'",
  "age_years": "Extract age as number only (e.g., '54 year old' -> '54')",
  "gender": "Male or Female",
  "occupation": "Extract from biodata or 'NA'",
  "presenting_complaints": ["Array of main symptoms"],
  "duration_of_symptoms": "Duration (e.g., '3 days', '1/12')",
  "referral_source": "'Report' if referred mentioned, else 'Self'",
  "comorbidities_present": "'True' if history of DM/HTN/PUD/Asthma mentioned, else 'False'",
  "comorbidities_list": ["List comorbidities or ['NA']"],
  "diagnosis": "Primary diagnosis",
  "category_of_emergency": "'Medical', 'Surgical', or 'Trauma'",
  "triage_level": "'Mild', 'Moderate', or 'Severe' based on severity",
  "vitals_bp": "Blood pressure (e.g., '120/80mmHg')",
  "vitals_pr": "Pulse rate (e.g., '88b/m')",
  "vitals_rr": "Respiratory rate (e.g., '20c/m')",
  "vitals_temperature": "Temperature (e.g., '36.5C')",
  "vitals_spo2": "SpO2 percentage or 'NA'",
  "vitals_gcs": "GCS score or 'NA'",
  "initial_treatment": ["Array of treatments from PLAN"],
  "treat_antibiotics": "'True' if antibiotics present, else 'False'",
  "treat_analgesics": "'True' if analgesics present, else 'False'",
  "treat_ivfluid": "'True' if IV fluids mentioned, else 'False'",
  "treat_oxygen": "'True' if oxygen mentioned, else 'False'",
  "outcome": "'Discharge' or 'Admitted' or 'Died' or 'LAMA'"
}

Return ONLY the JSON object.`

// BuildPrompt renders the fixed extraction instruction for one note.
func BuildPrompt(noteText, patientID string) string {
	return fmt.Sprintf(promptTemplate, noteText, patientID)
}
