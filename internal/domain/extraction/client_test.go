package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubModel is a canned-reply ModelClient.
type stubModel struct {
	reply string
	err   error

	lastPrompt string
}

func (s *stubModel) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

const cleanReply = `{"patient_id": "001", "diagnosis": "Acute appendicitis", "triage_level": "Severe", "presenting_complaints": ["abdominal pain", "vomiting"]}`

func TestExtract_CleanJSON(t *testing.T) {
	model := &stubModel{reply: cleanReply}
	client := NewClient(model, time.Minute)

	rec, err := client.Extract(context.Background(), "some note", "001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PatientID() != "001" {
		t.Errorf("expected patient_id 001, got %s", rec.PatientID())
	}
	if rec["diagnosis"] != "Acute appendicitis" {
		t.Errorf("expected diagnosis, got %v", rec["diagnosis"])
	}
}

func TestExtract_FencedJSON(t *testing.T) {
	model := &stubModel{reply: "```json\n" + cleanReply + "\n```"}
	client := NewClient(model, time.Minute)

	rec, err := client.Extract(context.Background(), "some note", "001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["triage_level"] != "Severe" {
		t.Errorf("expected triage_level Severe, got %v", rec["triage_level"])
	}
}

func TestExtract_MalformedJSON(t *testing.T) {
	model := &stubModel{reply: "Sorry, I could not process this note."}
	client := NewClient(model, time.Minute)

	_, err := client.Extract(context.Background(), "some note", "001")
	if err == nil {
		t.Fatal("expected error for malformed reply")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Raw == "" {
		t.Error("expected raw reply to be retained on the parse error")
	}
}

func TestExtract_NullReply(t *testing.T) {
	model := &stubModel{reply: "null"}
	client := NewClient(model, time.Minute)

	_, err := client.Extract(context.Background(), "some note", "001")
	if err == nil {
		t.Fatal("expected error for null reply")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestExtract_TransportFailure(t *testing.T) {
	model := &stubModel{err: errors.New("connection refused")}
	client := NewClient(model, time.Minute)

	_, err := client.Extract(context.Background(), "some note", "001")
	if err == nil {
		t.Fatal("expected error for transport failure")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
}

func TestExtract_PromptEmbedsInputs(t *testing.T) {
	model := &stubModel{reply: cleanReply}
	client := NewClient(model, time.Minute)

	if _, err := client.Extract(context.Background(), "BP 140/90, chest pain", "PAT123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(model.lastPrompt, "BP 140/90, chest pain") {
		t.Error("expected prompt to embed the note text")
	}
	if !strings.Contains(model.lastPrompt, `"patient_id": "PAT123"`) {
		t.Error("expected prompt to embed the patient id")
	}
	if !strings.Contains(model.lastPrompt, "Return ONLY the JSON object.") {
		t.Error("expected prompt to carry the JSON-only instruction")
	}
}

func TestGeminiClient_MissingKeyFailsAtUse(t *testing.T) {
	client := NewClient(NewGeminiClient("", "gemini-pro"), time.Minute)

	_, err := client.Extract(context.Background(), "note", "001")
	if err == nil {
		t.Fatal("expected error without an api key")
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{`{"a": 1}`, `{"a": 1}`},
		{"  {\"a\": 1}\n", `{"a": 1}`},
	}
	for _, tc := range cases {
		if got := StripFences(tc.in); got != tc.want {
			t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
