package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ModelClient is the transport boundary to the external completion API.
// Tests substitute a stub here instead of depending on the live model.
type ModelClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// geminiClient calls the Gemini API through langchaingo. The underlying
// client is created lazily on first use so that a missing API key keeps
// the server up and surfaces as a per-request transport failure instead.
type geminiClient struct {
	apiKey string
	model  string

	mu  sync.Mutex
	llm *googleai.GoogleAI
}

// NewGeminiClient returns a ModelClient backed by the Gemini API.
func NewGeminiClient(apiKey, model string) ModelClient {
	return &geminiClient{apiKey: apiKey, model: model}
}

func (g *geminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	llm, err := g.client(ctx)
	if err != nil {
		return "", err
	}
	return llms.GenerateFromSinglePrompt(ctx, llm, prompt)
}

func (g *geminiClient) client(ctx context.Context) (*googleai.GoogleAI, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not configured")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.llm == nil {
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(g.apiKey),
			googleai.WithDefaultModel(g.model),
		)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		g.llm = llm
	}
	return g.llm, nil
}

// Client turns a clinical note into a ClinicalRecord via one model call.
// Each call is a single attempt; retry policy belongs to the caller.
type Client struct {
	model   ModelClient
	timeout time.Duration
}

func NewClient(model ModelClient, timeout time.Duration) *Client {
	return &Client{model: model, timeout: timeout}
}

// Extract builds the fixed prompt for the note, sends it to the model,
// strips any markdown code fences from the reply, and parses the
// remainder as JSON. Transport failures (including timeouts) come back
// as *TransportError; a reply that is not a JSON object comes back as
// *ParseError.
func (c *Client) Extract(ctx context.Context, noteText, patientID string) (ClinicalRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reply, err := c.model.GenerateContent(ctx, BuildPrompt(noteText, patientID))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	cleaned := StripFences(reply)

	var rec ClinicalRecord
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return nil, &ParseError{Raw: reply, Err: err}
	}
	// "null" is valid JSON but unmarshals to a nil map; the contract
	// requires an object.
	if rec == nil {
		return nil, &ParseError{Raw: reply, Err: fmt.Errorf("model reply is not a JSON object")}
	}
	return rec, nil
}

// StripFences removes markdown code-block delimiters the model may wrap
// its JSON output in, e.g. "```json\n{...}\n```".
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
