package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/household-ledger/backend/internal/application/adapter"
	"github.com/household-ledger/backend/internal/domain/entity"
)

// GeminiService implements the SuggestionService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestCategory asks the model to pick the best-fitting category for the
// entry description from the provided candidates.
func (s *GeminiService) SuggestCategory(ctx context.Context, description string, kind entity.EntryKind, candidates []adapter.CategoryCandidate) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(description, kind, candidates)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	suggestion, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return suggestion, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(description string, kind entity.EntryKind, candidates []adapter.CategoryCandidate) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert at categorizing personal finance entries. Pick the single best-fitting category for the entry below.

RULES:
- You MUST pick a category from the CANDIDATES list. Never invent a new one.
- Match the category name EXACTLY as given, including casing.
- If nothing fits well, pick the closest candidate and lower your confidence.

ENTRY:
`)
	sb.WriteString(fmt.Sprintf("- Description: %q\n", description))
	sb.WriteString(fmt.Sprintf("- Kind: %s\n", kind))

	sb.WriteString("\nCANDIDATES:\n")
	for _, c := range candidates {
		sb.WriteString(fmt.Sprintf("- Name: %s, Kind: %s\n", c.Name, c.Kind))
	}

	sb.WriteString(`
Respond with a single JSON object:
{
  "category_name": "exact name from the candidates list",
  "confidence": 0.0-1.0,
  "reasoning": "one short sentence"
}

RESPONSE FORMAT: Return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	CategoryName string  `json:"category_name"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// parseResponse parses the Gemini response into a CategorySuggestion.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (*adapter.CategorySuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}

	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if present.
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	if raw.CategoryName == "" {
		return nil, fmt.Errorf("response is missing category_name")
	}
	if raw.Confidence < 0 {
		raw.Confidence = 0
	}
	if raw.Confidence > 1 {
		raw.Confidence = 1
	}

	return &adapter.CategorySuggestion{
		CategoryName: raw.CategoryName,
		Confidence:   raw.Confidence,
		Reasoning:    raw.Reasoning,
	}, nil
}
