package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dmitrijs2005/psychicstar/internal/client/models"
)

const DefaultGeminiModel = "gemini-2.5-flash"

const baseInstruction = `We are the Archetypal Guidance Collective. We provide deep psychological reflection based on Big Five, Jungian Archetypes, and CBT principles.

We refer to ourselves as "We" or "The Collective". We speak with empathy and wisdom.
`

const outputStructure = `
Respond ONLY with valid JSON in this exact structure:
{
  "energeticOverview": {
    "symbolic": "A poetic symbolic description",
    "translation": "Plain language translation"
  },
  "coreTraits": [
    {"trait": "Trait name", "confidence": 85, "description": "Description"},
    {"trait": "Trait name", "confidence": 78, "description": "Description"},
    {"trait": "Trait name", "confidence": 72, "description": "Description"}
  ],
  "dominantArchetypes": [
    {
      "name": "Archetype name",
      "description": "Description of archetype",
      "behavioralIndicators": ["Indicator 1", "Indicator 2", "Indicator 3"]
    }
  ],
  "actionPlan": {
    "shortTerm": "Action for 1-6 weeks",
    "mediumTerm": "Action for medium term",
    "longTerm": "Action for 6+ months"
  },
  "redFlags": ["Warning 1", "Warning 2", "Warning 3"],
  "futureProjection": {
    "pathA": {
      "pathName": "Path with action",
      "description": "Description",
      "probability": "65%"
    },
    "pathB": {
      "pathName": "Path without action",
      "description": "Description",
      "probability": "35%"
    }
  },
  "closingWisdom": "A profound closing statement"
}
`

// SystemInstruction builds the persona prompt, with a profile block when
// the quiz has been completed.
func SystemInstruction(profile *models.BigFiveProfile) string {
	var b strings.Builder
	b.WriteString(baseInstruction)

	if profile != nil {
		fmt.Fprintf(&b, `
USER PROFILE (Big Five):
- Openness: %d/100
- Conscientiousness: %d/100
- Extraversion: %d/100
- Agreeableness: %d/100
- Neuroticism: %d/100

Tailor your response to this psychological profile.
`, profile.Openness, profile.Conscientiousness, profile.Extraversion, profile.Agreeableness, profile.Neuroticism)
	}

	b.WriteString(outputStructure)
	return b.String()
}

// contentGenerator is satisfied by *genai.Models.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{models: client.Models, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, query string, profile *models.BigFiveProfile) (*models.ReadingResult, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(query, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction(profile), genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	// Tolerate a fenced block when the model ignores the mime type.
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var r models.ReadingResult
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrGenerationFailed, err)
	}
	if err := Validate(&r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return &r, nil
}
