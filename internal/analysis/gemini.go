package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker/v2"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash-exp"

// Gemini implements Analyzer using Google Gemini. Calls go through a
// circuit breaker so a misbehaving inference endpoint fails fast instead of
// stacking up slow requests.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	breaker *gobreaker.CircuitBreaker[map[string]any]
}

// NewGemini creates a Gemini analyzer.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(8192)

	breaker := gobreaker.NewCircuitBreaker[map[string]any](gobreaker.Settings{
		Name:        "gemini-analyze",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	})

	return &Gemini{
		client:  client,
		model:   model,
		breaker: breaker,
	}, nil
}

// Analyze runs the class-specific extraction prompt over the document text
// and returns the raw analysis payload.
func (g *Gemini) Analyze(ctx context.Context, class string, text string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	prompt := promptFor(class, text)

	return g.breaker.Execute(func() (map[string]any, error) {
		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, fmt.Errorf("generating content: %w", err)
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from gemini")
		}

		var responseText strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				responseText.WriteString(string(text))
			}
		}

		payload, err := parseAnalysisJSON(responseText.String())
		if err != nil {
			return nil, fmt.Errorf("parsing analysis payload: %w", err)
		}
		return payload, nil
	})
}

// Close closes the Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}
