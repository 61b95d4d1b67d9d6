package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fundboard/fundboard/internal/config"
	"github.com/fundboard/fundboard/internal/ocr"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const receiptPrompt = `You are a receipt parser. Extract the following fields from the receipt image and answer with a single JSON object, nothing else:
{
  "amount": <total amount as a number>,
  "date": "<purchase date as YYYY-MM-DD, or null if unreadable>",
  "merchant": "<merchant name, or empty string>",
  "category": "<one short lowercase word for the spending category, e.g. travel, food, equipment>"
}`

type receiptPayload struct {
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
}

// Provider parses receipt images with the Gemini vision API.
type Provider struct {
	apiKey string
	model  string
}

// NewProvider creates a new Gemini receipt provider
func NewProvider(cfg config.OCRConfig) *Provider {
	return &Provider{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.GeminiModel,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

func (p *Provider) defaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

// ParseReceipt sends the image to Gemini and decodes the structured reply.
func (p *Provider) ParseReceipt(ctx context.Context, image []byte, mimeType string) (*ocr.Receipt, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(p.defaultModel())
	// Temperature 0 for deterministic extraction
	var temperature float32 = 0.0
	generativeModel.Temperature = &temperature

	resp, err := generativeModel.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(receiptPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	var payload receiptPayload
	if err := json.Unmarshal([]byte(ocr.ExtractJSON(output)), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	receipt := &ocr.Receipt{
		Amount:   payload.Amount,
		Merchant: payload.Merchant,
		Category: payload.Category,
	}

	if payload.Date != "" && payload.Date != "null" {
		if d, err := time.Parse("2006-01-02", payload.Date); err == nil {
			receipt.Date = &d
		}
	}

	return receipt, nil
}
