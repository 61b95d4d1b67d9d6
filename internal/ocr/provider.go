package ocr

import (
	"context"
	"strings"
	"time"
)

// Receipt holds the fields extracted from a receipt image.
type Receipt struct {
	Amount   float64    `json:"amount"`
	Date     *time.Time `json:"date,omitempty"`
	Merchant string     `json:"merchant,omitempty"`
	Category string     `json:"category,omitempty"`
}

// Provider is a vision backend that turns a receipt image into structured
// fields. Results are suggestions; callers decide what to persist.
type Provider interface {
	Name() string
	IsConfigured() bool
	ParseReceipt(ctx context.Context, image []byte, mimeType string) (*Receipt, error)
}

// ExtractJSON pulls a JSON object out of a model response, stripping
// markdown code fences when present.
func ExtractJSON(content string) string {
	if body := extractFromCodeBlock(content, "```json", "```"); body != "" {
		return body
	}
	if body := extractFromCodeBlock(content, "```", "```"); body != "" {
		return body
	}

	// Fall back to the outermost braces
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start != -1 && end > start {
		return strings.TrimSpace(content[start : end+1])
	}

	return strings.TrimSpace(content)
}

func extractFromCodeBlock(content, startMarker, endMarker string) string {
	startIdx := strings.Index(content, startMarker)
	if startIdx == -1 {
		return ""
	}

	contentStart := startIdx + len(startMarker)
	// Skip newline after marker
	if contentStart < len(content) && content[contentStart] == '\n' {
		contentStart++
	}

	endIdx := strings.Index(content[contentStart:], endMarker)
	if endIdx == -1 {
		return ""
	}

	return strings.TrimSpace(content[contentStart : contentStart+endIdx])
}
