package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExportJSON renders plan as two-space indented UTF-8 JSON. Characters such
// as "&" in theme names are written literally.
func ExportJSON(plan *TripPlan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("export: nil plan")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

// ParsePlan reads a plan written by ExportJSON.
func ParsePlan(data []byte) (*TripPlan, error) {
	var plan TripPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &plan, nil
}

// ExportFilename is the download name for a JSON export.
func ExportFilename(plan *TripPlan) string {
	return plan.Destination + "-trip-plan.json"
}

// Share is the payload handed to a native share sheet.
type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ShareContent builds the share message for plan pointing at url.
func ShareContent(plan *TripPlan, url string) Share {
	return Share{
		Title: fmt.Sprintf("My Trip to %s", plan.Destination),
		Text:  fmt.Sprintf("Check out my %s trip to %s!", plan.Duration, plan.Destination),
		URL:   url,
	}
}
