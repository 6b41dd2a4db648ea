package pipeline

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// wireResult is the document shape pipeline executables emit and replay files
// store. status selects the variant: "success" populates the count fields,
// anything else populates error. YAML tags also cover JSON output, since
// the parser accepts JSON.
type wireResult struct {
	Status string         `yaml:"status"`
	Bronze *int           `yaml:"bronze_records"`
	Silver *int           `yaml:"silver_records"`
	Gold   map[string]int `yaml:"gold_records"`
	Error  string         `yaml:"error"`
}

// DecodeResult parses a result document and converts it into the tagged
// Result. This is the only place the loose status-string shape is accepted;
// past this boundary the success/failure split is structural.
func DecodeResult(data []byte) (Result, error) {
	var w wireResult
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Result{}, fmt.Errorf("parsing result document: %w", err)
	}

	if w.Status == "" {
		return Result{}, fmt.Errorf("result document missing required 'status' key")
	}

	if w.Status != "success" {
		msg := w.Error
		if msg == "" {
			msg = fmt.Sprintf("pipeline reported status %q with no error message", w.Status)
		}
		return Fail(StageRun, msg), nil
	}

	if w.Bronze == nil || w.Silver == nil {
		return Result{}, fmt.Errorf("success result missing bronze_records or silver_records")
	}
	if *w.Bronze < 0 || *w.Silver < 0 {
		return Result{}, fmt.Errorf("record counts must be non-negative")
	}
	for cat, n := range w.Gold {
		if n < 0 {
			return Result{}, fmt.Errorf("gold_records[%s] must be non-negative", cat)
		}
	}

	return Succeed(*w.Bronze, *w.Silver, w.Gold), nil
}
