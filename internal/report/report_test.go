package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/medalrun/medalrun/internal/pipeline"
)

var testArtifacts = Artifacts{
	Database:   "retail_dwh.db",
	LogFile:    "pipeline_execution.log",
	ReportFile: "pipeline_execution_report.csv",
}

func TestThousandsSeparators(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	r.Result(pipeline.Succeed(1234567, 1000, map[string]int{"a": 999, "b": 1}), testArtifacts)

	out := buf.String()
	if !strings.Contains(out, "📊 Bronze Records: 1,234,567") {
		t.Errorf("bronze not grouped:\n%s", out)
	}
	if !strings.Contains(out, "🔧 Silver Records: 1,000") {
		t.Errorf("silver not grouped:\n%s", out)
	}
	if !strings.Contains(out, "💎 Gold Records: 1,000") {
		t.Errorf("gold total not grouped:\n%s", out)
	}
}

func TestBannerEndsWithDivider(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, false).Banner()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("banner has %d lines, want 3", len(lines))
	}
	if lines[2] != strings.Repeat("=", 60) {
		t.Errorf("banner line 3 = %q, want 60-char divider", lines[2])
	}
}

func TestFailureVerbatim(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, false).Result(pipeline.Fail(pipeline.StageParse, `unexpected key "golb_records"`), testArtifacts)

	if !strings.Contains(buf.String(), `❌ PIPELINE FAILED: unexpected key "golb_records"`) {
		t.Errorf("error not verbatim:\n%s", buf.String())
	}
}

func TestPlainOutputHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)
	r.Banner()
	r.Result(pipeline.Succeed(1, 1, nil), testArtifacts)
	r.Divider()

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("plain renderer emitted ANSI escapes:\n%q", buf.String())
	}
}

func TestDetectColorRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if DetectColor(nil) {
		t.Error("DetectColor = true with NO_COLOR set")
	}
}
