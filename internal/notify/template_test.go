package notify

import (
	"testing"

	"github.com/medalrun/medalrun/internal/pipeline"
)

func TestBuildTemplateDataSuccess(t *testing.T) {
	res := pipeline.Succeed(1000, 950, map[string]int{"region_a": 300, "region_b": 650})
	data := BuildTemplateData(map[string]any{"env": "prod"}, "dwh-01", res)

	if data.Result["status"] != "success" {
		t.Errorf("status = %q, want %q", data.Result["status"], "success")
	}
	if data.Result["bronze"] != "1000" || data.Result["silver"] != "950" || data.Result["gold"] != "950" {
		t.Errorf("counts = %v", data.Result)
	}
	if data.Globals["hostname"] != "dwh-01" {
		t.Errorf("hostname not injected: %v", data.Globals)
	}
	if data.Globals["env"] != "prod" {
		t.Errorf("globals lost: %v", data.Globals)
	}
}

func TestBuildTemplateDataFailure(t *testing.T) {
	res := pipeline.Fail(pipeline.StageExec, "disk full")
	data := BuildTemplateData(nil, "dwh-01", res)

	if data.Result["status"] != "failure" {
		t.Errorf("status = %q, want %q", data.Result["status"], "failure")
	}
	if data.Result["stage"] != pipeline.StageExec {
		t.Errorf("stage = %q, want %q", data.Result["stage"], pipeline.StageExec)
	}
	if data.Result["error"] != "disk full" {
		t.Errorf("error = %q, want %q", data.Result["error"], "disk full")
	}
}

func TestBuildTemplateDataKeepsConfiguredHostname(t *testing.T) {
	data := BuildTemplateData(map[string]any{"hostname": "configured"}, "fallback", pipeline.Succeed(1, 1, nil))
	if data.Globals["hostname"] != "configured" {
		t.Errorf("hostname = %v, want configured", data.Globals["hostname"])
	}
}

func TestRenderAccessors(t *testing.T) {
	data := BuildTemplateData(map[string]any{}, "dwh-01", pipeline.Fail(pipeline.StageRun, "disk full"))

	msg, err := Render(`{{result.status | upper}} on {{globals.hostname}}: {{result.error}}`, data)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if msg != "FAILURE on dwh-01: disk full" {
		t.Errorf("message = %q, want %q", msg, "FAILURE on dwh-01: disk full")
	}
}

func TestRenderBadTemplate(t *testing.T) {
	data := BuildTemplateData(nil, "h", pipeline.Succeed(1, 1, nil))
	if _, err := Render(`{{result.status`, data); err == nil {
		t.Error("expected error for unterminated template")
	}
}
