package notify

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/medalrun/medalrun/internal/pipeline"
)

// TemplateData holds all data available to notification templates.
type TemplateData struct {
	Globals map[string]any
	Result  map[string]string
}

// BuildTemplateData constructs template data from a run result and config
// globals. Hostname is injected into globals when the config didn't set one.
func BuildTemplateData(globals map[string]any, hostname string, res pipeline.Result) TemplateData {
	g := make(map[string]any, len(globals)+1)
	for k, v := range globals {
		g[k] = v
	}
	if _, ok := g["hostname"]; !ok {
		g["hostname"] = hostname
	}

	r := map[string]string{}
	if res.OK() {
		r["status"] = "success"
		r["status_emoji"] = "\U0001f7e2" // 🟢
		r["bronze"] = strconv.Itoa(res.Stats.Bronze)
		r["silver"] = strconv.Itoa(res.Stats.Silver)
		r["gold"] = strconv.Itoa(res.Stats.GoldTotal())
	} else {
		r["status"] = "failure"
		r["status_emoji"] = "\U0001f534" // 🔴
		r["stage"] = res.Failure.Stage
		r["error"] = res.Failure.Message
	}

	return TemplateData{Globals: g, Result: r}
}

// Render executes a Go text/template string with Sprig functions and the
// custom accessor functions (result, globals).
func Render(tmplStr string, data TemplateData) (string, error) {
	funcMap := sprig.TxtFuncMap()

	// Register accessor functions so {{result.status}} works:
	// "result" returns the result map, then ".status" accesses a key.
	funcMap["result"] = func() map[string]string { return data.Result }
	funcMap["globals"] = func() map[string]any { return data.Globals }

	t, err := template.New("notify").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
