// Package report renders the run banner and the result summary. Stdout
// formatting lives here so the runner stays free of presentation detail and
// the output can be asserted byte for byte in tests.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/medalrun/medalrun/internal/pipeline"
)

const dividerWidth = 60

// Artifacts holds the file names the pipeline job is expected to have
// produced. They are reported, never checked.
type Artifacts struct {
	Database   string
	LogFile    string
	ReportFile string
}

// Styles bundles the lipgloss styles applied to report lines. The zero value
// renders plain text.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
}

func colorStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// DetectColor reports whether styled output should go to f. NO_COLOR and
// dumb terminals win over tty detection.
func DetectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// Renderer writes the fixed report format. Counts are printed with
// thousands separators.
type Renderer struct {
	out    io.Writer
	p      *message.Printer
	styles Styles
}

// NewRenderer writes to out; color selects styled or plain lines.
func NewRenderer(out io.Writer, color bool) *Renderer {
	r := &Renderer{
		out: out,
		p:   message.NewPrinter(language.English),
	}
	if color {
		r.styles = colorStyles()
	}
	return r
}

// Banner writes the opening title block, ending with the first divider.
func (r *Renderer) Banner() {
	fmt.Fprintln(r.out, r.styles.Title.Render("🎯 Automated Data Pipeline - Retail Orders Analytics"))
	fmt.Fprintln(r.out, r.styles.Title.Render("📊 Implementing Bronze-Silver-Gold Architecture"))
	r.Divider()
}

// Result writes the success or failure block for res.
func (r *Renderer) Result(res pipeline.Result, artifacts Artifacts) {
	if !res.OK() {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Failure.Render(fmt.Sprintf("❌ PIPELINE FAILED: %s", res.Failure.Message)))
		return
	}

	s := res.Stats
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Success.Render("🎉 PIPELINE EXECUTION SUCCESSFUL!"))
	fmt.Fprintln(r.out, r.p.Sprintf("📊 Bronze Records: %d", s.Bronze))
	fmt.Fprintln(r.out, r.p.Sprintf("🔧 Silver Records: %d", s.Silver))
	fmt.Fprintln(r.out, r.p.Sprintf("💎 Gold Records: %d", s.GoldTotal()))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "📄 Generated Files:")
	fmt.Fprintf(r.out, "   - %s (SQLite database)\n", artifacts.Database)
	fmt.Fprintf(r.out, "   - %s (Execution log)\n", artifacts.LogFile)
	fmt.Fprintf(r.out, "   - %s (Summary report)\n", artifacts.ReportFile)
}

// Divider writes the fixed-width separator line.
func (r *Renderer) Divider() {
	fmt.Fprintln(r.out, strings.Repeat("=", dividerWidth))
}
