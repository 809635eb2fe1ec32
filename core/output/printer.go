package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"livery-audit/core/livery"
	"livery-audit/core/logger"
	"livery-audit/core/reconcile"

	"gopkg.in/yaml.v3"
)

// ReportView is the serialized shape of an audit report.
type ReportView struct {
	Status  string             `json:"status" yaml:"status"`
	Summary reconcile.Summary  `json:"summary" yaml:"summary"`
	Results []reconcile.Result `json:"results" yaml:"results"`
}

// NewReportView wraps r with its status.
func NewReportView(r *reconcile.Report) ReportView {
	return ReportView{
		Status:  r.Status(),
		Summary: r.Summary,
		Results: r.Results,
	}
}

// Printer writes maps and reports in one format.
type Printer struct {
	w      io.Writer
	format Format
	styles Styles
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, format Format, color logger.ColorMode) *Printer {
	return &Printer{
		w:      w,
		format: format,
		styles: NewStyles(w, color),
	}
}

// Map writes m under title. title is only used by text output.
func (p *Printer) Map(title string, m livery.Map) error {
	switch p.format {
	case FormatJSON:
		return p.json(m)
	case FormatYAML:
		return p.yaml(m)
	}

	var b strings.Builder
	b.WriteString(p.styles.Title.Render(title) + "\n")
	if len(m) == 0 {
		b.WriteString(p.styles.Dim.Render("  (none)") + "\n")
	}
	for _, t := range m.Types() {
		ids := m.Liveries(t)
		list := p.styles.Dim.Render("(no liveries)")
		if len(ids) > 0 {
			list = strings.Join(ids, ", ")
		}
		fmt.Fprintf(&b, "  %s: %s\n", p.styles.Noun.Render(t), list)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Report writes the outcome of an audit.
func (p *Printer) Report(r *reconcile.Report) error {
	switch p.format {
	case FormatJSON:
		return p.json(NewReportView(r))
	case FormatYAML:
		return p.yaml(NewReportView(r))
	}

	var b strings.Builder
	for _, res := range r.Results {
		style := p.styles.Missing
		if res.NoStockLiveries {
			style = p.styles.Failed
		}
		fmt.Fprintf(&b, "%s %s\n", p.styles.Failed.Render("✘"), style.Render(res.Message()))
	}

	s := r.Summary
	if r.OK() {
		fmt.Fprintf(&b, "%s %s\n", p.styles.OK.Render("✔"),
			p.styles.Title.Render(fmt.Sprintf("All %d required liveries installed for %d vehicle types", s.RequiredLiveries, s.RequiredTypes)))
	} else {
		fmt.Fprintf(&b, "%s\n",
			p.styles.Title.Render(fmt.Sprintf("Audit failed: %d of %d vehicle types have missing liveries (%d of %d liveries)",
				s.MissingTypes, s.RequiredTypes, s.MissingLiveries, s.RequiredLiveries)))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
