package report

import (
	"fmt"
	"strings"
	"time"

	md "github.com/nao1215/markdown"
)

// durations below a millisecond are noise in an operator report
const defaultDurationUnit = time.Millisecond

// Markdown renders the summary as a report document.
func (s Summary) Markdown() (string, error) {
	status := "success"
	if !s.Success {
		status = "failure"
	}

	var buf strings.Builder
	doc := md.NewMarkdown(&buf)

	doc.H1("Stock Update Report").LF().
		PlainTextf("Date: %s", s.StartedAt.Format("02/01/2006 15:04")).LF().
		PlainTextf("Status: %s", status).LF().
		PlainTextf("Duration: %s", s.Duration.Round(defaultDurationUnit)).LF()

	doc.H2("Run Statistics").LF().
		Table(md.TableSet{
			Header: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Suppliers processed", fmt.Sprintf("%d", len(s.Suppliers))},
				{"Platforms processed", fmt.Sprintf("%d", len(s.Platforms))},
				{"Files written", fmt.Sprintf("%d", len(s.FilesSuccessful))},
				{"Files failed", fmt.Sprintf("%d", len(s.FilesFailed))},
				{"Products updated", fmt.Sprintf("%d", s.ProductsUpdated)},
			},
		}).LF()

	if len(s.FilesFailed) > 0 {
		failures := make([]string, 0, len(s.FilesFailed))
		for _, f := range s.FilesFailed {
			failures = append(failures, fmt.Sprintf("%s: %s", f.Path, f.Error))
		}
		doc.H2("Failed Files").LF().BulletList(failures...).LF()
	}
	if len(s.Errors) > 0 {
		doc.H2("Errors").LF().BulletList(s.Errors...).LF()
	}
	if len(s.Warnings) > 0 {
		doc.H2("Warnings").LF().BulletList(s.Warnings...).LF()
	}

	if err := doc.Build(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
