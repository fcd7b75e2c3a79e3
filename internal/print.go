package internal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	tt "github.com/defogjs/defog/internal/types"
)

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	countStyle   = color.New(color.FgGreen, color.Bold)
	beforeStyle  = color.New(color.FgRed)
	afterStyle   = color.New(color.FgGreen)
	summaryStyle = color.New(color.Bold)
)

// FormatReport renders a per-file fold summary with each recorded
// replacement.
func FormatReport(report *tt.Report) string {
	var builder strings.Builder

	builder.WriteString(fileStyle.Sprint(report.Filename))
	builder.WriteString(": ")
	builder.WriteString(countStyle.Sprintf("%d replacement(s)", report.Replacements))
	builder.WriteString(fmt.Sprintf(" in %d pass(es)\n", report.Passes))

	for _, change := range report.Changes {
		builder.WriteString("  ")
		builder.WriteString(ruleStyle.Sprint(change.Rule))
		builder.WriteString(": ")
		builder.WriteString(beforeStyle.Sprint(change.Before))
		builder.WriteString(" => ")
		builder.WriteString(afterStyle.Sprint(change.After))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// FormatDiff renders a colorized character diff between the original
// and folded source.
func FormatDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var builder strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			builder.WriteString(beforeStyle.Sprint(d.Text))
		case diffmatchpatch.DiffInsert:
			builder.WriteString(afterStyle.Sprint(d.Text))
		default:
			builder.WriteString(d.Text)
		}
	}
	return builder.String()
}

// FormatSummary renders the closing line for a batch run.
func FormatSummary(files, replacements int) string {
	return summaryStyle.Sprintf("folded %d replacement(s) across %d file(s)\n", replacements, files)
}
