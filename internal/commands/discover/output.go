package discover

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/indaco/nmsearch/internal/printer"
)

// Formatter handles display of discovery reports.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatReport formats the report for display.
func (f *Formatter) FormatReport(report *Report) (string, error) {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(report)
	case FormatTable:
		return f.formatTable(report), nil
	default:
		return f.formatText(report), nil
	}
}

func (f *Formatter) formatText(report *Report) string {
	var sb strings.Builder

	sb.WriteString(printer.Info("Packages in " + report.Workspace.Name))
	sb.WriteString("\n")
	sb.WriteString(printer.Faint(strings.Repeat("-", 60)))
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Strategy: %s\n", printer.Bold(report.Strategy))
	if report.Manifest != "" {
		fmt.Fprintf(&sb, "Manifest: %s\n", report.Manifest)
	}
	sb.WriteString("\n")

	for _, p := range report.Packages {
		status := printer.Success("✓")
		note := ""
		if !p.HasDependencyFolder {
			status = printer.Warning("⚠")
			note = " " + printer.Faint(fmt.Sprintf("(no %s)", report.DependencyFolder))
		}
		fmt.Fprintf(&sb, "  %s %s %s%s\n", status, p.Label, printer.Faint(displayPath(p.RelPath)), note)
	}

	sb.WriteString("\n")
	sb.WriteString(f.formatSummary(report))
	sb.WriteString("\n")
	return sb.String()
}

func (f *Formatter) formatTable(report *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-30s %-40s %-12s\n", "PACKAGE", "PATH", strings.ToUpper(report.DependencyFolder))
	sb.WriteString(strings.Repeat("-", 84) + "\n")
	for _, p := range report.Packages {
		present := "yes"
		if !p.HasDependencyFolder {
			present = "no"
		}
		fmt.Fprintf(&sb, "%-30s %-40s %-12s\n", p.Label, displayPath(p.RelPath), present)
	}

	sb.WriteString("\n")
	sb.WriteString(f.formatSummary(report))
	sb.WriteString("\n")
	return sb.String()
}

func (f *Formatter) formatJSON(report *Report) (string, error) {
	type jsonPackage struct {
		Label               string `json:"label"`
		RelPath             string `json:"relative_path"`
		Path                string `json:"path"`
		HasDependencyFolder bool   `json:"has_dependency_folder"`
	}

	output := struct {
		Workspace        string        `json:"workspace"`
		WorkspacePath    string        `json:"workspace_path"`
		Strategy         string        `json:"strategy"`
		Manifest         string        `json:"manifest,omitempty"`
		DependencyFolder string        `json:"dependency_folder"`
		Packages         []jsonPackage `json:"packages"`
	}{
		Workspace:        report.Workspace.Name,
		WorkspacePath:    report.Workspace.Path,
		Strategy:         report.Strategy,
		Manifest:         report.Manifest,
		DependencyFolder: report.DependencyFolder,
		Packages:         make([]jsonPackage, len(report.Packages)),
	}

	for i, p := range report.Packages {
		output.Packages[i] = jsonPackage{
			Label:               p.Label,
			RelPath:             p.RelPath,
			Path:                p.Path,
			HasDependencyFolder: p.HasDependencyFolder,
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (f *Formatter) formatSummary(report *Report) string {
	summary := fmt.Sprintf("Found: %d package(s)", len(report.Packages))
	if missing := report.MissingDependencyFolders(); missing > 0 {
		summary += ", " + printer.Warning(fmt.Sprintf("%d without %s", missing, report.DependencyFolder))
	}
	return summary
}

// displayPath shows the workspace root as ".".
func displayPath(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
