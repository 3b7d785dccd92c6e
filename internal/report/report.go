// Package report renders validation results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/buildassets/internal/asset"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists every supported format.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Document is the machine-readable form of a validation report.
type Document struct {
	OK     bool             `json:"ok"               yaml:"ok"`
	Plan   []asset.PlanLine `json:"plan,omitempty"   yaml:"plan,omitempty"`
	Errors []string         `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// NewDocument converts a report.
func NewDocument(rep asset.Report) Document {
	doc := Document{OK: rep.OK(), Plan: rep.Plan}
	for _, problem := range rep.Problems {
		doc.Errors = append(doc.Errors, problem.Error())
	}
	return doc
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep asset.Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, rep)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(rep))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(rep)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeText(w io.Writer, rep asset.Report) error {
	r := lipgloss.NewRenderer(w)
	var b strings.Builder
	if !rep.OK() {
		label := r.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
		b.WriteString(label.Render("Errors:"))
		b.WriteString("\n")
		for _, problem := range rep.Problems {
			fmt.Fprintf(&b, "  - %s\n", problem)
		}
	} else {
		label := r.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
		b.WriteString(label.Render("Plan:"))
		b.WriteString("\n")
		for _, line := range rep.Plan {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
