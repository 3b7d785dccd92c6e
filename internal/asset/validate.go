package asset

import (
	"fmt"

	"github.com/metalagman/buildassets/internal/config"
)

// PlanLine describes what Build will do for one valid asset.
type PlanLine struct {
	Index  int    `json:"index"  yaml:"index"`
	Kind   Kind   `json:"kind"   yaml:"kind"`
	Name   string `json:"name"   yaml:"name"`
	Syntax string `json:"syntax" yaml:"syntax"`
	Output string `json:"output" yaml:"output"`
	Source string `json:"source" yaml:"source"`
}

func (p PlanLine) String() string {
	what := "contents of " + p.Source
	if p.Kind == KindVersion {
		what = "version from " + p.Source
	}
	return fmt.Sprintf("[%s] %s <- %s as %q", p.Syntax, p.Output, what, p.Name)
}

// Report is the outcome of Validate. It carries either a plan or a list of
// problems.
type Report struct {
	Plan     []PlanLine
	Problems []error
}

// OK reports whether validation found no problems.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Syntax names the module syntax generated for cfg.
func Syntax(cfg config.Config) string {
	return StyleFor(cfg.ModuleMode).String()
}

// Validate checks every asset of cfg without touching the filesystem. All
// problems are collected; when there are any the plan is dropped.
func Validate(cfg config.Config) Report {
	var rep Report
	for _, spec := range ClassifyAll(cfg) {
		problems := Problems(spec)
		if len(problems) > 0 {
			rep.Problems = append(rep.Problems, problems...)
			continue
		}
		rep.Plan = append(rep.Plan, PlanLine{
			Index:  spec.Index,
			Kind:   spec.Kind,
			Name:   spec.Name,
			Syntax: Syntax(cfg),
			Output: spec.OutputPath(cfg),
			Source: spec.SourcePath(cfg),
		})
	}
	if !rep.OK() {
		rep.Plan = nil
	}
	return rep
}

// Problems lists what is wrong with a single classified asset.
func Problems(spec Spec) []error {
	var problems []error
	if spec.Kind == KindMalformed {
		if spec.Entry.Name == "" {
			problems = append(problems, &MissingFieldError{Index: spec.Index, Field: "name"})
		}
		if spec.Entry.InputFileName == "" {
			problems = append(problems, &MissingFieldError{Index: spec.Index, Field: "inputFileName"})
		}
	}
	if spec.Name != "" && !ValidIdentifier(spec.Name) {
		problems = append(problems, &IdentifierNameError{Index: spec.Index, Name: spec.Name})
	}
	return problems
}
