// Package asset classifies configured assets, validates them and generates
// the JavaScript modules that export their values.
package asset

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/metalagman/buildassets/internal/config"
)

const (
	versionType        = "version"
	defaultVersionName = "version"
	defaultPackageJSON = "package.json"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_$]+$`)

// ValidIdentifier reports whether name can be used as the generated
// variable name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Kind identifies the shape of an asset entry.
type Kind int

const (
	// KindMalformed is an entry that is neither a version nor a text asset.
	KindMalformed Kind = iota
	// KindVersion exports the version field of a package.json file.
	KindVersion
	// KindText exports the contents of a text file.
	KindText
)

var kindNames = map[Kind]string{
	KindMalformed: "malformed",
	KindVersion:   "version",
	KindText:      "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindMalformed]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown asset kind %q", text)
}

// Spec is a classified asset entry.
type Spec struct {
	// Index is the zero-based position in the assets list.
	Index int
	Kind  Kind
	// Name is the generated identifier, with the version default applied.
	Name string
	// Source is the package.json or input file, relative to the config root.
	Source         string
	OutputFileName string
	Entry          config.AssetEntry
}

// Classify turns a raw entry into a Spec. An entry typed "version" is a
// version asset; otherwise an entry naming both an input file and an
// identifier is a text asset; anything else is malformed.
func Classify(index int, entry config.AssetEntry) Spec {
	spec := Spec{
		Index:          index,
		Name:           entry.Name,
		OutputFileName: entry.OutputFileName,
		Entry:          entry,
	}
	switch {
	case entry.Type == versionType:
		spec.Kind = KindVersion
		if spec.Name == "" {
			spec.Name = defaultVersionName
		}
		spec.Source = entry.PackageJSON
		if spec.Source == "" {
			spec.Source = defaultPackageJSON
		}
	case entry.InputFileName != "" && entry.Name != "":
		spec.Kind = KindText
		spec.Source = entry.InputFileName
	default:
		spec.Kind = KindMalformed
	}
	return spec
}

// ClassifyAll classifies every asset of cfg in order.
func ClassifyAll(cfg config.Config) []Spec {
	specs := make([]Spec, 0, len(cfg.Assets))
	for i, entry := range cfg.Assets {
		specs = append(specs, Classify(i, entry))
	}
	return specs
}

// OutputFile is the generated file name: the configured output file name,
// or the identifier followed by the configured extension.
func (s Spec) OutputFile(cfg config.Config) string {
	if s.OutputFileName != "" {
		return s.OutputFileName
	}
	return s.Name + cfg.Extension
}

// OutputPath is where the generated module is written.
func (s Spec) OutputPath(cfg config.Config) string {
	return filepath.Join(cfg.AssetsDir, s.OutputFile(cfg))
}

// SourcePath is the file the asset value is read from.
func (s Spec) SourcePath(cfg config.Config) string {
	return filepath.Join(cfg.RootDir, s.Source)
}

// Label identifies the asset in diagnostics.
func (s Spec) Label() string {
	if s.Name != "" {
		return fmt.Sprintf("asset #%d (%s)", s.Index+1, s.Name)
	}
	return fmt.Sprintf("asset #%d", s.Index+1)
}
