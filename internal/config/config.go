// Package config loads and normalizes build-assets configuration files.
package config

import "strings"

const (
	// DefaultFile is the configuration file looked up when no path is given.
	DefaultFile = "build-assets.json"
	// DefaultDirectory is the output directory relative to the configuration file.
	DefaultDirectory = "assets"

	moduleExtension   = ".mjs"
	commonJSExtension = ".js"
)

// File is the on-disk configuration.
type File struct {
	Directory string       `json:"directory,omitempty" mapstructure:"directory"`
	Module    any          `json:"module,omitempty"    mapstructure:"module"`
	Extension string       `json:"extension,omitempty" mapstructure:"extension"`
	Assets    []AssetEntry `json:"assets"              mapstructure:"assets"`
}

// AssetEntry is a single raw entry of the assets list. Empty strings mean
// the field was not set.
type AssetEntry struct {
	Type           string `json:"type,omitempty"           mapstructure:"type"`
	Name           string `json:"name,omitempty"           mapstructure:"name"`
	InputFileName  string `json:"inputFileName,omitempty"  mapstructure:"inputFileName"`
	PackageJSON    string `json:"packageJson,omitempty"    mapstructure:"packageJson"`
	OutputFileName string `json:"outputFileName,omitempty" mapstructure:"outputFileName"`
}

// Config is a loaded configuration with every default applied.
type Config struct {
	// Path is the absolute path of the configuration file.
	Path string
	// RootDir is the directory containing the configuration file. Asset
	// sources are resolved against it.
	RootDir string
	// AssetsDir is where generated modules are written.
	AssetsDir string
	// ModuleMode selects ESM output; CommonJS otherwise.
	ModuleMode bool
	// Extension always starts with a dot.
	Extension string
	Assets    []AssetEntry
}

// ModuleMode reports whether a raw "module" value selects ESM output. Only
// the literal boolean false turns it off.
func ModuleMode(v any) bool {
	b, ok := v.(bool)
	return !ok || b
}

// NormalizeExtension applies the mode default to an unset extension and
// makes sure the result starts with a dot.
func NormalizeExtension(ext string, moduleMode bool) string {
	if ext == "" {
		if moduleMode {
			return moduleExtension
		}
		return commonJSExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
