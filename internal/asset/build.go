package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/renameio/v2/maybe"
	"github.com/metalagman/buildassets/internal/config"
	"github.com/rs/zerolog/log"
)

// Output is a module written by Build.
type Output struct {
	Spec Spec
	Path string
	Size int
}

// Build generates a module for every asset of cfg, in order. The first
// failing asset aborts the run; modules written before it are kept. Names
// are not validated here, run Validate for that.
func Build(cfg config.Config) ([]Output, error) {
	if err := config.EnsureAssetsDir(cfg); err != nil {
		return nil, err
	}

	style := StyleFor(cfg.ModuleMode)
	outputs := make([]Output, 0, len(cfg.Assets))
	for _, spec := range ClassifyAll(cfg) {
		value, err := readValue(cfg, spec)
		if err != nil {
			return outputs, err
		}

		path := spec.OutputPath(cfg)
		content := Render(spec.Name, value, style)
		if err := writeModule(path, content); err != nil {
			return outputs, fmt.Errorf("%s: %w", spec.Label(), err)
		}
		log.Info().Str("asset", spec.Name).Str("kind", spec.Kind.String()).Str("path", path).Msg("wrote asset")
		outputs = append(outputs, Output{Spec: spec, Path: path, Size: len(content)})
	}
	return outputs, nil
}

func readValue(cfg config.Config, spec Spec) ([]byte, error) {
	switch spec.Kind {
	case KindVersion:
		return readVersion(spec.SourcePath(cfg), spec)
	case KindText:
		return readText(spec.SourcePath(cfg), spec)
	default:
		return nil, &MalformedAssetError{Spec: spec, Problems: Problems(spec)}
	}
}

func readVersion(path string, spec Spec) ([]byte, error) {
	log.Debug().Str("asset", spec.Name).Str("package_json", path).Msg("reading package version")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceReadError{Spec: spec, Path: path, Err: err}
	}
	version, err := manifestVersion(data)
	if err != nil {
		return nil, &SourceReadError{Spec: spec, Path: path, Err: err}
	}
	if version == nil {
		log.Warn().Str("asset", spec.Name).Str("package_json", path).Msg("package has no version field")
	}
	value, err := EncodeRaw(version)
	if err != nil {
		return nil, &SourceReadError{Spec: spec, Path: path, Err: err}
	}
	return value, nil
}

// manifestVersion returns the raw version value of a package manifest. A
// manifest whose root is not an object has no version.
func manifestVersion(data []byte) (json.RawMessage, error) {
	var manifest map[string]json.RawMessage
	err := json.Unmarshal(data, &manifest)
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return manifest["version"], nil
}

func readText(path string, spec Spec) ([]byte, error) {
	log.Debug().Str("asset", spec.Name).Str("input", path).Msg("reading text asset")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceReadError{Spec: spec, Path: path, Err: err}
	}
	value, err := EncodeString(string(data))
	if err != nil {
		return nil, &SourceReadError{Spec: spec, Path: path, Err: err}
	}
	return value, nil
}

func writeModule(path string, content []byte) error {
	if err := maybe.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write module: %w", err)
	}
	return nil
}
