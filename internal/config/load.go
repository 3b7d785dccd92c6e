package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ParseError reports a configuration file that cannot be read, is not
// structured data, or does not have the expected shape.
type ParseError struct {
	Path       string
	Violations []string
	Err        error
}

func (e *ParseError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("parse config %s: %s", e.Path, strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errSchema    = errors.New("config does not match schema")
	errNotObject = errors.New("config root is not an object")
)

// Load reads the configuration file at path and applies every default.
// Relative paths are resolved against the working directory. Load never
// touches the output directory.
func Load(path string) (Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, &ParseError{Path: path, Err: err}
	}

	file, unused, err := readFile(abs)
	if err != nil {
		return Config{}, err
	}
	for _, key := range unused {
		log.Warn().Str("config", abs).Str("key", key).Msg("ignoring unknown config key")
	}

	rootDir := filepath.Dir(abs)
	directory := file.Directory
	if directory == "" {
		directory = DefaultDirectory
	}
	moduleMode := ModuleMode(file.Module)

	cfg := Config{
		Path:       abs,
		RootDir:    rootDir,
		AssetsDir:  filepath.Join(rootDir, directory),
		ModuleMode: moduleMode,
		Extension:  NormalizeExtension(file.Extension, moduleMode),
		Assets:     file.Assets,
	}
	log.Debug().
		Str("config", cfg.Path).
		Str("assets_dir", cfg.AssetsDir).
		Bool("module", cfg.ModuleMode).
		Str("extension", cfg.Extension).
		Int("assets", len(cfg.Assets)).
		Msg("loaded config")
	return cfg, nil
}

// readFile decodes the configuration file. Keys are matched exactly; keys
// that match no field are returned as unused.
func readFile(path string) (File, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, nil, &ParseError{Path: path, Err: err}
	}
	settings, err := decodeSettings(path, data)
	if err != nil {
		return File{}, nil, &ParseError{Path: path, Err: err}
	}

	violations, err := SchemaViolations(settings)
	if err != nil {
		return File{}, nil, &ParseError{Path: path, Err: err}
	}
	if len(violations) > 0 {
		return File{}, nil, &ParseError{Path: path, Violations: violations, Err: errSchema}
	}

	var (
		file File
		md   mapstructure.Metadata
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &file,
		Metadata:         &md,
		WeaklyTypedInput: true,
		MatchName:        func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return File{}, nil, &ParseError{Path: path, Err: err}
	}
	if err := dec.Decode(settings); err != nil {
		return File{}, nil, &ParseError{Path: path, Err: err}
	}
	return file, md.Unused, nil
}

// decodeSettings parses data by file extension. YAML and TOML are
// recognized; anything else is JSON. The root must be an object.
func decodeSettings(path string, data []byte) (map[string]any, error) {
	var settings map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}
	if settings == nil {
		return nil, errNotObject
	}
	return settings, nil
}

// EnsureAssetsDir creates the output directory if it does not exist yet.
// Only the last path element is created.
func EnsureAssetsDir(cfg Config) error {
	info, err := os.Stat(cfg.AssetsDir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("assets directory %s is not a directory", cfg.AssetsDir)
		}
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat assets directory: %w", err)
	}

	log.Debug().Str("dir", cfg.AssetsDir).Msg("creating assets directory")
	if err := os.Mkdir(cfg.AssetsDir, 0o755); err != nil {
		return fmt.Errorf("create assets directory: %w", err)
	}
	return nil
}
