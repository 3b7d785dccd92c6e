package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/metalagman/buildassets/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(root string, assets ...config.AssetEntry) config.Config {
	return config.Config{
		RootDir:    root,
		AssetsDir:  filepath.Join(root, "assets"),
		ModuleMode: true,
		Extension:  ".mjs",
		Assets:     assets,
	}
}

func TestValidate_Plan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testConfig(root,
		config.AssetEntry{Type: "version"},
		config.AssetEntry{Name: "greeting", InputFileName: "greeting.txt", OutputFileName: "hello.js"},
	)

	rep := Validate(cfg)
	require.True(t, rep.OK())
	require.Len(t, rep.Plan, 2)

	assert.Equal(t, PlanLine{
		Index:  0,
		Kind:   KindVersion,
		Name:   "version",
		Syntax: "ESM",
		Output: filepath.Join(root, "assets", "version.mjs"),
		Source: filepath.Join(root, "package.json"),
	}, rep.Plan[0])
	assert.Equal(t, filepath.Join(root, "assets", "hello.js"), rep.Plan[1].Output)
	assert.Equal(t, filepath.Join(root, "greeting.txt"), rep.Plan[1].Source)
	assert.Contains(t, rep.Plan[0].String(), "version from")
	assert.Contains(t, rep.Plan[1].String(), "contents of")
}

func TestValidate_CommonJSSyntax(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t.TempDir(), config.AssetEntry{Type: "version"})
	cfg.ModuleMode = false

	rep := Validate(cfg)
	require.Len(t, rep.Plan, 1)
	assert.Equal(t, "CJS", rep.Plan[0].Syntax)
}

func TestValidate_InvalidName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	cfg := testConfig(root, config.AssetEntry{Name: "1bad", InputFileName: "x.txt"})

	rep := Validate(cfg)
	assert.False(t, rep.OK())
	assert.Empty(t, rep.Plan)
	require.Len(t, rep.Problems, 1)

	var nameErr *IdentifierNameError
	require.True(t, errors.As(rep.Problems[0], &nameErr))
	assert.Equal(t, "1bad", nameErr.Name)
	assert.Contains(t, rep.Problems[0].Error(), `invalid "name" value`)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidate_InvalidVersionName(t *testing.T) {
	t.Parallel()

	rep := Validate(testConfig(t.TempDir(), config.AssetEntry{Type: "version", Name: "my-version"}))
	require.Len(t, rep.Problems, 1)
	var nameErr *IdentifierNameError
	assert.ErrorAs(t, rep.Problems[0], &nameErr)
}

func TestValidate_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		entry       config.AssetEntry
		wantMissing []string
		wantBadName bool
	}{
		{name: "missing name", entry: config.AssetEntry{InputFileName: "x.txt"}, wantMissing: []string{"name"}},
		{name: "missing input", entry: config.AssetEntry{Name: "ok"}, wantMissing: []string{"inputFileName"}},
		{name: "missing both", entry: config.AssetEntry{}, wantMissing: []string{"name", "inputFileName"}},
		{name: "missing input bad name", entry: config.AssetEntry{Name: "no way"}, wantMissing: []string{"inputFileName"}, wantBadName: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rep := Validate(testConfig(t.TempDir(), tt.entry))
			assert.False(t, rep.OK())

			var missing []string
			badName := false
			for _, problem := range rep.Problems {
				var missingErr *MissingFieldError
				var nameErr *IdentifierNameError
				switch {
				case errors.As(problem, &missingErr):
					missing = append(missing, missingErr.Field)
				case errors.As(problem, &nameErr):
					badName = true
				}
			}
			assert.Equal(t, tt.wantMissing, missing)
			assert.Equal(t, tt.wantBadName, badName)
		})
	}
}

func TestValidate_CollectsAcrossAssetsInOrder(t *testing.T) {
	t.Parallel()

	rep := Validate(testConfig(t.TempDir(),
		config.AssetEntry{InputFileName: "a.txt"},
		config.AssetEntry{Type: "version"},
		config.AssetEntry{Name: "2nd", InputFileName: "b.txt"},
	))
	require.Len(t, rep.Problems, 2)
	assert.Empty(t, rep.Plan)
	assert.Equal(t, `asset #1: missing "name"`, rep.Problems[0].Error())
	assert.Equal(t, `asset #3: invalid "name" value "2nd"`, rep.Problems[1].Error())
}

func TestValidate_EmptyAssets(t *testing.T) {
	t.Parallel()

	rep := Validate(testConfig(t.TempDir()))
	assert.True(t, rep.OK())
	assert.Empty(t, rep.Plan)
}

func TestValidate_CapitalizedNameKeyIsMissing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	configPath := filepath.Join(root, "build-assets.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"assets":[{"Name":"x","inputFileName":"x.txt"}]}`), 0o644))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	rep := Validate(cfg)
	require.Len(t, rep.Problems, 1)
	var missing *MissingFieldError
	require.ErrorAs(t, rep.Problems[0], &missing)
	assert.Equal(t, "name", missing.Field)
}
