package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/codeforms/config"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	doc := `
code:
  generators: ["11110000", "00001111", "00110011", "01010101"]
strategy: both
precision: 8
signs: all
classes:
  max: 3
subgroups:
  - ["() neg[1]", "() neg[2]"]
output:
  plain: true
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Empty(t, cfg.Code.Name)
	require.Len(t, cfg.Code.Generators, 4)
	require.NoError(t, cfg.Validate())
	require.Equal(t, config.StrategyBoth, cfg.Strategy)
	require.Equal(t, 8, cfg.Precision)
	require.Equal(t, 3, cfg.Classes.Max)
	require.True(t, cfg.Output.Plain)
	require.Len(t, cfg.Subgroups, 1)
	// untouched fields keep their defaults
	require.True(t, cfg.VOA)
	require.Equal(t, 6, cfg.Output.Terms)

	missing, err := config.Load(filepath.Join(dir, "none.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), missing)
}

func TestCodeSectionReplacesDefault(t *testing.T) {
	cases := []struct {
		doc  string
		name string
		gens int
	}{
		{"code:\n  generators: [\"11110000\", \"00111100\", \"00001111\", \"01010101\"]\n", "", 4},
		{"code:\n  name: g24\n", "g24", 0},
		{"precision: 4\n", "e8", 0},
	}
	for _, tc := range cases {
		cfg := config.Default()
		require.NoError(t, config.Parse([]byte(tc.doc), cfg))
		require.Equal(t, tc.name, cfg.Code.Name, tc.doc)
		require.Len(t, cfg.Code.Generators, tc.gens, tc.doc)
		require.NoError(t, cfg.Validate(), tc.doc)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"strategy":  func(c *config.Config) { c.Strategy = "magic" },
		"signs":     func(c *config.Config) { c.Signs = "some" },
		"precision": func(c *config.Config) { c.Precision = 0 },
		"no code":   func(c *config.Config) { c.Code.Name = "" },
		"both":      func(c *config.Config) { c.Code.Generators = []string{"1111"} },
		"samples":   func(c *config.Config) { c.Classes.Samples = 0 },
		"vectors":   func(c *config.Config) { c.MaxVectors = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(c)
			require.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}

	require.Error(t, config.Parse([]byte("precision: [1"), config.Default()))
}
