// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfig points LINEDIFF_CFG_FILE at a testdata file, loads it and runs fn.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	t.Setenv("LINEDIFF_CFG_FILE", absPath)

	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "flat values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.True(t, filepath.IsAbs(cfg.Source))
				assert.Equal(t, "yaml", cfg.Data["format"])
				assert.Equal(t, "generic", cfg.Data["fields"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				serve, ok := cfg.Data["serve"].(map[string]interface{})
				require.True(t, ok, "serve should be a map")
				assert.Equal(t, ":9090", serve["addr"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absPath, err := filepath.Abs(filepath.Join("testdata", tt.testFile))
			require.NoError(t, err)
			t.Setenv("LINEDIFF_CFG_FILE", absPath)
			Config = Type{}
			t.Cleanup(func() { Config = Type{} })

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	t.Setenv("LINEDIFF_CFG_FILE", "/nonexistent/linediff.yaml")
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Data["format"])
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("LINEDIFF_CFG_FILE", "/nonexistent/path/linediff.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("LINEDIFF_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetString("serve.addr")
		require.NoError(t, err)
		assert.Equal(t, ":9090", v)

		v, err = GetString("missing.key", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", v)

		_, err = GetString("missing.key")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = GetString("cache.clean")
		assert.Error(t, err, "an int is not a string")
	})
}

func TestGetString_Namespace(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		Config.Namespace = "aws"

		v, err := GetString("region")
		require.NoError(t, err)
		assert.Equal(t, "eu-west-1", v)

		v, err = GetString("format")
		require.NoError(t, err)
		assert.Equal(t, "json", v, "bare key is the fallback")
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetInt("cache.clean")
		require.NoError(t, err)
		assert.Equal(t, 48, v)

		v, err = GetInt("cache.ratio")
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		v, err = GetInt("cache.missing", 7)
		require.NoError(t, err)
		assert.Equal(t, 7, v)

		_, err = GetInt("serve.addr")
		assert.Error(t, err)
	})
}

func TestGetBool(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetBool("serve.verbose")
		require.NoError(t, err)
		assert.True(t, v)

		v, err = GetBool("serve.quiet", false)
		require.NoError(t, err)
		assert.False(t, v)

		_, err = GetBool("serve.addr")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		v, err := GetStringSlice("sets.ci")
		require.NoError(t, err)
		assert.Equal(t, []string{"--format yaml", "--fields generic"}, v)

		_, err = GetStringSlice("sets.broken")
		assert.Error(t, err)

		v, err = GetStringSlice("sets.none", []string{"x"})
		require.NoError(t, err)
		assert.Equal(t, []string{"x"}, v)
	})
}
