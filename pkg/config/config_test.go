package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev/bravebird/ui-check-go/pkg/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.TargetURL)
	assert.Equal(t, "localhost:7233", cfg.TemporalHost)
	assert.True(t, cfg.Headless)
	assert.Empty(t, cfg.Suites)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
target_url: http://demo.internal:8000
headless: false
suites:
  - name: login-page
    target_url: http://demo.internal:8000/login
    checks:
      - sequence_id: 1
        type: navigate
      - sequence_id: 2
        type: toggle_class
        selector: "#theme-toggle"
        class: light-mode
        expect_present: true
      - sequence_id: 3
        type: viewport_width
        selector: ".sidebar"
        viewport:
          width: 500
          height: 800
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://demo.internal:8000", cfg.TargetURL)
	assert.False(t, cfg.Headless)

	require.Len(t, cfg.Suites, 1)
	suite := cfg.Suites[0]
	assert.Equal(t, "login-page", suite.Name)
	require.Len(t, suite.Checks, 3)
	assert.Equal(t, models.CheckToggleClass, suite.Checks[1].Type)
	assert.True(t, suite.Checks[1].ExpectPresent)
	require.NotNil(t, suite.Checks[2].Viewport)
	assert.Equal(t, 500, suite.Checks[2].Viewport.Width)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("TARGET_URL", "http://staging:8000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "http://staging:8000", cfg.TargetURL)
}

func TestValidateRejectsBadSuites(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown check type",
			content: `
suites:
  - name: bad
    checks:
      - sequence_id: 1
        type: hover
`,
			wantErr: "unknown check type",
		},
		{
			name: "toggle without selector",
			content: `
suites:
  - name: bad
    checks:
      - sequence_id: 1
        type: toggle_class
        class: light-mode
`,
			wantErr: "needs selector and class",
		},
		{
			name: "viewport without size",
			content: `
suites:
  - name: bad
    checks:
      - sequence_id: 1
        type: viewport_width
        selector: ".sidebar"
`,
			wantErr: "needs selector and viewport",
		},
		{
			name: "unnamed suite",
			content: `
suites:
  - checks: []
`,
			wantErr: "no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
