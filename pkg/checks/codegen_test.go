package checks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRodScript(t *testing.T) {
	suite := ThemeSuite("http://localhost:8000")
	script := GenerateRodScript(suite)

	assert.True(t, strings.HasPrefix(script, "package main"))
	assert.Contains(t, script, `page.MustNavigate("http://localhost:8000").MustWaitLoad()`)
	assert.Contains(t, script, `page.MustElement("#theme-toggle").MustClick()`)
	assert.Contains(t, script, `bodyHasClass(page, "light-mode")`)
	assert.Contains(t, script, "page.MustReload().MustWaitLoad()")
	assert.Contains(t, script, "page.MustSetViewport(500, 800, 1, false)")
	assert.Contains(t, script, "log.Fatalf")

	// Failure directions differ between the two toggle checks
	assert.Contains(t, script, "expected body class to contain light-mode")
	assert.Contains(t, script, "expected body class to exclude light-mode")
}

func TestGenerateRodScriptEscaping(t *testing.T) {
	assert.Equal(t, `a\"b`, escapeSelector(`a"b`))
	assert.Equal(t, `a\\b`, escapeSelector(`a\b`))
	assert.Equal(t, `line\nbreak`, escapeString("line\nbreak"))
}
