package checks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dev/bravebird/ui-check-go/pkg/models"
)

// fakePage mimics the theme demo page: clicking the toggle flips the
// light-mode body class, the choice is stored, and a reload restores the
// stored choice. persistTheme=false models a page that forgets its theme.
type fakePage struct {
	bodyClasses  []string
	storedTheme  string
	persistTheme bool
	sidebarWidth float64
	viewportW    int
	viewportH    int
	navigated    string
	failClick    bool
}

func newFakePage() *fakePage {
	return &fakePage{
		persistTheme: true,
		sidebarWidth: 180,
	}
}

func (f *fakePage) Navigate(url string) error {
	f.navigated = url
	f.applyStoredTheme()
	return nil
}

func (f *fakePage) Reload() error {
	f.bodyClasses = nil
	if f.persistTheme {
		f.applyStoredTheme()
	}
	return nil
}

func (f *fakePage) applyStoredTheme() {
	f.bodyClasses = nil
	if f.storedTheme == "light" {
		f.bodyClasses = []string{"light-mode"}
	}
}

func (f *fakePage) Click(selector string) error {
	if f.failClick {
		return fmt.Errorf("element not found: %s", selector)
	}
	if selector != ThemeToggleSelector {
		return fmt.Errorf("element not found: %s", selector)
	}
	if HasClass(f.bodyClasses, LightModeClass) {
		f.bodyClasses = nil
		f.storedTheme = "dark"
	} else {
		f.bodyClasses = []string{LightModeClass}
		f.storedTheme = "light"
	}
	return nil
}

func (f *fakePage) BodyClassList() ([]string, error) {
	return f.bodyClasses, nil
}

func (f *fakePage) SetViewport(width, height int) error {
	f.viewportW = width
	f.viewportH = height
	return nil
}

func (f *fakePage) ElementWidth(selector string) (float64, error) {
	if selector != SidebarSelector {
		return 0, fmt.Errorf("element not found: %s", selector)
	}
	return f.sidebarWidth, nil
}

func TestHasClass(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
		class   string
		want    bool
	}{
		{"present", []string{"light-mode"}, "light-mode", true},
		{"absent", []string{"dark"}, "light-mode", false},
		{"empty list", nil, "light-mode", false},
		{"substring does not match", []string{"light-mode-x"}, "light-mode", false},
		{"among others", []string{"a", "light-mode", "b"}, "light-mode", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasClass(tt.classes, tt.class))
		})
	}
}

func TestThemeSuitePasses(t *testing.T) {
	page := newFakePage()
	suite := ThemeSuite("http://localhost:8000")
	runner := NewRunner(page, suite.TargetURL)

	results, status := runner.RunSuite(suite)

	require.Len(t, results, 5)
	assert.Equal(t, models.StatusPassed, status)
	for _, result := range results {
		assert.Equal(t, models.StatusPassed, result.Status, "check %d (%s)", result.SequenceID, result.Type)
	}
	assert.Equal(t, "http://localhost:8000", page.navigated)
	assert.Equal(t, 500, page.viewportW)
	assert.Equal(t, 800, page.viewportH)
}

func TestToggleClassDirections(t *testing.T) {
	page := newFakePage()
	runner := NewRunner(page, "http://localhost:8000")

	// First click applies the class
	result := runner.RunCheck(models.CheckSpec{
		SequenceID: 1, Type: models.CheckToggleClass,
		Selector: ThemeToggleSelector, Class: LightModeClass, ExpectPresent: true,
	})
	assert.Equal(t, models.StatusPassed, result.Status)
	assert.Contains(t, result.Observed, "light-mode")

	// Second click removes it
	result = runner.RunCheck(models.CheckSpec{
		SequenceID: 2, Type: models.CheckToggleClass,
		Selector: ThemeToggleSelector, Class: LightModeClass, ExpectPresent: false,
	})
	assert.Equal(t, models.StatusPassed, result.Status)

	// Third click applies the class again; expecting absence fails
	result = runner.RunCheck(models.CheckSpec{
		SequenceID: 3, Type: models.CheckToggleClass,
		Selector: ThemeToggleSelector, Class: LightModeClass, ExpectPresent: false,
	})
	assert.Equal(t, models.StatusFailed, result.Status)
}

func TestReloadPersist(t *testing.T) {
	t.Run("persisting page passes", func(t *testing.T) {
		page := newFakePage()
		runner := NewRunner(page, "http://localhost:8000")

		// Odd number of clicks: light mode active before the reload
		require.NoError(t, page.Click(ThemeToggleSelector))

		result := runner.RunCheck(models.CheckSpec{
			SequenceID: 1, Type: models.CheckReloadPersist, Class: LightModeClass,
		})
		assert.Equal(t, models.StatusPassed, result.Status)
		assert.True(t, HasClass(page.bodyClasses, LightModeClass))
	})

	t.Run("forgetful page fails", func(t *testing.T) {
		page := newFakePage()
		page.persistTheme = false
		runner := NewRunner(page, "http://localhost:8000")

		require.NoError(t, page.Click(ThemeToggleSelector))

		result := runner.RunCheck(models.CheckSpec{
			SequenceID: 1, Type: models.CheckReloadPersist, Class: LightModeClass,
		})
		assert.Equal(t, models.StatusFailed, result.Status)
	})

	t.Run("even clicks keep class absent", func(t *testing.T) {
		page := newFakePage()
		runner := NewRunner(page, "http://localhost:8000")

		require.NoError(t, page.Click(ThemeToggleSelector))
		require.NoError(t, page.Click(ThemeToggleSelector))

		result := runner.RunCheck(models.CheckSpec{
			SequenceID: 1, Type: models.CheckReloadPersist, Class: LightModeClass,
		})
		assert.Equal(t, models.StatusPassed, result.Status)
		assert.False(t, HasClass(page.bodyClasses, LightModeClass))
	})
}

func TestViewportWidthCheck(t *testing.T) {
	t.Run("visible sidebar passes", func(t *testing.T) {
		page := newFakePage()
		runner := NewRunner(page, "http://localhost:8000")

		result := runner.RunCheck(models.CheckSpec{
			SequenceID: 1, Type: models.CheckViewportWidth,
			Selector: SidebarSelector, Viewport: &models.Viewport{Width: 500, Height: 800},
		})
		assert.Equal(t, models.StatusPassed, result.Status)
		assert.Equal(t, "180.0px", result.Observed)
	})

	t.Run("collapsed sidebar fails", func(t *testing.T) {
		page := newFakePage()
		page.sidebarWidth = 0
		runner := NewRunner(page, "http://localhost:8000")

		result := runner.RunCheck(models.CheckSpec{
			SequenceID: 1, Type: models.CheckViewportWidth,
			Selector: SidebarSelector, Viewport: &models.Viewport{Width: 500, Height: 800},
		})
		assert.Equal(t, models.StatusFailed, result.Status)
	})
}

func TestFailedCheckDoesNotStopSuite(t *testing.T) {
	page := newFakePage()
	page.failClick = true
	suite := ThemeSuite("http://localhost:8000")
	runner := NewRunner(page, suite.TargetURL)

	results, status := runner.RunSuite(suite)

	require.Len(t, results, 5, "all checks run even after failures")
	assert.Equal(t, models.StatusFailed, status)

	// Clicks fail, but navigation and the viewport check still pass
	assert.Equal(t, models.StatusPassed, results[0].Status)
	assert.Equal(t, models.StatusFailed, results[1].Status)
	assert.NotEmpty(t, results[1].ErrorMessage)
	assert.Equal(t, models.StatusFailed, results[2].Status)
	assert.Equal(t, models.StatusPassed, results[4].Status)
}

func TestUnsupportedCheckType(t *testing.T) {
	runner := NewRunner(newFakePage(), "http://localhost:8000")

	result := runner.RunCheck(models.CheckSpec{SequenceID: 1, Type: "hover"})
	assert.Equal(t, models.StatusFailed, result.Status)
	assert.Contains(t, result.ErrorMessage, "unsupported check type")
}
