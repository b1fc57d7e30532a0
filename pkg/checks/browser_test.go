package checks_test

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"dev/bravebird/ui-check-go/pkg/browser"
	"dev/bravebird/ui-check-go/pkg/checks"
	"dev/bravebird/ui-check-go/pkg/devserver"
	"dev/bravebird/ui-check-go/pkg/models"
)

// End-to-end run of the theme suite against the demo page in a real headless
// Chrome. Needs a Chrome binary, so it only runs when UICHECK_BROWSER_TESTS
// is set.
func TestThemeSuiteAgainstDevServer(t *testing.T) {
	if os.Getenv("UICHECK_BROWSER_TESTS") == "" {
		t.Skip("set UICHECK_BROWSER_TESTS=1 to run browser-backed tests")
	}

	srv := httptest.NewServer(devserver.Handler())
	defer srv.Close()

	session, err := browser.Launch(browser.Options{Headless: true})
	require.NoError(t, err)
	defer session.Close()

	suite := checks.ThemeSuite(srv.URL)
	runner := checks.NewRunner(session, suite.TargetURL)

	results, status := runner.RunSuite(suite)

	require.Len(t, results, len(suite.Checks))
	for _, result := range results {
		if result.Failed() {
			t.Errorf("check %d (%s) failed: expected %s, observed %s, error %s",
				result.SequenceID, result.Type, result.Expected, result.Observed, result.ErrorMessage)
		}
	}
	require.Equal(t, models.StatusPassed, status)
}
