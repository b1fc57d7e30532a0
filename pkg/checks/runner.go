package checks

import (
	"fmt"
	"strings"
	"time"

	"dev/bravebird/ui-check-go/pkg/models"
)

// Pager is the browser surface the runner needs. *browser.Session satisfies it.
type Pager interface {
	Navigate(url string) error
	Reload() error
	Click(selector string) error
	BodyClassList() ([]string, error)
	SetViewport(width, height int) error
	ElementWidth(selector string) (float64, error)
}

// HasClass reports whether the class list contains the class
func HasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}

// Runner executes check specs against one page session. It remembers the body
// class list observed by the previous check so reload_persist can compare
// against the pre-reload state.
type Runner struct {
	page       Pager
	lastBody   []string
	targetURL  string
	hasBodyObs bool
}

// NewRunner creates a runner bound to a page session
func NewRunner(page Pager, targetURL string) *Runner {
	return &Runner{page: page, targetURL: targetURL}
}

// RunCheck executes a single check and returns its result. A failed comparison
// and a browser error both yield a failed result; neither is advisory.
func (r *Runner) RunCheck(spec models.CheckSpec) models.CheckResult {
	result := models.CheckResult{
		SequenceID: spec.SequenceID,
		Type:       spec.Type,
		Status:     models.StatusRunning,
	}
	start := time.Now()

	err := r.execute(spec, &result)
	result.Duration = time.Since(start).Milliseconds()
	now := time.Now()
	result.ExecutedAt = &now

	if err != nil {
		result.Status = models.StatusFailed
		result.ErrorMessage = err.Error()
		return result
	}
	if result.Status == models.StatusRunning {
		result.Status = models.StatusPassed
	}
	return result
}

func (r *Runner) execute(spec models.CheckSpec, result *models.CheckResult) error {
	switch spec.Type {
	case models.CheckNavigate:
		result.Expected = r.targetURL
		if err := r.page.Navigate(r.targetURL); err != nil {
			return err
		}
		return r.observeBody(result)

	case models.CheckToggleClass:
		if err := r.page.Click(spec.Selector); err != nil {
			return err
		}
		if err := r.observeBody(result); err != nil {
			return err
		}
		present := HasClass(r.lastBody, spec.Class)
		if spec.ExpectPresent {
			result.Expected = fmt.Sprintf("body class contains %q", spec.Class)
			if !present {
				result.Status = models.StatusFailed
			}
		} else {
			result.Expected = fmt.Sprintf("body class excludes %q", spec.Class)
			if present {
				result.Status = models.StatusFailed
			}
		}
		return nil

	case models.CheckReloadPersist:
		if !r.hasBodyObs {
			if err := r.observeBody(result); err != nil {
				return err
			}
		}
		before := HasClass(r.lastBody, spec.Class)
		if err := r.page.Reload(); err != nil {
			return err
		}
		if err := r.observeBody(result); err != nil {
			return err
		}
		after := HasClass(r.lastBody, spec.Class)
		result.Expected = fmt.Sprintf("class %q present=%t after reload", spec.Class, before)
		if before != after {
			result.Status = models.StatusFailed
		}
		return nil

	case models.CheckViewportWidth:
		if err := r.page.SetViewport(spec.Viewport.Width, spec.Viewport.Height); err != nil {
			return err
		}
		width, err := r.page.ElementWidth(spec.Selector)
		if err != nil {
			return err
		}
		result.Observed = fmt.Sprintf("%.1fpx", width)
		result.Expected = fmt.Sprintf("%s width > 0 at %dx%d", spec.Selector, spec.Viewport.Width, spec.Viewport.Height)
		if width <= 0 {
			result.Status = models.StatusFailed
		}
		return nil

	default:
		return fmt.Errorf("unsupported check type: %s", spec.Type)
	}
}

func (r *Runner) observeBody(result *models.CheckResult) error {
	classes, err := r.page.BodyClassList()
	if err != nil {
		return err
	}
	r.lastBody = classes
	r.hasBodyObs = true
	if result.Observed == "" {
		result.Observed = "body class: " + strings.Join(classes, " ")
	}
	return nil
}

// RunSuite executes all checks in order and aggregates the outcome. A failed
// check does not stop the remaining checks, but it fails the suite.
func (r *Runner) RunSuite(suite models.CheckSuite) ([]models.CheckResult, models.RunStatus) {
	results := make([]models.CheckResult, 0, len(suite.Checks))
	status := models.StatusPassed

	for _, spec := range suite.Checks {
		result := r.RunCheck(spec)
		if result.Failed() {
			status = models.StatusFailed
		}
		results = append(results, result)
	}

	return results, status
}
