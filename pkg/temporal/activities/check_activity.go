package activities

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	"dev/bravebird/ui-check-go/pkg/browser"
	"dev/bravebird/ui-check-go/pkg/checks"
	"dev/bravebird/ui-check-go/pkg/database"
	"dev/bravebird/ui-check-go/pkg/models"
	"dev/bravebird/ui-check-go/pkg/temporal/workflows"
)

var sessionPool = browser.NewPool()

// Activities holds activity implementations. DB may be nil; runs then go
// unrecorded and progress is only available through the workflow query.
type Activities struct {
	DB            *database.DB
	ScreenshotDir string
	ChromeBin     string
}

// NewActivities creates new activities
func NewActivities(db *database.DB, screenshotDir, chromeBin string) *Activities {
	return &Activities{
		DB:            db,
		ScreenshotDir: screenshotDir,
		ChromeBin:     chromeBin,
	}
}

// InitializeBrowserActivity launches a browser session for a suite run
func (a *Activities) InitializeBrowserActivity(ctx context.Context, input workflows.BrowserInitInput) (workflows.BrowserSession, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Initializing browser session", "headless", input.Headless)

	session, err := browser.Launch(browser.Options{
		Headless:  input.Headless,
		ChromeBin: a.ChromeBin,
	})
	if err != nil {
		return workflows.BrowserSession{}, err
	}

	sessionPool.Put(session)
	logger.Info("Browser session created", "sessionID", session.ID)

	return workflows.BrowserSession{
		SessionID: session.ID,
		PageURL:   "about:blank",
	}, nil
}

// CloseBrowserActivity closes a browser session
func (a *Activities) CloseBrowserActivity(ctx context.Context, sessionID string) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Closing browser session", "sessionID", sessionID)

	return sessionPool.Remove(sessionID)
}

// RunCheckActivity executes a single check against the session's live page.
// The result carries pass/fail; only infrastructure problems (missing session)
// surface as activity errors.
func (a *Activities) RunCheckActivity(ctx context.Context, input workflows.CheckInput) (models.CheckResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Running check", "sequence", input.Check.SequenceID, "type", input.Check.Type)

	session := sessionPool.Get(input.SessionID)
	if session == nil {
		return models.CheckResult{}, fmt.Errorf("browser session not found: %s", input.SessionID)
	}

	runner := checks.NewRunner(session, input.TargetURL)
	result := runner.RunCheck(input.Check)

	activity.RecordHeartbeat(ctx, fmt.Sprintf("Completed check %d", input.Check.SequenceID))

	if result.Failed() {
		logger.Warn("Check failed", "sequence", result.SequenceID, "observed", result.Observed, "expected", result.Expected, "error", result.ErrorMessage)
	}

	return result, nil
}

// TakeScreenshotActivity captures the current page state
func (a *Activities) TakeScreenshotActivity(ctx context.Context, input workflows.ScreenshotInput) (string, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Taking screenshot", "sessionID", input.SessionID)

	session := sessionPool.Get(input.SessionID)
	if session == nil {
		return "", fmt.Errorf("browser session not found: %s", input.SessionID)
	}

	return session.Screenshot(a.ScreenshotDir, input.Filename)
}

// RecordResultsActivity persists the final run outcome
func (a *Activities) RecordResultsActivity(ctx context.Context, result models.SuiteResult) error {
	logger := activity.GetLogger(ctx)

	if a.DB == nil {
		logger.Info("No database configured, skipping result recording", "runID", result.RunID)
		return nil
	}

	for i := range result.CheckResults {
		if result.CheckResults[i].ID == "" {
			result.CheckResults[i].ID = uuid.New().String()
		}
		result.CheckResults[i].RunID = result.RunID
	}

	if err := a.DB.CreateCheckResults(ctx, result.RunID, result.CheckResults); err != nil {
		return fmt.Errorf("failed to record check results: %w", err)
	}
	if err := a.DB.UpdateSuiteRunStatus(ctx, result.RunID, result.Status, result.ErrorMessage); err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	logger.Info("Recorded run results", "runID", result.RunID, "status", result.Status, "checks", len(result.CheckResults))
	return nil
}
